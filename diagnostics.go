package orderbook

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a production-style JSON logger for diagnostics use
// around a Book. Nothing in Book ever calls this itself — wiring a
// logger into the hot add/cancel/match path would add a side effect
// and an allocation exactly where the spec forbids both; this exists
// for callers who want to observe book state between operations.
func NewLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// LogSnapshot emits one structured log entry describing b's current
// best-price state and resource usage. Intended to be called on a
// batch boundary or alerting cadence, never between a timed
// add/cancel/match call and its caller.
func LogSnapshot(log *zap.Logger, b *Book) {
	log.Info("orderbook.snapshot",
		zap.Int64("bid", int64(b.Bid())),
		zap.Int64("ask", int64(b.Ask())),
		zap.Bool("has_bid", b.HasBid()),
		zap.Bool("has_ask", b.HasAsk()),
		zap.Int64("spread", int64(b.Spread())),
		zap.Bool("crossed", b.Crossed()),
		zap.Int("order_count", b.OrderCount()),
		zap.Int("pool_used", b.PoolUsed()),
		zap.Int("pool_capacity", b.PoolCapacity()),
	)
}
