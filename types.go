// Package orderbook implements a single-instrument, single-threaded
// limit order book: array-indexed price levels, intrusive FIFO queues,
// a fixed-capacity order arena, and a direct-mapped order index.
//
// Every public method runs to completion before the next begins; there
// is no internal concurrency and no allocation on the add/cancel/match
// path. Callers wanting to fan out across instruments run one Book per
// instrument.
package orderbook

import "fmt"

// OrderID identifies a single order for its whole lifetime.
type OrderID uint64

// Price is an integer tick count. Valid resting prices lie in
// [0, MaxPrice]; NoBid and NoAsk are sentinels outside that range.
type Price int64

// Qty is a signed remaining/original quantity. An order is filled once
// its Qty drops to zero or below.
type Qty int64

// Timestamp is an opaque, caller-assigned ordering value. The engine
// never reads the clock itself.
type Timestamp uint64

// Side of the book an order rests on or an aggressor attacks from.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "Buy"
	}
	return "Sell"
}

// OrdType controls whether an order may rest after crossing.
type OrdType uint8

const (
	Limit OrdType = iota
	Market
	IOC
)

func (t OrdType) String() string {
	switch t {
	case Limit:
		return "Limit"
	case Market:
		return "Market"
	case IOC:
		return "IOC"
	default:
		return "Unknown"
	}
}

// AddResult reports the outcome of Add. Zero value is Ok.
type AddResult uint8

const (
	Ok AddResult = iota
	DuplicateId
	InvalidPrice
	InvalidQty
	PoolExhausted
)

func (r AddResult) String() string {
	switch r {
	case Ok:
		return "Ok"
	case DuplicateId:
		return "DuplicateId"
	case InvalidPrice:
		return "InvalidPrice"
	case InvalidQty:
		return "InvalidQty"
	case PoolExhausted:
		return "PoolExhausted"
	default:
		return fmt.Sprintf("AddResult(%d)", uint8(r))
	}
}

// NoBid is the best-bid sentinel when no buy order rests in the book.
// There is no equivalent package-level NoAsk constant: the ask sentinel
// is MaxPrice+1, which is a construction-time parameter of each Book
// (see Book.NoAsk).
const NoBid Price = -1
