package orderbook

import "fmt"

// Config gates construction of a Book. Both fields are required: they
// size every array the book owns (price levels, arena, index) up front,
// so there is never a reallocation once New returns.
type Config struct {
	// MaxPrice is the highest valid tick; valid prices lie in
	// [0, MaxPrice].
	MaxPrice Price
	// MaxOrders is the arena capacity — the maximum number of orders
	// that may rest simultaneously. Sizing this 5-10x above the
	// expected peak live-order count keeps the order index's load
	// factor low (see index.go).
	MaxOrders int
}

func (c Config) validate() error {
	if c.MaxPrice < 0 {
		return fmt.Errorf("orderbook: MaxPrice must be >= 0, got %d", c.MaxPrice)
	}
	if c.MaxOrders <= 0 {
		return fmt.Errorf("orderbook: MaxOrders must be > 0, got %d", c.MaxOrders)
	}
	return nil
}
