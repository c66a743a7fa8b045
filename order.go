package orderbook

// Order is one live order slot. Hot fields — the intrusive links and
// the fields touched on every matching-loop iteration — come first so
// that a single cache line covers the common path.
//
// A slot's zero value is the "free" representation: nil links, zero
// id. The arena's free list reuses the next field to chain unused
// slots, exactly as a live order uses it to chain to its FIFO
// successor — the two uses never overlap because a slot is either
// live (linked into exactly one PriceLevel) or free (linked into the
// arena's free list), never both.
type Order struct {
	prev *Order
	next *Order

	id    OrderID
	price Price

	qty     Qty // remaining
	origQty Qty // original, set once at rest time, never decreases the invariant origQty >= qty

	ts   Timestamp
	side Side
	typ  OrdType
}

func (o *Order) fill(amount Qty) {
	o.qty -= amount
}

func (o *Order) filled() bool {
	return o.qty <= 0
}

// ID returns the order's identifier.
func (o *Order) ID() OrderID { return o.id }

// Price returns the order's resting price.
func (o *Order) Price() Price { return o.price }

// Qty returns the order's current remaining quantity.
func (o *Order) Qty() Qty { return o.qty }

// OrigQty returns the post-crossing remainder recorded when the order
// was first rested — not the quantity the caller originally submitted
// to Add if that order partially matched on entry.
func (o *Order) OrigQty() Qty { return o.origQty }

// Side returns which side of the book the order rests on.
func (o *Order) Side() Side { return o.side }

// Type returns the order's resting type.
func (o *Order) Type() OrdType { return o.typ }

// Timestamp returns the caller-supplied ordering value.
func (o *Order) Timestamp() Timestamp { return o.ts }
