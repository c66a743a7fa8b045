package orderbook

// PriceLevel is the FIFO of resting orders at one tick on one side.
// The sentinel is a zero-value Order that never holds a real order;
// an empty level's sentinel links to itself, so push_back/remove never
// need a nil check. Iteration runs from sentinel.next (head, oldest)
// to the sentinel again (tail boundary).
type PriceLevel struct {
	sentinel Order
	count    int
	totalQty Qty
}

// init must run once, after the PriceLevel's final address is fixed
// (the levels array is allocated exactly once at construction and
// never resized), otherwise the self-referencing sentinel would point
// at a stale address.
func (lvl *PriceLevel) init() {
	lvl.sentinel.prev = &lvl.sentinel
	lvl.sentinel.next = &lvl.sentinel
}

func (lvl *PriceLevel) empty() bool {
	return lvl.count == 0
}

// front returns the oldest resting order, or nil if the level is empty.
func (lvl *PriceLevel) front() *Order {
	if lvl.sentinel.next == &lvl.sentinel {
		return nil
	}
	return lvl.sentinel.next
}

// pushBack appends o at the tail (newest) — O(1), no allocation.
func (lvl *PriceLevel) pushBack(o *Order) {
	tail := lvl.sentinel.prev
	o.prev = tail
	o.next = &lvl.sentinel
	tail.next = o
	lvl.sentinel.prev = o
	lvl.count++
	lvl.totalQty += o.qty
}

// remove unlinks o — O(1) pointer surgery, no scan.
func (lvl *PriceLevel) remove(o *Order) {
	o.prev.next = o.next
	o.next.prev = o.prev
	lvl.count--
	lvl.totalQty -= o.qty
	o.prev = nil
	o.next = nil
}

// reduceQty is called on a partial fill that leaves the head in place.
func (lvl *PriceLevel) reduceQty(delta Qty) {
	lvl.totalQty -= delta
}

// Count returns the number of resting orders at this level.
func (lvl *PriceLevel) Count() int { return lvl.count }

// TotalQty returns the aggregate remaining quantity resting at this level.
func (lvl *PriceLevel) TotalQty() Qty { return lvl.totalQty }
