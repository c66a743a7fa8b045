package orderbook

// orderIndex is a direct-mapped, open-addressed table: slot(id) = id
// mod capacity, collisions resolved by linear probing. The expected
// workload assigns ids monotonically, so this resolves at the first
// probe in the common case; sizing capacity as a small multiple of the
// expected peak live-order count keeps the load factor — and so the
// expected probe length — low.
type orderIndex struct {
	entries []*Order
}

func newOrderIndex(capacity int) *orderIndex {
	return &orderIndex{entries: make([]*Order, capacity)}
}

func (ix *orderIndex) slot(id OrderID) int {
	return int(uint64(id) % uint64(len(ix.entries)))
}

// lookup follows the probe chain until it finds id, hits a vacant
// slot (miss), or revisits the starting index (miss — table full of
// other ids).
func (ix *orderIndex) lookup(id OrderID) *Order {
	start := ix.slot(id)
	idx := start
	for {
		o := ix.entries[idx]
		if o == nil {
			return nil
		}
		if o.id == id {
			return o
		}
		idx = (idx + 1) % len(ix.entries)
		if idx == start {
			return nil
		}
	}
}

// insert places o at its natural slot or the next vacancy along the
// probe chain. Returns false on a duplicate id or a full table.
func (ix *orderIndex) insert(o *Order) bool {
	start := ix.slot(o.id)
	idx := start
	for ix.entries[idx] != nil {
		if ix.entries[idx].id == o.id {
			return false
		}
		idx = (idx + 1) % len(ix.entries)
		if idx == start {
			return false
		}
	}
	ix.entries[idx] = o
	return true
}

// remove vacates id's slot, then rehashes every subsequent non-vacant
// entry along the probe chain in place, sweeping forward until the
// first vacancy, so no entry displaced by the original insert is ever
// lost. A rehashed entry may land earlier than where it started —
// including back at its own natural slot.
func (ix *orderIndex) remove(id OrderID) {
	n := len(ix.entries)
	idx := ix.slot(id)
	for ix.entries[idx] != nil {
		if ix.entries[idx].id == id {
			ix.entries[idx] = nil
			next := (idx + 1) % n
			for ix.entries[next] != nil {
				displaced := ix.entries[next]
				ix.entries[next] = nil
				ix.insert(displaced)
				next = (next + 1) % n
			}
			return
		}
		idx = (idx + 1) % n
	}
}
