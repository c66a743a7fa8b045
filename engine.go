/*****************************************************************************
 *                     Price-Time Matching Engine
 *
 * Design overview:
 *   The book is an array-indexed price level directory (levels), one
 *   PriceLevel per reachable integer tick. bestBid and bestAsk are the
 *   starting points at which matching begins: bestAsk is the lowest
 *   price holding a resting sell, bestBid the highest holding a
 *   resting buy.
 *
 *   An incoming Buy that crosses (price >= bestAsk) sweeps levels
 *   upward from bestAsk, consuming resting sells FIFO within each
 *   level, until its quantity is exhausted or it reaches a level that
 *   no longer crosses. Any remainder of a Limit order then rests at
 *   its own price; IOC and Market remainders are discarded.
 *   Incoming Sells are handled symmetrically, sweeping downward from
 *   bestBid.
 *
 *   Every live Order lives in exactly one arena slot for its whole
 *   lifetime; the price-level list and the order index only ever hold
 *   non-owning references into that slot. Cancel and a fill that
 *   exhausts an order both converge on removeFromBook, which keeps
 *   the level, the index, and the arena in lockstep.
 *****************************************************************************/

package orderbook

// Book is a single-instrument limit order book: array-indexed price
// levels, a fixed-capacity order arena, and a direct-mapped order
// index, composed into one unit. All state is owned exclusively by
// this value; there is no locking because there is no sharing —
// callers wanting to fan out across instruments construct one Book
// per instrument.
type Book struct {
	maxPrice Price
	levels   []PriceLevel // index == price tick, length maxPrice+1

	arena *arena
	index *orderIndex

	bestBid Price
	bestAsk Price

	totalOrders int
}

// New constructs a Book sized for cfg. Every array the book owns —
// price levels, the order arena, the order index — is allocated here
// and never resized again, which is what makes add/cancel/match
// allocation-free.
func New(cfg Config) (*Book, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	b := &Book{
		maxPrice: cfg.MaxPrice,
		levels:   make([]PriceLevel, cfg.MaxPrice+1),
		arena:    newArena(cfg.MaxOrders),
		index:    newOrderIndex(cfg.MaxOrders),
		bestBid:  NoBid,
		bestAsk:  cfg.MaxPrice + 1,
	}
	for i := range b.levels {
		b.levels[i].init()
	}
	return b, nil
}

// NoAsk is the best-ask sentinel for this book (MaxPrice+1); it is a
// per-instance value because MaxPrice is a construction-time
// parameter rather than a package constant.
func (b *Book) NoAsk() Price { return b.maxPrice + 1 }

// AddLimit submits a resting limit order with Timestamp 0, equivalent
// to the caller omitting the optional type and ts parameters.
func (b *Book) AddLimit(id OrderID, side Side, price Price, qty Qty) AddResult {
	return b.Add(id, side, price, qty, Limit, 0)
}

// Add submits a new order. See spec §4.4.1 for the full decision
// sequence: validate, cross if the price allows it, then either
// discard (IOC/Market/fully-matched) or rest what remains.
func (b *Book) Add(id OrderID, side Side, price Price, qty Qty, typ OrdType, ts Timestamp) AddResult {
	if b.index.lookup(id) != nil {
		return DuplicateId
	}
	if qty <= 0 {
		return InvalidQty
	}
	if price < 0 || price > b.maxPrice {
		return InvalidPrice
	}

	// Market orders ignore the price argument for crossing and sweep
	// with the same extreme limit Match uses, so a Market order
	// submitted with a non-crossing price (price=0 on the Buy side,
	// say) still sweeps instead of silently matching nothing.
	limit := price
	if typ == Market {
		if side == Buy {
			limit = b.maxPrice
		} else {
			limit = 0
		}
	}

	remaining := qty
	if side == Buy {
		if limit >= b.bestAsk {
			remaining = b.matchInternal(side, remaining, limit)
		}
	} else {
		if limit <= b.bestBid {
			remaining = b.matchInternal(side, remaining, limit)
		}
	}

	if typ == IOC || typ == Market {
		return Ok
	}
	if remaining <= 0 {
		return Ok
	}

	o := b.arena.acquire()
	if o == nil {
		return PoolExhausted
	}

	o.id = id
	o.price = price
	o.qty = remaining
	o.origQty = remaining
	o.side = side
	o.typ = typ
	o.ts = ts

	if !b.index.insert(o) {
		// Unreachable under normal operation: lookup above already
		// rejected this id, and nothing between here and insert can
		// introduce a collision on a single-threaded book.
		b.arena.release(o)
		return DuplicateId
	}

	b.levels[price].pushBack(o)
	b.totalOrders++

	if side == Buy {
		if price > b.bestBid {
			b.bestBid = price
		}
	} else {
		if price < b.bestAsk {
			b.bestAsk = price
		}
	}

	return Ok
}

// Cancel removes a resting order. Returns false if id is not resting.
func (b *Book) Cancel(id OrderID) bool {
	o := b.index.lookup(id)
	if o == nil {
		return false
	}

	price := o.price
	side := o.side

	b.removeFromBook(o)

	if side == Buy {
		if price == b.bestBid {
			b.advanceBestBid()
		}
	} else {
		if price == b.bestAsk {
			b.advanceBestAsk()
		}
	}

	return true
}

// Match sweeps resting liquidity on the opposite side of aggressor
// with no price cap, returning whatever quantity liquidity could not
// absorb.
func (b *Book) Match(aggressor Side, qty Qty) Qty {
	limit := b.maxPrice
	if aggressor == Sell {
		limit = 0
	}
	return b.matchInternal(aggressor, qty, limit)
}

func (b *Book) matchInternal(aggressor Side, qty Qty, limit Price) Qty {
	if aggressor == Buy {
		for qty > 0 && b.bestAsk <= limit && b.bestAsk <= b.maxPrice {
			lvl := &b.levels[b.bestAsk]
			qty = b.matchLevel(lvl, qty)
			if lvl.empty() {
				b.advanceBestAsk()
			}
		}
	} else {
		for qty > 0 && b.bestBid >= limit && b.bestBid >= 0 {
			lvl := &b.levels[b.bestBid]
			qty = b.matchLevel(lvl, qty)
			if lvl.empty() {
				b.advanceBestBid()
			}
		}
	}
	return qty
}

func (b *Book) matchLevel(lvl *PriceLevel, qty Qty) Qty {
	for qty > 0 && !lvl.empty() {
		o := lvl.front()

		fill := qty
		if o.qty < fill {
			fill = o.qty
		}
		o.fill(fill)
		qty -= fill
		lvl.reduceQty(fill)

		if o.filled() {
			b.removeFromBook(o)
		}
	}
	return qty
}

func (b *Book) removeFromBook(o *Order) {
	b.levels[o.price].remove(o)
	b.index.remove(o.id)
	b.arena.release(o)
	b.totalOrders--
}

func (b *Book) advanceBestBid() {
	for b.bestBid >= 0 && b.levels[b.bestBid].empty() {
		b.bestBid--
	}
}

func (b *Book) advanceBestAsk() {
	for b.bestAsk <= b.maxPrice && b.levels[b.bestAsk].empty() {
		b.bestAsk++
	}
}

// Bid returns the best (highest) resting buy price, or NoBid.
func (b *Book) Bid() Price { return b.bestBid }

// Ask returns the best (lowest) resting sell price, or NoAsk().
func (b *Book) Ask() Price { return b.bestAsk }

// BidQty returns the aggregate resting quantity at Bid(), or 0.
func (b *Book) BidQty() Qty {
	if b.bestBid < 0 {
		return 0
	}
	return b.levels[b.bestBid].TotalQty()
}

// AskQty returns the aggregate resting quantity at Ask(), or 0.
func (b *Book) AskQty() Qty {
	if b.bestAsk > b.maxPrice {
		return 0
	}
	return b.levels[b.bestAsk].TotalQty()
}

// Spread returns Ask()-Bid(); only meaningful when both HasBid and
// HasAsk are true.
func (b *Book) Spread() Price { return b.bestAsk - b.bestBid }

// HasBid reports whether any buy order rests in the book.
func (b *Book) HasBid() bool { return b.bestBid >= 0 }

// HasAsk reports whether any sell order rests in the book.
func (b *Book) HasAsk() bool { return b.bestAsk <= b.maxPrice }

// Crossed reports whether the book is in an illegal crossed state.
// This should never be true after any public call returns.
func (b *Book) Crossed() bool {
	return b.HasBid() && b.HasAsk() && b.bestBid >= b.bestAsk
}

// OrderCount returns the number of currently resting orders.
func (b *Book) OrderCount() int { return b.totalOrders }

// PoolUsed returns the number of occupied arena slots.
func (b *Book) PoolUsed() int { return b.arena.used }

// PoolCapacity returns the arena's total slot count.
func (b *Book) PoolCapacity() int { return b.arena.capacity() }

// GetOrder returns a read-only view of a resting order, or nil.
func (b *Book) GetOrder(id OrderID) *Order { return b.index.lookup(id) }

// LevelAt returns a read-only view of the price level at price.
// Callers must not call mutating methods on the result.
func (b *Book) LevelAt(price Price) *PriceLevel { return &b.levels[price] }

// MaxPrice returns the construction-time maximum valid price tick.
func (b *Book) MaxPrice() Price { return b.maxPrice }
