package orderbook

import (
	"testing"

	"pgregory.net/rapid"
)

// checkInvariants asserts the state invariants of spec.md §8 against
// the current state of b (order counts agree, per-level quantity totals,
// never crossed, every resting id reachable), given the set of ids the
// model believes are still resting. The add-then-cancel round trip is
// not checked here.
func checkInvariants(t *rapid.T, b *Book, resting map[OrderID]struct{}) {
	sumLevelCounts := 0
	for p := Price(0); p <= b.maxPrice; p++ {
		lvl := b.LevelAt(p)
		sumLevelCounts += lvl.Count()

		var sum Qty
		for o := lvl.front(); o != nil && o != &lvl.sentinel; o = o.next {
			sum += o.qty
			if o.next == &lvl.sentinel {
				break
			}
		}
		if sum != lvl.TotalQty() {
			t.Fatalf("level %d: total_qty=%d but sum of order qty=%d", p, lvl.TotalQty(), sum)
		}
	}

	if b.OrderCount() != b.PoolUsed() || b.OrderCount() != sumLevelCounts {
		t.Fatalf("total_orders=%d pool_used=%d sum(level.count)=%d, want all equal",
			b.OrderCount(), b.PoolUsed(), sumLevelCounts)
	}
	if b.OrderCount() != len(resting) {
		t.Fatalf("total_orders=%d but model tracks %d resting ids", b.OrderCount(), len(resting))
	}

	if b.HasBid() && b.HasAsk() && b.Bid() >= b.Ask() {
		t.Fatalf("book crossed: bid=%d ask=%d", b.Bid(), b.Ask())
	}

	for id := range resting {
		if b.GetOrder(id) == nil {
			t.Fatalf("order %d should be resting but lookup missed", id)
		}
	}
}

func TestPropertyInvariantsHoldUnderRandomOps(t *testing.T) {
	const maxPrice = Price(200)
	const maxOrders = 500

	rapid.Check(t, func(t *rapid.T) {
		b, err := New(Config{MaxPrice: maxPrice, MaxOrders: maxOrders})
		if err != nil {
			t.Fatalf("New: %v", err)
		}

		resting := make(map[OrderID]struct{})
		nextID := OrderID(1)

		ops := rapid.IntRange(1, 80).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0: // add
				side := Buy
				if rapid.Bool().Draw(t, "sell") {
					side = Sell
				}
				price := Price(rapid.Int64Range(0, int64(maxPrice)).Draw(t, "price"))
				qty := Qty(rapid.Int64Range(1, 50).Draw(t, "qty"))

				id := nextID
				nextID++

				res := b.AddLimit(id, side, price, qty)
				switch res {
				case Ok:
					// A crossing add fills resting orders on entry;
					// drop any the engine no longer holds.
					for rid := range resting {
						if b.GetOrder(rid) == nil {
							delete(resting, rid)
						}
					}
					if b.GetOrder(id) != nil {
						resting[id] = struct{}{}
					}
				case PoolExhausted:
					// no state change
				default:
					t.Fatalf("unexpected AddResult for fresh id: %v", res)
				}
			case 1: // cancel a random previously-seen id (may already be gone)
				if len(resting) == 0 {
					continue
				}
				var victim OrderID
				for id := range resting {
					victim = id
					break
				}
				if b.Cancel(victim) {
					delete(resting, victim)
				}
			case 2: // market-style match sweep
				side := Buy
				if rapid.Bool().Draw(t, "matchSell") {
					side = Sell
				}
				qty := Qty(rapid.Int64Range(1, 100).Draw(t, "matchQty"))
				b.Match(side, qty)
				for id := range resting {
					if b.GetOrder(id) == nil {
						delete(resting, id)
					}
				}
			}

			checkInvariants(t, b, resting)
		}
	})
}

func TestPropertyAddDuplicateAlwaysRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b, err := New(Config{MaxPrice: 1000, MaxOrders: 100})
		if err != nil {
			t.Fatalf("New: %v", err)
		}

		id := OrderID(rapid.Uint64Range(1, 1000).Draw(t, "id"))
		price := Price(rapid.Int64Range(0, 1000).Draw(t, "price"))
		qty := Qty(rapid.Int64Range(1, 10).Draw(t, "qty"))

		first := b.AddLimit(id, Buy, price, qty)
		if first != Ok && first != PoolExhausted {
			t.Fatalf("unexpected first AddResult: %v", first)
		}
		if first != Ok {
			return
		}

		countBefore := b.OrderCount()
		second := b.AddLimit(id, Sell, price, qty)
		if second != DuplicateId {
			t.Fatalf("expected DuplicateId on repeat id, got %v", second)
		}
		if b.OrderCount() != countBefore {
			t.Fatalf("DuplicateId mutated book state: count %d -> %d", countBefore, b.OrderCount())
		}
	})
}

func TestPropertyMatchOnEmptyBookReturnsQtyUnchanged(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b, err := New(Config{MaxPrice: 1000, MaxOrders: 100})
		if err != nil {
			t.Fatalf("New: %v", err)
		}

		side := Buy
		if rapid.Bool().Draw(t, "sell") {
			side = Sell
		}
		qty := Qty(rapid.Int64Range(1, 1000).Draw(t, "qty"))

		unfilled := b.Match(side, qty)
		if unfilled != qty {
			t.Fatalf("expected unfilled == qty on empty book, got unfilled=%d qty=%d", unfilled, qty)
		}
	})
}
