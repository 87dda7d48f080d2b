package engine

import (
	"time"

	"vaultbook/internal/common"
)

// OrderBook owns both sides of one trading pair: the PriceIndexes, the
// price->PriceLevel maps, and the order-id generator. It is a pure state
// machine — it never talks to a Ledger; MatchingEngine is the only thing
// that sequences book mutations with ledger movements.
type OrderBook struct {
	bids *PriceIndex
	asks *PriceIndex

	bidLevels map[uint64]*PriceLevel
	askLevels map[uint64]*PriceLevel

	// orders is an append-only dense vector indexed by id-1, not a map,
	// since ids are a contiguous per-engine counter starting at 1.
	orders []*Order

	byTrader map[common.Account][]uint64

	lastTradePrice uint64
	nextID         uint64
}

func newOrderBook() *OrderBook {
	return &OrderBook{
		bids:      newPriceIndex(),
		asks:      newPriceIndex(),
		bidLevels: make(map[uint64]*PriceLevel),
		askLevels: make(map[uint64]*PriceLevel),
		byTrader:  make(map[common.Account][]uint64),
	}
}

func (book *OrderBook) levelsFor(side common.Side) (*PriceIndex, map[uint64]*PriceLevel) {
	if side == common.Buy {
		return book.bids, book.bidLevels
	}
	return book.asks, book.askLevels
}

// InsertResting appends a new order to its price level's FIFO, creating
// the level and indexing the price if this is the first order there, and
// returns the freshly assigned order.
func (book *OrderBook) InsertResting(trader common.Account, side common.Side, price, amount uint64, ts time.Time) *Order {
	book.nextID++
	order := &Order{
		ID:        book.nextID,
		Trader:    trader,
		Price:     price,
		Amount:    amount,
		Side:      side,
		Timestamp: ts,
		Active:    true,
	}
	book.orders = append(book.orders, order)
	book.byTrader[trader] = append(book.byTrader[trader], order.ID)

	index, levels := book.levelsFor(side)
	level, ok := levels[price]
	if !ok {
		level = newPriceLevel(price)
		levels[price] = level
		index.Insert(price)
	}
	level.push(order.ID, amount)
	return order
}

// Order looks up an order by id. Orders are retained forever, so this
// also serves historical lookups of inactive orders.
func (book *OrderBook) Order(id uint64) (*Order, bool) {
	if id == 0 || id > uint64(len(book.orders)) {
		return nil, false
	}
	return book.orders[id-1], true
}

// OrdersOf returns the ids of every order a trader has ever placed, in
// placement order.
func (book *OrderBook) OrdersOf(trader common.Account) []uint64 {
	ids := book.byTrader[trader]
	out := make([]uint64, len(ids))
	copy(out, ids)
	return out
}

// Head peeks the first resting order at a level.
func (book *OrderBook) Head(side common.Side, price uint64) (*Order, bool) {
	_, levels := book.levelsFor(side)
	level, ok := levels[price]
	if !ok {
		return nil, false
	}
	id, ok := level.Head()
	if !ok {
		return nil, false
	}
	return book.orders[id-1], true
}

// OrderIDsAt returns every resting order id at (side, price), oldest first,
// without mutating the level. Used by the market-order planner to see past
// the head order while building a fill plan (see match.go).
func (book *OrderBook) OrderIDsAt(side common.Side, price uint64) []uint64 {
	_, levels := book.levelsFor(side)
	level, ok := levels[price]
	if !ok {
		return nil
	}
	return level.orderIDs()
}

// ApplyFill records a trade fill against a resting order. When the order
// becomes fully filled it is dequeued and retired; an emptied level is
// pruned from its side's PriceIndex in the same step.
func (book *OrderBook) ApplyFill(id, filledDelta uint64) {
	order := book.orders[id-1]
	order.Filled += filledDelta

	index, levels := book.levelsFor(order.Side)
	level := levels[order.Price]
	level.TotalLiquidity -= filledDelta

	if order.Filled >= order.Amount {
		order.Active = false
		level.unlink(id)
		if level.Empty() {
			delete(levels, order.Price)
			index.Remove(order.Price)
		}
	}
}

// RemoveOrder unlinks an order from its level regardless of queue position
// and returns the remaining (unfilled) quantity that was freed.
func (book *OrderBook) RemoveOrder(id uint64) uint64 {
	order := book.orders[id-1]
	rem := order.Remaining()
	order.Active = false

	index, levels := book.levelsFor(order.Side)
	level := levels[order.Price]
	level.unlink(id)
	level.TotalLiquidity -= rem
	if level.Empty() {
		delete(levels, order.Price)
		index.Remove(order.Price)
	}
	return rem
}

// AmendAmount changes a resting order's total Amount in place, preserving
// its FIFO position, and adjusts the level's liquidity counter by the
// base-unit delta. Returns the signed delta (new - old) for the caller to
// translate into an escrow movement.
func (book *OrderBook) AmendAmount(id uint64, newAmount uint64) int64 {
	order := book.orders[id-1]
	delta := int64(newAmount) - int64(order.Amount)
	order.Amount = newAmount

	_, levels := book.levelsFor(order.Side)
	level := levels[order.Price]
	if delta >= 0 {
		level.TotalLiquidity += uint64(delta)
	} else {
		level.TotalLiquidity -= uint64(-delta)
	}
	return delta
}

// Liquidity reports total_liquidity for (side, price), 0 if the level does
// not exist.
func (book *OrderBook) Liquidity(side common.Side, price uint64) uint64 {
	_, levels := book.levelsFor(side)
	if level, ok := levels[price]; ok {
		return level.TotalLiquidity
	}
	return 0
}

// BestBid is the maximum active buy price.
func (book *OrderBook) BestBid() (uint64, bool) { return book.bids.BestMax() }

// BestAsk is the minimum active sell price.
func (book *OrderBook) BestAsk() (uint64, bool) { return book.asks.BestMin() }

// Depth returns up to limit active prices on a side, best price first. This
// is the explicit, caller-requested bounded view distinguished from the
// internal matching path, which never truncates.
func (book *OrderBook) Depth(side common.Side, limit int) []uint64 {
	index, _ := book.levelsFor(side)
	if side == common.Buy {
		return index.Descending(limit)
	}
	return index.Ascending(limit)
}

// LastTradePrice is the price of the most recently executed trade, or 0
// before the book's first trade.
func (book *OrderBook) LastTradePrice() uint64 { return book.lastTradePrice }
