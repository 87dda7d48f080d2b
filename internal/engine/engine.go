// Package engine is the matching engine: the order book data model, the
// matching algorithm, and the order lifecycle operations.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"vaultbook/internal/common"
	"vaultbook/internal/events"
	"vaultbook/internal/ledger"
)

// MaxBatchSize bounds a single Place call.
const MaxBatchSize = 100

// Leg is one (price, amount) pair in a batch limit placement.
type Leg struct {
	Price  uint64
	Amount uint64
}

// MatchingEngine executes placement, cancel, amend and market-order
// operations over one OrderBook and one Ledger, for a single (base, quote)
// pair. mu serializes every operation, so no two operations on the same
// engine ever observe each other's partial state. internal/actor.Actor
// offers a single-writer-goroutine alternative to this coarse mutex.
type MatchingEngine struct {
	mu sync.Mutex

	book   *OrderBook
	ledger ledger.Ledger

	baseAsset    common.Asset
	quoteAsset   common.Asset
	baseDecimals uint8

	emitter events.Emitter
}

// New constructs a MatchingEngine for (base, quote), reading both assets'
// decimal precision from the ledger up front. Only baseDecimals feeds the
// scaling formulas (D = 10^baseDecimals throughout); quote's decimals are
// still looked up so an unknown quote asset is rejected at construction
// rather than surfacing later as an opaque ledger error.
func New(base, quote common.Asset, led ledger.Ledger, emitter events.Emitter) (*MatchingEngine, error) {
	baseDecimals, err := led.Decimals(base)
	if err != nil {
		return nil, fmt.Errorf("%w: base asset: %v", ErrLedger, err)
	}
	if _, err := led.Decimals(quote); err != nil {
		return nil, fmt.Errorf("%w: quote asset: %v", ErrLedger, err)
	}
	return &MatchingEngine{
		book:         newOrderBook(),
		ledger:       led,
		baseAsset:    base,
		quoteAsset:   quote,
		baseDecimals: baseDecimals,
		emitter:      emitter,
	}, nil
}

// BaseAsset is the pair's base asset.
func (e *MatchingEngine) BaseAsset() common.Asset { return e.baseAsset }

// QuoteAsset is the pair's quote asset.
func (e *MatchingEngine) QuoteAsset() common.Asset { return e.quoteAsset }

// LastTradePrice is the price of the most recently executed trade, 0 before
// the first one.
func (e *MatchingEngine) LastTradePrice() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.LastTradePrice()
}

// Order looks up an order by id.
func (e *MatchingEngine) Order(id uint64) (Order, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	o, ok := e.book.Order(id)
	if !ok {
		return Order{}, false
	}
	return *o, true
}

// OrdersOf lists the ids of every order an account has ever placed.
func (e *MatchingEngine) OrdersOf(account common.Account) []uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.OrdersOf(account)
}

// Liquidity reports the resting base-unit liquidity at (side, price).
func (e *MatchingEngine) Liquidity(side common.Side, price uint64) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Liquidity(side, price)
}

// Depth returns up to limit active prices on a side, best price first.
func (e *MatchingEngine) Depth(side common.Side, limit int) []uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Depth(side, limit)
}

// Place submits a batch limit order. Legs are validated together, the
// entire batch's crossing outcome is planned and validated against the
// current book before anything is committed, escrow is then debited once,
// and finally every leg is inserted and its planned fills applied in array
// order. Planning the whole batch up front means a dust fill that would
// occur on a later leg aborts the call before any escrow moves or any
// order is inserted — there is no partial batch to unwind. Returns the
// assigned order ids in leg order.
func (e *MatchingEngine) Place(ctx context.Context, trader common.Account, side common.Side, legs []Leg) ([]uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(legs)
	if n == 0 {
		return nil, ErrInvalidInput
	}
	if n > MaxBatchSize {
		return nil, ErrBatchSizeTooLarge
	}

	escrowAsset := e.quoteAsset
	if side == common.Sell {
		escrowAsset = e.baseAsset
	}

	var total uint64
	for _, leg := range legs {
		if leg.Price == 0 {
			return nil, ErrInvalidPrice
		}
		if leg.Amount == 0 {
			return nil, ErrInvalidAmount
		}
		qu, err := QuoteUnits(leg.Amount, leg.Price, e.baseDecimals)
		if err != nil {
			return nil, err
		}
		if side == common.Buy {
			total += qu
		} else {
			total += leg.Amount
		}
	}

	plan, err := e.planBatch(side, legs)
	if err != nil {
		return nil, err
	}

	if err := e.ledger.Debit(ctx, trader, escrowAsset, total); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedger, err)
	}

	ids := make([]uint64, n)
	now := time.Now()
	step := 0
	for i, leg := range legs {
		order := e.book.InsertResting(trader, side, leg.Price, leg.Amount, now)
		ids[i] = order.ID
		e.emitter.OrderCreated(events.OrderCreated{
			Trader: trader,
			ID:     order.ID,
			Price:  leg.Price,
			Amount: leg.Amount,
			Side:   side,
		})

		for step < len(plan) && plan[step].legTrigger == i {
			s := plan[step]
			buy := e.resolveBatchRef(s.buyRef, ids)
			sell := e.resolveBatchRef(s.sellRef, ids)
			if err := e.settleFill(ctx, buy, sell, s.price, s.baseAmount, s.quoteValue); err != nil {
				return ids, err
			}
			step++
		}
	}
	return ids, nil
}

// Cancel retires an active order and refunds its unfilled escrow.
func (e *MatchingEngine) Cancel(ctx context.Context, trader common.Account, id uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	order, ok := e.book.Order(id)
	if !ok {
		return ErrOrderNotFound
	}
	if order.Trader != trader {
		return ErrUnauthorized
	}
	if !order.Active {
		return ErrOrderInactive
	}

	rem := order.Remaining()
	price, side := order.Price, order.Side
	e.book.RemoveOrder(id)

	asset := e.quoteAsset
	refund := rem
	if side == common.Buy {
		refund = scaleDown(rem, price, e.baseDecimals)
	} else {
		asset = e.baseAsset
	}
	if refund > 0 {
		if err := e.ledger.Credit(ctx, trader, asset, refund); err != nil {
			return fmt.Errorf("%w: %v", ErrLedger, err)
		}
	}

	e.emitter.OrderCancelled(events.OrderCancelled{ID: id, Trader: trader})
	return nil
}

// Amend changes a resting order's total amount, preserving its FIFO
// position. Growing the order debits additional escrow; shrinking it
// refunds the difference.
func (e *MatchingEngine) Amend(ctx context.Context, trader common.Account, id uint64, newAmount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	order, ok := e.book.Order(id)
	if !ok {
		return ErrOrderNotFound
	}
	if order.Trader != trader {
		return ErrUnauthorized
	}
	if !order.Active {
		return ErrOrderInactive
	}
	if newAmount == 0 {
		return ErrInvalidAmount
	}
	if newAmount <= order.Filled {
		return ErrAmountLessThanFilled
	}

	asset := e.quoteAsset
	if order.Side == common.Sell {
		asset = e.baseAsset
	}

	switch {
	case newAmount > order.Amount:
		growth := newAmount - order.Amount
		if order.Side == common.Buy {
			growth = scaleDown(growth, order.Price, e.baseDecimals)
		}
		if growth > 0 {
			if err := e.ledger.Debit(ctx, trader, asset, growth); err != nil {
				return fmt.Errorf("%w: %v", ErrLedger, err)
			}
		}
	case newAmount < order.Amount:
		shrink := order.Amount - newAmount
		if order.Side == common.Buy {
			shrink = scaleDown(shrink, order.Price, e.baseDecimals)
		}
		if shrink > 0 {
			if err := e.ledger.Credit(ctx, trader, asset, shrink); err != nil {
				return fmt.Errorf("%w: %v", ErrLedger, err)
			}
		}
	}

	e.book.AmendAmount(id, newAmount)
	e.emitter.OrderAmended(events.OrderAmended{ID: id, Trader: trader, NewAmount: newAmount})
	return nil
}
