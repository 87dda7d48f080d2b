package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vaultbook/internal/common"
	"vaultbook/internal/events"
)

// batchRef identifies one side of a planned fill step before a batch
// placement's own legs have been assigned real order ids: either an order
// already resting on the book (orderID) or the not-yet-inserted leg at
// legIdx within the batch currently being planned.
type batchRef struct {
	fromLeg bool
	legIdx  int
	orderID uint64
}

// batchFillStep is one step of a batch limit placement's staged match plan,
// analogous to plannedFill for ExecuteMarket. legTrigger is the index of the
// leg whose insertion caused this fill, so Place can replay fills
// interleaved with inserts in the same order planBatch discovered them in.
type batchFillStep struct {
	legTrigger int
	price      uint64
	buyRef     batchRef
	sellRef    batchRef
	baseAmount uint64
	quoteValue uint64
}

// planBatch simulates inserting and crossing every leg of a batch limit
// placement, in order, without mutating the book or moving any ledger
// balance. Matching is localized to each leg's own price, exactly as
// crossing a single resting order is: a newly inserted BUY at P is matched
// only against asks resting at exactly P, never against a cheaper ask
// resting at a better price, and a SELL at P only against bids at exactly
// P. A limit order does not sweep the spread — that is ExecuteMarket's job,
// walking an explicit caller-supplied sequence of price levels. This
// preserves the source's documented (if surprising) placement semantics: a
// BUY placed at 100 while the best ask rests at 90 does not execute against
// that ask.
//
// Planning the whole batch before touching real state is what lets Place
// honor the all-or-nothing propagation rule: a dust fill that would occur
// on a later leg aborts the entire call before the escrow debit or any
// insert has happened, rather than leaving earlier legs in the same batch
// half-applied.
func (e *MatchingEngine) planBatch(side common.Side, legs []Leg) ([]batchFillStep, error) {
	opposite := side.Opposite()

	ownQueues := make(map[uint64][]batchRef)
	oppQueues := make(map[uint64][]batchRef)
	remaining := make(map[batchRef]uint64)

	loadQueue := func(cache map[uint64][]batchRef, queueSide common.Side, price uint64) []batchRef {
		if q, ok := cache[price]; ok {
			return q
		}
		ids := e.book.OrderIDsAt(queueSide, price)
		q := make([]batchRef, 0, len(ids))
		for _, id := range ids {
			ref := batchRef{orderID: id}
			if o, ok := e.book.Order(id); ok {
				remaining[ref] = o.Remaining()
			}
			q = append(q, ref)
		}
		cache[price] = q
		return q
	}

	var plan []batchFillStep

	for legIdx, leg := range legs {
		own := loadQueue(ownQueues, side, leg.Price)
		newRef := batchRef{fromLeg: true, legIdx: legIdx}
		remaining[newRef] = leg.Amount
		own = append(own, newRef)
		ownQueues[leg.Price] = own

		for {
			own = ownQueues[leg.Price]
			opp := loadQueue(oppQueues, opposite, leg.Price)
			if len(own) == 0 || len(opp) == 0 {
				break
			}

			b, s := own[0], opp[0]
			fillAmount := remaining[b]
			if r := remaining[s]; r < fillAmount {
				fillAmount = r
			}
			if fillAmount == 0 {
				break
			}

			quoteValue, err := QuoteUnits(fillAmount, leg.Price, e.baseDecimals)
			if err != nil {
				return nil, err
			}

			buyRef, sellRef := b, s
			if side == common.Sell {
				buyRef, sellRef = s, b
			}
			plan = append(plan, batchFillStep{
				legTrigger: legIdx,
				price:      leg.Price,
				buyRef:     buyRef,
				sellRef:    sellRef,
				baseAmount: fillAmount,
				quoteValue: quoteValue,
			})

			remaining[b] -= fillAmount
			remaining[s] -= fillAmount
			if remaining[b] == 0 {
				ownQueues[leg.Price] = own[1:]
			}
			if remaining[s] == 0 {
				oppQueues[leg.Price] = opp[1:]
			}
		}
	}
	return plan, nil
}

// resolveBatchRef resolves a batchRef produced during planning into the
// live *Order it refers to, translating a not-yet-inserted leg reference
// into the real order id Place assigned it during commit.
func (e *MatchingEngine) resolveBatchRef(ref batchRef, legIDs []uint64) *Order {
	id := ref.orderID
	if ref.fromLeg {
		id = legIDs[ref.legIdx]
	}
	order, _ := e.book.Order(id)
	return order
}

// settleFill credits both counterparties for one matched quantity, applies
// the fill to both resting orders, and emits the trade and fill events.
func (e *MatchingEngine) settleFill(ctx context.Context, buy, sell *Order, price, baseAmount, quoteValue uint64) error {
	if err := e.ledger.Credit(ctx, buy.Trader, e.baseAsset, baseAmount); err != nil {
		return fmt.Errorf("%w: %v", ErrLedger, err)
	}
	if err := e.ledger.Credit(ctx, sell.Trader, e.quoteAsset, quoteValue); err != nil {
		return fmt.Errorf("%w: %v", ErrLedger, err)
	}

	e.book.ApplyFill(buy.ID, baseAmount)
	e.book.ApplyFill(sell.ID, baseAmount)
	e.book.lastTradePrice = price

	e.emitter.OrderFilled(events.OrderFilled{
		ID: buy.ID, Trader: buy.Trader, Amount: baseAmount,
		Filled: buy.Filled, Remaining: buy.Remaining(), Side: common.Buy,
	})
	e.emitter.OrderFilled(events.OrderFilled{
		ID: sell.ID, Trader: sell.Trader, Amount: baseAmount,
		Filled: sell.Filled, Remaining: sell.Remaining(), Side: common.Sell,
	})
	e.emitter.TradeExecuted(events.TradeExecuted{
		ID:         uuid.New().String(),
		Buyer:      buy.Trader,
		Seller:     sell.Trader,
		BaseAmount: baseAmount,
		Price:      price,
		Timestamp:  buy.Timestamp,
	})
	return nil
}

// plannedFill is one step of a market order's staged execution plan: fill
// baseAmount against the resting order at (price, orderID) without
// mutating the book.
type plannedFill struct {
	orderID    uint64
	price      uint64
	baseAmount uint64
	quoteValue uint64
}

// ExecuteMarket walks priceHints in the order given, consuming resting
// liquidity up to budget (base units if side is Sell — the trader is
// selling base for quote — or quote units if side is Buy), until budget is
// exhausted or the hints run out. Apart from debiting budget up front, it
// never mutates the book or moves ledger balances until the whole plan is
// built and validated against minReceived, so a failure only ever needs to
// refund that original debit.
// expiration is a unix timestamp past which the order must not execute;
// zero means it never expires.
func (e *MatchingEngine) ExecuteMarket(ctx context.Context, trader common.Account, side common.Side, budget uint64, priceHints []uint64, minReceived uint64, expiration uint64) (received uint64, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if budget == 0 {
		return 0, ErrInvalidAmount
	}
	if len(priceHints) == 0 {
		return 0, ErrNoPricesProvided
	}
	if expiration != 0 && uint64(time.Now().Unix()) >= expiration {
		return 0, ErrOrderExpired
	}

	debitAsset := e.baseAsset
	if side == common.Buy {
		debitAsset = e.quoteAsset
	}
	if err := e.ledger.Debit(ctx, trader, debitAsset, budget); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLedger, err)
	}

	plan, _, totalReceived := e.planMarket(side, budget, priceHints)

	if totalReceived < minReceived {
		if err := e.ledger.Credit(ctx, trader, debitAsset, budget); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrLedger, err)
		}
		if side == common.Buy {
			return 0, ErrInsufficientBaseReceived
		}
		return 0, ErrInsufficientQuoteReceived
	}

	spent, err := e.commitMarket(ctx, trader, side, plan)
	if err != nil {
		if cErr := e.ledger.Credit(ctx, trader, debitAsset, budget); cErr != nil {
			return 0, fmt.Errorf("%w: %v", ErrLedger, cErr)
		}
		return 0, err
	}

	if refund := budget - spent; refund > 0 {
		if err := e.ledger.Credit(ctx, trader, debitAsset, refund); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrLedger, err)
		}
	}

	return totalReceived, nil
}

// planMarket builds a fill plan against the resting side opposite side,
// walking priceHints in order and each price's queue oldest-first, without
// touching the book. allocated tracks how much of each resting order's
// remaining quantity the plan has already spoken for, so a price level
// with multiple orders is consumed correctly even though nothing is
// mutated yet.
func (e *MatchingEngine) planMarket(side common.Side, budget uint64, priceHints []uint64) (plan []plannedFill, remainingBudget, totalReceived uint64) {
	restingSide := common.Sell
	if side == common.Sell {
		restingSide = common.Buy
	}

	allocated := make(map[uint64]uint64)
	remainingBudget = budget

	for _, price := range priceHints {
		if remainingBudget == 0 {
			break
		}
		for _, id := range e.book.OrderIDsAt(restingSide, price) {
			if remainingBudget == 0 {
				break
			}
			order, ok := e.book.Order(id)
			if !ok || !order.Active {
				continue
			}
			avail := order.Remaining() - allocated[id]
			if avail == 0 {
				continue
			}

			var baseAmount, quoteValue uint64
			if side == common.Buy {
				maxBase, err := BaseUnits(remainingBudget, price, e.baseDecimals)
				if err != nil {
					// remainingBudget can't buy a single base unit at this
					// price; every other resting order at this price shares
					// the same budget cap, so none of them can either.
					break
				}
				baseAmount = avail
				if maxBase < baseAmount {
					baseAmount = maxBase
				}
				qv, err := QuoteUnits(baseAmount, price, e.baseDecimals)
				if err != nil {
					// This order's slice of the budget rounds to zero quote;
					// a later order with a larger avail may still clear it.
					continue
				}
				quoteValue = qv
				if quoteValue > remainingBudget {
					quoteValue = remainingBudget
				}
			} else {
				baseAmount = avail
				if remainingBudget < baseAmount {
					baseAmount = remainingBudget
				}
				qv, err := QuoteUnits(baseAmount, price, e.baseDecimals)
				if err != nil {
					continue
				}
				quoteValue = qv
			}

			allocated[id] += baseAmount
			plan = append(plan, plannedFill{orderID: id, price: price, baseAmount: baseAmount, quoteValue: quoteValue})

			if side == common.Buy {
				remainingBudget -= quoteValue
				totalReceived += baseAmount
			} else {
				remainingBudget -= baseAmount
				totalReceived += quoteValue
			}
		}
	}
	return plan, remainingBudget, totalReceived
}

// commitMarket applies a validated plan: credits the counterparty on each
// step, applies the book fill, and emits events. Returns the total amount
// of the original debit asset actually spent.
func (e *MatchingEngine) commitMarket(ctx context.Context, trader common.Account, side common.Side, plan []plannedFill) (spent uint64, err error) {
	for _, step := range plan {
		resting, ok := e.book.Order(step.orderID)
		if !ok {
			return spent, ErrOrderNotFound
		}

		var takerEvent events.OrderFilled
		if side == common.Buy {
			// Taker is buying base with a quote budget: the resting seller
			// gets the quote value, the taker gets the base amount.
			if err := e.ledger.Credit(ctx, resting.Trader, e.quoteAsset, step.quoteValue); err != nil {
				return spent, fmt.Errorf("%w: %v", ErrLedger, err)
			}
			if err := e.ledger.Credit(ctx, trader, e.baseAsset, step.baseAmount); err != nil {
				return spent, fmt.Errorf("%w: %v", ErrLedger, err)
			}
			spent += step.quoteValue
			takerEvent = events.OrderFilled{ID: 0, Trader: trader, Amount: step.baseAmount, Side: common.Buy}
		} else {
			// Taker is selling base for quote: the resting buyer gets the
			// base amount, the taker gets the quote value.
			if err := e.ledger.Credit(ctx, resting.Trader, e.baseAsset, step.baseAmount); err != nil {
				return spent, fmt.Errorf("%w: %v", ErrLedger, err)
			}
			if err := e.ledger.Credit(ctx, trader, e.quoteAsset, step.quoteValue); err != nil {
				return spent, fmt.Errorf("%w: %v", ErrLedger, err)
			}
			spent += step.baseAmount
			takerEvent = events.OrderFilled{ID: 0, Trader: trader, Amount: step.baseAmount, Side: common.Sell}
		}

		e.book.ApplyFill(step.orderID, step.baseAmount)
		e.book.lastTradePrice = step.price

		e.emitter.OrderFilled(events.OrderFilled{
			ID: resting.ID, Trader: resting.Trader, Amount: step.baseAmount,
			Filled: resting.Filled, Remaining: resting.Remaining(), Side: resting.Side,
		})
		e.emitter.OrderFilled(takerEvent)

		buyer, seller := trader, resting.Trader
		if side == common.Sell {
			buyer, seller = resting.Trader, trader
		}
		e.emitter.TradeExecuted(events.TradeExecuted{
			ID:         uuid.New().String(),
			Buyer:      buyer,
			Seller:     seller,
			BaseAmount: step.baseAmount,
			Price:      step.price,
			Timestamp:  resting.Timestamp,
		})
	}
	return spent, nil
}
