// Package events is the observable side channel a MatchingEngine and a
// PairRegistry emit on: order lifecycle transitions, fills, trades, and
// pair/quote-asset registration.
package events

import (
	"time"

	"vaultbook/internal/common"
)

type OrderCreated struct {
	Trader common.Account
	ID     uint64
	Price  uint64
	Amount uint64
	Side   common.Side
}

type OrderCancelled struct {
	ID     uint64
	Trader common.Account
}

type OrderAmended struct {
	ID        uint64
	Trader    common.Account
	NewAmount uint64
}

type OrderFilled struct {
	ID        uint64
	Trader    common.Account
	Amount    uint64
	Filled    uint64
	Remaining uint64
	Side      common.Side
}

type TradeExecuted struct {
	ID         string // durable cross-process identifier (uuid)
	Buyer      common.Account
	Seller     common.Account
	BaseAmount uint64
	Price      uint64
	Timestamp  time.Time
}

type PairCreated struct {
	Base  common.Asset
	Quote common.Asset
}

type QuoteTokenAdded struct {
	Asset common.Asset
}

// Emitter receives every lifecycle and matching event a MatchingEngine or
// PairRegistry produces.
type Emitter interface {
	OrderCreated(OrderCreated)
	OrderCancelled(OrderCancelled)
	OrderAmended(OrderAmended)
	OrderFilled(OrderFilled)
	TradeExecuted(TradeExecuted)
	PairCreated(PairCreated)
	QuoteTokenAdded(QuoteTokenAdded)
}
