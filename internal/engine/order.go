package engine

import (
	"time"

	"vaultbook/internal/common"
)

// Order is a single resting or historical order. It is never deleted once
// created: cancellation and full fill both retire it (Active=false) in
// place.
type Order struct {
	ID        uint64
	Trader    common.Account
	Price     uint64
	Amount    uint64
	Filled    uint64
	Side      common.Side
	Timestamp time.Time
	Active    bool
}

// Remaining is the unfilled portion of the order, in base units.
func (o *Order) Remaining() uint64 {
	return o.Amount - o.Filled
}
