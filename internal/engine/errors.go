package engine

import "errors"

// Error kinds are stable and non-overlapping. Every public operation fails
// by returning one of these, never by panicking.
var (
	ErrInvalidPrice              = errors.New("engine: invalid price")
	ErrInvalidAmount             = errors.New("engine: invalid amount")
	ErrBatchSizeTooLarge         = errors.New("engine: batch size too large")
	ErrInvalidInput              = errors.New("engine: mismatched input lengths")
	ErrQuoteAmountTooSmall       = errors.New("engine: quote amount too small")
	ErrBaseAmountTooSmall        = errors.New("engine: base amount too small")
	ErrUnauthorized              = errors.New("engine: unauthorized")
	ErrOrderInactive             = errors.New("engine: order inactive")
	ErrOrderNotFound             = errors.New("engine: order not found")
	ErrAmountLessThanFilled      = errors.New("engine: amount less than filled")
	ErrOrderExpired              = errors.New("engine: order expired")
	ErrNoPricesProvided          = errors.New("engine: no price hints provided")
	ErrInsufficientBaseReceived  = errors.New("engine: insufficient base received")
	ErrInsufficientQuoteReceived = errors.New("engine: insufficient quote received")
	ErrLedger                    = errors.New("engine: ledger error")
)
