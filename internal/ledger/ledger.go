// Package ledger defines the external asset-custody contract the matching
// engine debits and credits against. Token transfers, in-memory wallets,
// and test doubles all live behind this interface instead of inside the
// matching engine itself.
package ledger

import (
	"context"
	"errors"

	"vaultbook/internal/common"
)

var (
	// ErrInsufficientBalance is returned by an implementation when a Debit
	// would take an account negative.
	ErrInsufficientBalance = errors.New("ledger: insufficient balance")
	// ErrUnknownAsset is returned by Decimals for an asset the ledger has
	// never been told about.
	ErrUnknownAsset = errors.New("ledger: unknown asset")
)

// Ledger moves exact integer units of an asset between a trader's account
// and the engine's custody. Debit and Credit may block (a remote or
// transactional store) but must not themselves introduce cross-order
// races: the engine holds its own serialization lock for the full duration
// of the call, so an implementation only needs to be safe for concurrent
// use across different engines, not reentrant within one.
type Ledger interface {
	// Debit moves units of asset from account into engine custody. Fails on
	// insufficient balance or allowance.
	Debit(ctx context.Context, account common.Account, asset common.Asset, units uint64) error
	// Credit moves units of asset from engine custody to account. Infallible
	// under well-formed inputs (engine custody never goes negative because
	// every credit is backed by a prior debit of equal or greater units).
	Credit(ctx context.Context, account common.Account, asset common.Asset, units uint64) error
	// Decimals reports the number of fractional digits in asset's smallest
	// unit.
	Decimals(asset common.Asset) (uint8, error)
}
