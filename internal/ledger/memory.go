package ledger

import (
	"context"
	"sync"

	"vaultbook/internal/common"
)

// MemoryLedger is an in-process reference Ledger: per-account-per-asset
// uint64 balances guarded by a single mutex. It exists for the demo binary
// and the test suite; a production deployment would replace it with a token
// transfer or custodial-wallet backed implementation without touching the
// engine.
type MemoryLedger struct {
	mu       sync.Mutex
	balances map[common.Account]map[common.Asset]uint64
	decimals map[common.Asset]uint8
}

// NewMemory returns an empty MemoryLedger.
func NewMemory() *MemoryLedger {
	return &MemoryLedger{
		balances: make(map[common.Account]map[common.Asset]uint64),
		decimals: make(map[common.Asset]uint8),
	}
}

// SetDecimals registers the fractional precision of an asset. Must be
// called before any engine using that asset is constructed.
func (m *MemoryLedger) SetDecimals(asset common.Asset, decimals uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decimals[asset] = decimals
}

// Fund credits an account out of thin air, for test and demo setup.
func (m *MemoryLedger) Fund(account common.Account, asset common.Asset, units uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLocked(account)
	m.balances[account][asset] += units
}

// Balance reports an account's current holding of asset.
func (m *MemoryLedger) Balance(account common.Account, asset common.Asset) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[account][asset]
}

func (m *MemoryLedger) Debit(ctx context.Context, account common.Account, asset common.Asset, units uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLocked(account)
	if m.balances[account][asset] < units {
		return ErrInsufficientBalance
	}
	m.balances[account][asset] -= units
	return nil
}

func (m *MemoryLedger) Credit(ctx context.Context, account common.Account, asset common.Asset, units uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLocked(account)
	m.balances[account][asset] += units
	return nil
}

func (m *MemoryLedger) Decimals(asset common.Asset) (uint8, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.decimals[asset]
	if !ok {
		return 0, ErrUnknownAsset
	}
	return d, nil
}

func (m *MemoryLedger) ensureLocked(account common.Account) {
	if m.balances[account] == nil {
		m.balances[account] = make(map[common.Asset]uint64)
	}
}
