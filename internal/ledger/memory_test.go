package ledger

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	vcommon "vaultbook/internal/common"
)

func acct(b byte) vcommon.Account {
	var a common.Address
	a[19] = b
	return a
}

func TestFundAndBalance(t *testing.T) {
	m := NewMemory()
	asset := acct(1)
	trader := acct(2)

	m.Fund(trader, asset, 100)
	assert.Equal(t, uint64(100), m.Balance(trader, asset))
}

func TestDebitInsufficientBalance(t *testing.T) {
	m := NewMemory()
	asset, trader := acct(1), acct(2)

	err := m.Debit(context.Background(), trader, asset, 1)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestDebitCreditRoundTrip(t *testing.T) {
	m := NewMemory()
	asset, trader := acct(1), acct(2)
	m.Fund(trader, asset, 50)

	assert.NoError(t, m.Debit(context.Background(), trader, asset, 20))
	assert.Equal(t, uint64(30), m.Balance(trader, asset))

	assert.NoError(t, m.Credit(context.Background(), trader, asset, 20))
	assert.Equal(t, uint64(50), m.Balance(trader, asset))
}

func TestDecimalsUnknownAsset(t *testing.T) {
	m := NewMemory()
	_, err := m.Decimals(acct(9))
	assert.ErrorIs(t, err, ErrUnknownAsset)
}

func TestDecimalsRegistered(t *testing.T) {
	m := NewMemory()
	asset := acct(1)
	m.SetDecimals(asset, 6)

	d, err := m.Decimals(asset)
	assert.NoError(t, err)
	assert.Equal(t, uint8(6), d)
}
