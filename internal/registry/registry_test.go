package registry

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaultbook/internal/events"
	"vaultbook/internal/ledger"
)

func asset(b byte) common.Address {
	var a common.Address
	a[19] = b
	return a
}

func newTestRegistry(t *testing.T) (*PairRegistry, *ledger.MemoryLedger) {
	t.Helper()
	mem := ledger.NewMemory()
	return New(mem, &events.RecordingEmitter{}), mem
}

func TestCreateRequiresWhitelistedQuote(t *testing.T) {
	reg, mem := newTestRegistry(t)
	base, quote := asset(1), asset(2)
	mem.SetDecimals(base, 8)
	mem.SetDecimals(quote, 6)

	_, err := reg.Create(base, quote)
	assert.ErrorIs(t, err, ErrQuoteTokenNotWhitelisted)

	require.NoError(t, reg.AddQuote(quote))
	pair, err := reg.Create(base, quote)
	require.NoError(t, err)
	assert.Equal(t, base, pair.Base)
	assert.Equal(t, quote, pair.Quote)
}

func TestCreateRejectsDuplicatePairEitherOrder(t *testing.T) {
	reg, mem := newTestRegistry(t)
	base, quote := asset(1), asset(2)
	mem.SetDecimals(base, 8)
	mem.SetDecimals(quote, 6)
	require.NoError(t, reg.AddQuote(quote))

	_, err := reg.Create(base, quote)
	require.NoError(t, err)

	_, err = reg.Create(base, quote)
	assert.ErrorIs(t, err, ErrPairAlreadyExists)

	_, err = reg.Create(quote, base)
	assert.ErrorIs(t, err, ErrPairAlreadyExists)
}

func TestCreateRejectsSameAsset(t *testing.T) {
	reg, mem := newTestRegistry(t)
	a := asset(1)
	mem.SetDecimals(a, 8)
	require.NoError(t, reg.AddQuote(a))

	_, err := reg.Create(a, a)
	assert.ErrorIs(t, err, ErrIdenticalTokens)
}

func TestCreateRejectsZeroAssets(t *testing.T) {
	reg, mem := newTestRegistry(t)
	quote := asset(2)
	mem.SetDecimals(quote, 6)
	require.NoError(t, reg.AddQuote(quote))

	_, err := reg.Create(common.Address{}, quote)
	assert.ErrorIs(t, err, ErrInvalidBaseToken)
}

func TestAddQuoteRejectsZeroAndDuplicate(t *testing.T) {
	reg, _ := newTestRegistry(t)

	err := reg.AddQuote(common.Address{})
	assert.ErrorIs(t, err, ErrInvalidQuoteToken)

	quote := asset(5)
	require.NoError(t, reg.AddQuote(quote))
	err = reg.AddQuote(quote)
	assert.ErrorIs(t, err, ErrQuoteAlreadyWhitelisted)
}

func TestGetFindsPairEitherOrder(t *testing.T) {
	reg, mem := newTestRegistry(t)
	base, quote := asset(1), asset(2)
	mem.SetDecimals(base, 8)
	mem.SetDecimals(quote, 6)
	require.NoError(t, reg.AddQuote(quote))

	created, err := reg.Create(base, quote)
	require.NoError(t, err)

	found, ok := reg.Get(quote, base)
	assert.True(t, ok)
	assert.Same(t, created.MatchingEngine, found.MatchingEngine)
}

func TestByIndexAndCount(t *testing.T) {
	reg, mem := newTestRegistry(t)
	quote := asset(9)
	mem.SetDecimals(quote, 6)
	require.NoError(t, reg.AddQuote(quote))

	for i := byte(1); i <= 3; i++ {
		base := asset(i)
		mem.SetDecimals(base, 8)
		_, err := reg.Create(base, quote)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, reg.Count())
	p, err := reg.ByIndex(1)
	require.NoError(t, err)
	assert.Equal(t, asset(2), p.Base)

	_, err = reg.ByIndex(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}
