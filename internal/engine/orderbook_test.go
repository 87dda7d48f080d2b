package engine

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	vcommon "vaultbook/internal/common"
)

func addr(b byte) vcommon.Account {
	var a common.Address
	a[19] = b
	return a
}

func TestInsertRestingCreatesLevel(t *testing.T) {
	book := newOrderBook()
	order := book.InsertResting(addr(1), vcommon.Buy, 100, 10, time.Now())

	assert.Equal(t, uint64(1), order.ID)
	assert.Equal(t, uint64(10), book.Liquidity(vcommon.Buy, 100))

	bid, ok := book.BestBid()
	assert.True(t, ok)
	assert.Equal(t, uint64(100), bid)
}

func TestFIFOOrderingWithinLevel(t *testing.T) {
	book := newOrderBook()
	first := book.InsertResting(addr(1), vcommon.Sell, 100, 5, time.Now())
	book.InsertResting(addr(2), vcommon.Sell, 100, 5, time.Now())

	head, ok := book.Head(vcommon.Sell, 100)
	assert.True(t, ok)
	assert.Equal(t, first.ID, head.ID)
}

func TestApplyFillRetiresFullyFilledOrder(t *testing.T) {
	book := newOrderBook()
	order := book.InsertResting(addr(1), vcommon.Buy, 100, 10, time.Now())

	book.ApplyFill(order.ID, 10)

	assert.False(t, order.Active)
	assert.Equal(t, uint64(0), book.Liquidity(vcommon.Buy, 100))
	_, ok := book.BestBid()
	assert.False(t, ok)
}

func TestApplyFillPartialKeepsOrderResting(t *testing.T) {
	book := newOrderBook()
	order := book.InsertResting(addr(1), vcommon.Buy, 100, 10, time.Now())

	book.ApplyFill(order.ID, 4)

	assert.True(t, order.Active)
	assert.Equal(t, uint64(4), order.Filled)
	assert.Equal(t, uint64(6), book.Liquidity(vcommon.Buy, 100))
}

func TestRemoveOrderPrunesEmptyLevel(t *testing.T) {
	book := newOrderBook()
	order := book.InsertResting(addr(1), vcommon.Sell, 50, 7, time.Now())

	rem := book.RemoveOrder(order.ID)
	assert.Equal(t, uint64(7), rem)
	assert.False(t, order.Active)

	_, ok := book.BestAsk()
	assert.False(t, ok)
}

func TestRemoveOrderInteriorPositionLeavesHead(t *testing.T) {
	book := newOrderBook()
	first := book.InsertResting(addr(1), vcommon.Sell, 100, 5, time.Now())
	second := book.InsertResting(addr(2), vcommon.Sell, 100, 5, time.Now())
	book.InsertResting(addr(3), vcommon.Sell, 100, 5, time.Now())

	book.RemoveOrder(second.ID)

	head, ok := book.Head(vcommon.Sell, 100)
	assert.True(t, ok)
	assert.Equal(t, first.ID, head.ID)
	assert.Equal(t, uint64(10), book.Liquidity(vcommon.Sell, 100))
}

func TestAmendAmountPreservesFIFOPosition(t *testing.T) {
	book := newOrderBook()
	first := book.InsertResting(addr(1), vcommon.Buy, 100, 5, time.Now())
	book.InsertResting(addr(2), vcommon.Buy, 100, 5, time.Now())

	delta := book.AmendAmount(first.ID, 8)
	assert.Equal(t, int64(3), delta)
	assert.Equal(t, uint64(13), book.Liquidity(vcommon.Buy, 100))

	head, ok := book.Head(vcommon.Buy, 100)
	assert.True(t, ok)
	assert.Equal(t, first.ID, head.ID)
}

func TestDepthOrdersBestFirst(t *testing.T) {
	book := newOrderBook()
	book.InsertResting(addr(1), vcommon.Buy, 90, 1, time.Now())
	book.InsertResting(addr(1), vcommon.Buy, 110, 1, time.Now())
	book.InsertResting(addr(1), vcommon.Buy, 100, 1, time.Now())

	assert.Equal(t, []uint64{110, 100, 90}, book.Depth(vcommon.Buy, 0))
}
