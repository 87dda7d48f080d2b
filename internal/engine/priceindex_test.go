package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceIndexBestMinMax(t *testing.T) {
	idx := newPriceIndex()
	idx.Insert(300)
	idx.Insert(100)
	idx.Insert(200)

	min, ok := idx.BestMin()
	assert.True(t, ok)
	assert.Equal(t, uint64(100), min)

	max, ok := idx.BestMax()
	assert.True(t, ok)
	assert.Equal(t, uint64(300), max)

	assert.Equal(t, 3, idx.Len())
}

func TestPriceIndexRemove(t *testing.T) {
	idx := newPriceIndex()
	idx.Insert(100)
	idx.Remove(100)
	assert.Equal(t, 0, idx.Len())
	_, ok := idx.BestMin()
	assert.False(t, ok)
}

func TestPriceIndexAscendingDescending(t *testing.T) {
	idx := newPriceIndex()
	for _, p := range []uint64{50, 10, 30, 20, 40} {
		idx.Insert(p)
	}

	assert.Equal(t, []uint64{10, 20, 30, 40, 50}, idx.Ascending(0))
	assert.Equal(t, []uint64{50, 40, 30}, idx.Descending(3))
}
