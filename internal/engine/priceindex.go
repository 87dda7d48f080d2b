package engine

import (
	"math"

	"github.com/tidwall/btree"
)

// PriceIndex is an ordered set of distinct prices with O(log n) insert and
// remove and O(k) bounded traversal from either end, backed by a generic
// B-tree. It stores only the bare price — liquidity and the FIFO queue
// live in PriceLevel, not in the tree.
//
// A single instance is always ordered ascending by price; OrderBook decides
// which end is "best" for a given side (see OrderBook.BestBid/BestAsk).
type PriceIndex struct {
	tree *btree.BTreeG[uint64]
}

func newPriceIndex() *PriceIndex {
	return &PriceIndex{
		tree: btree.NewBTreeG(func(a, b uint64) bool { return a < b }),
	}
}

// Insert adds p to the index; a no-op if already present.
func (idx *PriceIndex) Insert(p uint64) { idx.tree.Set(p) }

// Remove drops p from the index; a no-op if absent.
func (idx *PriceIndex) Remove(p uint64) { idx.tree.Delete(p) }

// Len reports the number of distinct active prices.
func (idx *PriceIndex) Len() int { return idx.tree.Len() }

// BestMin returns the smallest active price.
func (idx *PriceIndex) BestMin() (uint64, bool) { return idx.tree.Min() }

// BestMax returns the largest active price.
func (idx *PriceIndex) BestMax() (uint64, bool) { return idx.tree.Max() }

// Ascending returns up to limit prices, smallest first. limit <= 0 means
// unbounded. This is a caller-facing, explicit-limit view (e.g. for a
// depth-of-book UI) — internal matching never calls it, so a caller that
// wants the whole book gets the whole book by passing limit <= 0.
func (idx *PriceIndex) Ascending(limit int) []uint64 {
	out := make([]uint64, 0, boundedCap(limit, idx.Len()))
	idx.tree.Ascend(0, func(price uint64) bool {
		if limit > 0 && len(out) >= limit {
			return false
		}
		out = append(out, price)
		return true
	})
	return out
}

// Descending returns up to limit prices, largest first. limit <= 0 means
// unbounded.
func (idx *PriceIndex) Descending(limit int) []uint64 {
	out := make([]uint64, 0, boundedCap(limit, idx.Len()))
	idx.tree.Descend(math.MaxUint64, func(price uint64) bool {
		if limit > 0 && len(out) >= limit {
			return false
		}
		out = append(out, price)
		return true
	})
	return out
}

func boundedCap(limit, n int) int {
	if limit > 0 && limit < n {
		return limit
	}
	if n < 0 {
		return 0
	}
	return n
}
