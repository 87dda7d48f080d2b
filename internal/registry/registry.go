// Package registry tracks which (base, quote) trading pairs exist, each
// backed by its own engine.MatchingEngine, and which assets may be used as
// a quote asset at all.
package registry

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/crypto/blake2b"

	"vaultbook/internal/common"
	"vaultbook/internal/engine"
	"vaultbook/internal/events"
	"vaultbook/internal/ledger"
)

// pairKey canonically identifies a (base, quote) pair independent of which
// asset is named first, so a caller can never create both (A, B) and
// (B, A) as distinct pairs.
type pairKey [32]byte

func keyFor(a, b common.Asset) pairKey {
	x, y := a.Bytes(), b.Bytes()
	if bytes.Compare(x, y) > 0 {
		x, y = y, x
	}
	return blake2b.Sum256(append(append([]byte{}, x...), y...))
}

// Pair is one registered trading pair and its engine.
type Pair struct {
	Base  common.Asset
	Quote common.Asset
	*engine.MatchingEngine
}

// PairRegistry is the set of all trading pairs created so far, plus the
// whitelist of assets allowed to serve as a quote asset. Only one
// MatchingEngine ever exists per pair, keyed by the unordered pair hash.
type PairRegistry struct {
	mu sync.RWMutex

	ledger  ledger.Ledger
	emitter events.Emitter

	quoteWhitelist map[common.Asset]bool

	byKey   map[pairKey]*Pair
	ordered []*Pair
}

// New constructs an empty PairRegistry.
func New(led ledger.Ledger, emitter events.Emitter) *PairRegistry {
	return &PairRegistry{
		ledger:         led,
		emitter:        emitter,
		quoteWhitelist: make(map[common.Asset]bool),
		byKey:          make(map[pairKey]*Pair),
	}
}

// AddQuote whitelists asset as an allowed quote asset for future Create
// calls. Rejects the zero address and an asset already whitelisted.
func (r *PairRegistry) AddQuote(asset common.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if asset == (common.Asset{}) {
		return ErrInvalidQuoteToken
	}
	if r.quoteWhitelist[asset] {
		return ErrQuoteAlreadyWhitelisted
	}
	r.quoteWhitelist[asset] = true
	r.emitter.QuoteTokenAdded(events.QuoteTokenAdded{Asset: asset})
	return nil
}

// IsQuoteWhitelisted reports whether asset may be used as a pair's quote
// asset.
func (r *PairRegistry) IsQuoteWhitelisted(asset common.Asset) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.quoteWhitelist[asset]
}

// Create registers a new (base, quote) pair and its matching engine. quote
// must already be whitelisted via AddQuote.
func (r *PairRegistry) Create(base, quote common.Asset) (*Pair, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	zero := common.Asset{}
	if base == zero {
		return nil, ErrInvalidBaseToken
	}
	if quote == zero {
		return nil, ErrInvalidQuoteToken
	}
	if base == quote {
		return nil, ErrIdenticalTokens
	}
	if !r.quoteWhitelist[quote] {
		return nil, ErrQuoteTokenNotWhitelisted
	}

	key := keyFor(base, quote)
	if _, exists := r.byKey[key]; exists {
		return nil, ErrPairAlreadyExists
	}

	eng, err := engine.New(base, quote, r.ledger, r.emitter)
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}

	pair := &Pair{Base: base, Quote: quote, MatchingEngine: eng}
	r.byKey[key] = pair
	r.ordered = append(r.ordered, pair)

	r.emitter.PairCreated(events.PairCreated{Base: base, Quote: quote})
	return pair, nil
}

// Get looks up a pair by its two assets, in either order.
func (r *PairRegistry) Get(a, b common.Asset) (*Pair, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byKey[keyFor(a, b)]
	return p, ok
}

// Count reports the number of registered pairs.
func (r *PairRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ordered)
}

// ByIndex returns the pair created at position i, in creation order.
func (r *PairRegistry) ByIndex(i int) (*Pair, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.ordered) {
		return nil, ErrIndexOutOfRange
	}
	return r.ordered[i], nil
}

// All returns every registered pair, in creation order.
func (r *PairRegistry) All() []*Pair {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Pair, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// QuoteAssets returns every whitelisted quote asset, sorted for stable
// iteration.
func (r *PairRegistry) QuoteAssets() []common.Asset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]common.Asset, 0, len(r.quoteWhitelist))
	for a := range r.quoteWhitelist {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return bytes.Compare(out[i].Bytes(), out[j].Bytes()) < 0 })
	return out
}
