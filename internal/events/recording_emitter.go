package events

import "sync"

// RecordingEmitter appends every event to an in-memory slice, keyed by
// event kind. It is the test double used to assert on emitted events
// directly, without depending on log output.
type RecordingEmitter struct {
	mu sync.Mutex

	Created   []OrderCreated
	Cancelled []OrderCancelled
	Amended   []OrderAmended
	Filled    []OrderFilled
	Trades    []TradeExecuted
	Pairs     []PairCreated
	Quotes    []QuoteTokenAdded
}

func (r *RecordingEmitter) OrderCreated(e OrderCreated) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Created = append(r.Created, e)
}

func (r *RecordingEmitter) OrderCancelled(e OrderCancelled) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Cancelled = append(r.Cancelled, e)
}

func (r *RecordingEmitter) OrderAmended(e OrderAmended) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Amended = append(r.Amended, e)
}

func (r *RecordingEmitter) OrderFilled(e OrderFilled) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Filled = append(r.Filled, e)
}

func (r *RecordingEmitter) TradeExecuted(e TradeExecuted) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Trades = append(r.Trades, e)
}

func (r *RecordingEmitter) PairCreated(e PairCreated) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Pairs = append(r.Pairs, e)
}

func (r *RecordingEmitter) QuoteTokenAdded(e QuoteTokenAdded) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Quotes = append(r.Quotes, e)
}
