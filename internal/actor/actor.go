// Package actor offers a single-writer-goroutine alternative to a plain
// mutex for serializing access to a shared resource such as a
// engine.MatchingEngine: every call is funneled through one goroutine via
// a tomb.Tomb, instead of contending on a sync.Mutex directly.
package actor

import (
	"context"
	"errors"

	"gopkg.in/tomb.v2"
)

// ErrStopped is returned by Do once the actor has been stopped.
var ErrStopped = errors.New("actor: stopped")

type op struct {
	fn   func() error
	done chan error
}

// Actor runs queued functions one at a time on a dedicated goroutine.
type Actor struct {
	t     tomb.Tomb
	queue chan op
}

// New starts an Actor and its worker goroutine.
func New() *Actor {
	a := &Actor{queue: make(chan op)}
	a.t.Go(a.run)
	return a
}

func (a *Actor) run() error {
	for {
		select {
		case o := <-a.queue:
			o.done <- o.fn()
		case <-a.t.Dying():
			return nil
		}
	}
}

// Do submits fn to run on the actor's goroutine and blocks until it
// completes, ctx is cancelled, or the actor is stopped.
func (a *Actor) Do(ctx context.Context, fn func() error) error {
	o := op{fn: fn, done: make(chan error, 1)}
	select {
	case a.queue <- o:
	case <-a.t.Dying():
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-o.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop shuts the actor down, waiting for any in-flight Do to finish.
func (a *Actor) Stop() error {
	a.t.Kill(nil)
	return a.t.Wait()
}
