package profile

import (
	"context"
	"fmt"
	"sync"

	"github.com/atlashelp/atlascore-connector/internal/model"
)

// Gate is a one-shot readiness signal over the remote store's
// initialization outcome. It resolves exactly once, to Ready (nil error)
// or Failed, and never changes afterwards. Any number of goroutines may
// wait on it concurrently.
type Gate struct {
	once sync.Once
	done chan struct{}
	err  error
}

// NewGate creates an unresolved gate.
func NewGate() *Gate {
	return &Gate{done: make(chan struct{})}
}

// Resolve records the initialization outcome. Only the first call has any
// effect; later calls are ignored.
func (g *Gate) Resolve(err error) {
	g.once.Do(func() {
		g.err = err
		close(g.done)
	})
}

// Done is closed once the gate has resolved.
func (g *Gate) Done() <-chan struct{} {
	return g.done
}

// Resolved reports whether the gate has resolved yet.
func (g *Gate) Resolved() bool {
	select {
	case <-g.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the gate resolves or ctx expires. A gate that
// resolved to Failed short-circuits every waiter with a descriptive
// error wrapping model.ErrStoreNotReady.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.done:
		if g.err != nil {
			return fmt.Errorf("%w: %v", model.ErrStoreNotReady, g.err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
