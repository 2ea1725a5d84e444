package host

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atlashelp/atlascore-connector/internal/model"
)

// Bridge marshals work from HTTP handler goroutines onto the host thread.
// Tasks are executed strictly in acceptance order by the single goroutine
// running Run. Submissions carry a bounded timeout: a saturated queue or a
// stalled host thread surfaces as model.ErrBridgeBusy instead of blocking
// the caller indefinitely.
type Bridge struct {
	tasks  chan func()
	done   chan struct{}
	logger *slog.Logger

	submitTimeout time.Duration
}

// BridgeConfig holds tuning for the host task bridge
type BridgeConfig struct {
	// QueueSize bounds the number of accepted-but-unexecuted tasks
	QueueSize int
	// SubmitTimeout bounds how long a caller waits for acceptance and
	// for its task's result
	SubmitTimeout time.Duration
}

// DefaultBridgeConfig returns sensible defaults for the bridge
func DefaultBridgeConfig() BridgeConfig {
	return BridgeConfig{
		QueueSize:     64,
		SubmitTimeout: 5 * time.Second,
	}
}

// NewBridge creates a bridge. Run must be started before tasks can execute.
func NewBridge(cfg BridgeConfig, logger *slog.Logger) *Bridge {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultBridgeConfig().QueueSize
	}
	if cfg.SubmitTimeout <= 0 {
		cfg.SubmitTimeout = DefaultBridgeConfig().SubmitTimeout
	}
	return &Bridge{
		tasks:         make(chan func(), cfg.QueueSize),
		done:          make(chan struct{}),
		logger:        logger,
		submitTimeout: cfg.SubmitTimeout,
	}
}

// Run pumps the task queue. It is the process's stand-in for the host
// thread: exactly one goroutine may run it, and all Host access happens
// inside the tasks it executes. Returns when ctx is cancelled.
func (b *Bridge) Run(ctx context.Context) {
	defer close(b.done)
	for {
		select {
		case task := <-b.tasks:
			task()
		case <-ctx.Done():
			return
		}
	}
}

// Post enqueues fire-and-forget work for the host thread. A full queue
// drops the task and reports ErrBridgeBusy; the caller never waits.
func (b *Bridge) Post(task func()) error {
	select {
	case <-b.done:
		return model.ErrBridgeClosed
	default:
	}
	select {
	case b.tasks <- task:
		return nil
	default:
		return model.ErrBridgeBusy
	}
}

// Do runs fn on the host thread and returns its result to the calling
// goroutine. An accepted task always executes even if the caller stops
// waiting; only its result is abandoned.
func Do[T any](ctx context.Context, b *Bridge, fn func() (T, error)) (T, error) {
	var zero T
	type outcome struct {
		val T
		err error
	}

	// Buffered so an abandoned task can still deliver without leaking
	// the host goroutine.
	ch := make(chan outcome, 1)
	task := func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("host task panicked: %v", r)}
			}
		}()
		val, err := fn()
		ch <- outcome{val: val, err: err}
	}

	timer := time.NewTimer(b.submitTimeout)
	defer timer.Stop()

	select {
	case b.tasks <- task:
	case <-timer.C:
		return zero, model.ErrBridgeBusy
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-b.done:
		return zero, model.ErrBridgeClosed
	}

	select {
	case out := <-ch:
		return out.val, out.err
	case <-timer.C:
		return zero, model.ErrBridgeBusy
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-b.done:
		return zero, model.ErrBridgeClosed
	}
}
