package profile

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/atlashelp/atlascore-connector/internal/model"
	"github.com/atlashelp/atlascore-connector/internal/storage"
)

// Client is the readiness-gated asynchronous client for the remote
// profile store. Loads block the caller until the store is initialized;
// saves are fire-and-forget and serialized per identity.
type Client struct {
	gate   *Gate
	logger *slog.Logger

	// store is written once by the init goroutine before the gate
	// resolves; the gate's channel close publishes it to readers
	store storage.ProfileStore

	saveTimeout time.Duration
	saves       sync.WaitGroup
	locks       keyedMutex
}

// NewClient creates an uninitialized client. Init must be called for the
// gate to ever resolve.
func NewClient(logger *slog.Logger) *Client {
	return &Client{
		gate:        NewGate(),
		logger:      logger,
		saveTimeout: 10 * time.Second,
	}
}

// NewClientWithStore creates a client over an already-connected store,
// with the gate immediately Ready. Used in tests and for in-memory runs.
func NewClientWithStore(store storage.ProfileStore, logger *slog.Logger) *Client {
	c := NewClient(logger)
	c.store = store
	c.gate.Resolve(nil)
	return c
}

// Gate exposes the readiness gate for observers.
func (c *Client) Gate() *Gate {
	return c.gate
}

// Init attempts to establish the remote store exactly once, in the
// background, and resolves the gate with the outcome. Store operations
// issued before resolution wait; operations after a failed resolution
// fail fast.
func (c *Client) Init(connect func(ctx context.Context) (storage.ProfileStore, error)) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		store, err := connect(ctx)
		if err != nil {
			c.logger.Error("failed to initialize profile store",
				slog.String("error", err.Error()))
			c.gate.Resolve(err)
			return
		}

		c.store = store
		c.logger.Info("profile store initialized")
		c.gate.Resolve(nil)
	}()
}

// Load returns the stored profile for an identity. It waits for store
// initialization and returns model.ErrProfileNotFound when no record
// exists.
func (c *Client) Load(ctx context.Context, id model.Identity) (*model.PlayerProfile, error) {
	if err := c.gate.Wait(ctx); err != nil {
		return nil, err
	}
	return c.store.GetProfile(ctx, id)
}

// Save persists a profile without making the caller wait on durability.
// Failures are logged, not retried, and never surfaced to the caller.
// Saves for the same identity are serialized so concurrent write-backs
// cannot interleave.
func (c *Client) Save(profile *model.PlayerProfile) {
	c.saves.Add(1)
	go func() {
		defer c.saves.Done()

		ctx, cancel := context.WithTimeout(context.Background(), c.saveTimeout)
		defer cancel()

		if err := c.gate.Wait(ctx); err != nil {
			c.logger.Warn("profile store not ready, dropping profile save",
				slog.String("player", profile.DisplayName),
				slog.String("error", err.Error()))
			return
		}

		mu := c.locks.get(profile.Identity)
		mu.Lock()
		defer mu.Unlock()

		if err := c.store.SaveProfile(ctx, profile); err != nil {
			c.logger.Error("failed to save player profile",
				slog.String("player", profile.DisplayName),
				slog.String("uuid", string(profile.Identity)),
				slog.String("error", err.Error()))
		}
	}()
}

// Flush blocks until every save accepted so far has completed. Used at
// shutdown and in tests.
func (c *Client) Flush() {
	c.saves.Wait()
}

// keyedMutex hands out one mutex per identity. Entries are never
// reclaimed; the set is bounded by the number of distinct players seen.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[model.Identity]*sync.Mutex
}

func (k *keyedMutex) get(id model.Identity) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.locks == nil {
		k.locks = make(map[model.Identity]*sync.Mutex)
	}
	if m, ok := k.locks[id]; ok {
		return m
	}
	m := &sync.Mutex{}
	k.locks[id] = m
	return m
}
