package factory

import (
	"context"
	"time"

	"github.com/atlashelp/atlascore-connector/internal/config"
	"github.com/atlashelp/atlascore-connector/internal/dependencies/mocks"
	"github.com/atlashelp/atlascore-connector/internal/host/hosttest"
	"github.com/atlashelp/atlascore-connector/internal/placeholder"
	"github.com/atlashelp/atlascore-connector/internal/services/profile"
	"github.com/atlashelp/atlascore-connector/internal/storage/memory"
	"github.com/atlashelp/atlascore-connector/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	FakeHost   *hosttest.FakeHost
	Stats      placeholder.Static
	Storage    *memory.Storage

	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewTestApp creates an App configured for testing with mocked
// dependencies and the bridge pump already running. Callers must Close
// it when done.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	fakeHost := hosttest.New(20)
	resolver := placeholder.Static{}
	logger := testutil.NopLogger()

	cfg := Config{
		App:      config.Default(),
		Host:     fakeHost,
		Resolver: resolver,
		Logger:   logger,
	}
	cfg.App.Capabilities = []string{
		placeholder.CapabilityEconomy,
		placeholder.CapabilityFabled,
		placeholder.CapabilitySkills,
	}

	client := profile.NewClientWithStore(store, logger)
	app := newWithDependencies(cfg, client, mockClock, mockRandom, logger)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		app.Bridge.Run(ctx)
	}()

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		FakeHost:   fakeHost,
		Stats:      resolver,
		Storage:    store,
		cancel:     cancel,
		stopped:    stopped,
	}
}

// Close stops the bridge pump and waits for it to exit.
func (t *TestApp) Close() {
	t.cancel()
	<-t.stopped
	t.ProfileClient.Flush()
}
