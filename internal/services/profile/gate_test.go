package profile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/atlashelp/atlascore-connector/internal/model"
)

type GateSuite struct {
	suite.Suite
}

func TestGateSuite(t *testing.T) {
	suite.Run(t, new(GateSuite))
}

func (s *GateSuite) TestWaitBlocksUntilResolved() {
	gate := NewGate()

	released := make(chan error, 1)
	go func() {
		released <- gate.Wait(context.Background())
	}()

	select {
	case <-released:
		s.Fail("Wait returned before the gate resolved")
	case <-time.After(20 * time.Millisecond):
	}

	gate.Resolve(nil)
	s.NoError(<-released)
}

func (s *GateSuite) TestFailedGateShortCircuitsWaiters() {
	gate := NewGate()
	gate.Resolve(errors.New("credentials file missing"))

	err := gate.Wait(context.Background())
	s.ErrorIs(err, model.ErrStoreNotReady)
	s.Contains(err.Error(), "credentials file missing")
}

func (s *GateSuite) TestResolutionIsMonotonic() {
	gate := NewGate()
	gate.Resolve(errors.New("first"))
	gate.Resolve(nil)

	s.ErrorIs(gate.Wait(context.Background()), model.ErrStoreNotReady)
}

func (s *GateSuite) TestConcurrentResolversResolveOnce() {
	gate := NewGate()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				gate.Resolve(nil)
			} else {
				gate.Resolve(errors.New("lost the race"))
			}
		}()
	}
	wg.Wait()

	s.True(gate.Resolved())
	// Whichever resolution won, every waiter observes the same outcome
	first := gate.Wait(context.Background())
	for i := 0; i < 8; i++ {
		s.Equal(first == nil, gate.Wait(context.Background()) == nil)
	}
}

func (s *GateSuite) TestWaitHonorsContext() {
	gate := NewGate()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	s.ErrorIs(gate.Wait(ctx), context.DeadlineExceeded)
	s.False(gate.Resolved())
}
