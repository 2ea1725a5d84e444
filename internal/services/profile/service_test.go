package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/atlashelp/atlascore-connector/internal/dependencies/mocks"
	"github.com/atlashelp/atlascore-connector/internal/host"
	"github.com/atlashelp/atlascore-connector/internal/host/hosttest"
	"github.com/atlashelp/atlascore-connector/internal/model"
	"github.com/atlashelp/atlascore-connector/internal/placeholder"
	"github.com/atlashelp/atlascore-connector/internal/storage/memory"
	"github.com/atlashelp/atlascore-connector/internal/testutil"
)

const aliceID = model.Identity("11111111-2222-3333-4444-555555555555")

type ServiceSuite struct {
	suite.Suite
	fake     *hosttest.FakeHost
	bridge   *host.Bridge
	storage  *memory.Storage
	client   *Client
	resolver placeholder.Static
	registry *placeholder.Registry
	clock    *mocks.MockClock
	service  *Service
	cancel   context.CancelFunc
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.fake = hosttest.New(20)
	s.fake.AddPlayer(hosttest.FakePlayer{ID: aliceID, Name: "Alice", World: "world", Online: true})

	s.bridge = host.NewBridge(host.DefaultBridgeConfig(), testutil.NopLogger())
	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.bridge.Run(runCtx)

	s.storage = memory.New()
	s.client = NewClientWithStore(s.storage, testutil.NopLogger())
	s.resolver = placeholder.Static{}
	s.registry = placeholder.NewRegistry()
	s.registry.Register("statistics", placeholder.CoreTokens...)
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	s.service = NewService(s.client, s.bridge, s.fake, s.resolver, s.registry, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TearDownTest() {
	s.cancel()
}

// Merge tests

func (s *ServiceSuite) TestLiveStatsWinOnCollision() {
	s.Require().NoError(s.storage.SaveProfile(s.ctx, &model.PlayerProfile{
		Identity: aliceID,
		Stats:    map[string]string{"a": "1", "statistic_deaths": "2"},
	}))
	s.resolver[aliceID] = map[string]string{
		"%statistic_deaths%":       "3",
		"%statistic_player_kills%": "4",
	}

	merged, err := s.service.GetProfile(s.ctx, aliceID)
	s.Require().NoError(err)

	s.Equal("1", merged["a"])
	s.Equal("3", merged["statistic_deaths"])
	s.Equal("4", merged["statistic_player_kills"])
	s.Equal("Alice", merged["player_name"])
}

func (s *ServiceSuite) TestUnresolvedAndEmptyValuesAreDropped() {
	s.resolver[aliceID] = map[string]string{
		"%statistic_deaths%": "", // resolves to empty
		// %statistic_player_kills% is absent, so the resolver echoes it
	}

	merged, err := s.service.GetProfile(s.ctx, aliceID)
	s.Require().NoError(err)

	s.NotContains(merged, "statistic_deaths")
	s.NotContains(merged, "statistic_player_kills")
	for _, v := range merged {
		s.NotEmpty(v)
	}
}

func (s *ServiceSuite) TestEconomyBalanceStrippedOfCommas() {
	s.registry.Register(placeholder.CapabilityEconomy)
	s.resolver[aliceID] = map[string]string{
		placeholder.EconomyBalanceToken: "1,250,000.50",
	}

	merged, err := s.service.GetProfile(s.ctx, aliceID)
	s.Require().NoError(err)
	s.Equal("1250000.50", merged["vault_eco_balance"])
}

func (s *ServiceSuite) TestEconomySkippedWithoutCapability() {
	s.resolver[aliceID] = map[string]string{
		placeholder.EconomyBalanceToken: "500",
	}

	merged, err := s.service.GetProfile(s.ctx, aliceID)
	s.Require().NoError(err)
	s.NotContains(merged, "vault_eco_balance")
}

// Write-back tests

func (s *ServiceSuite) TestWriteBackWhenOnline() {
	s.resolver[aliceID] = map[string]string{"%statistic_deaths%": "7"}

	_, err := s.service.GetProfile(s.ctx, aliceID)
	s.Require().NoError(err)
	s.client.Flush()

	saved, err := s.storage.GetProfile(s.ctx, aliceID)
	s.Require().NoError(err)
	s.Equal("Alice", saved.DisplayName)
	s.Equal("7", saved.Stats["statistic_deaths"])
	s.True(saved.LastUpdated.Equal(s.clock.Now()))
}

func (s *ServiceSuite) TestNoWriteBackWhenOffline() {
	s.fake.SetOnline(aliceID, false)

	_, err := s.service.GetProfile(s.ctx, aliceID)
	s.Require().NoError(err)
	s.client.Flush()

	_, err = s.storage.GetProfile(s.ctx, aliceID)
	s.ErrorIs(err, model.ErrProfileNotFound)
}

// Degraded paths

func (s *ServiceSuite) TestLoadFailureIsNonFatalToReads() {
	s.storage.FailLoads = errors.New("store down")
	s.resolver[aliceID] = map[string]string{"%statistic_deaths%": "7"}

	merged, err := s.service.GetProfile(s.ctx, aliceID)
	s.Require().NoError(err)
	s.Equal("7", merged["statistic_deaths"])
}

func (s *ServiceSuite) TestSaveFailureNeverSurfaces() {
	s.storage.FailSaves = errors.New("store down")

	_, err := s.service.GetProfile(s.ctx, aliceID)
	s.NoError(err)
	s.client.Flush()
}

func (s *ServiceSuite) TestUnknownIdentityFails() {
	_, err := s.service.GetProfile(s.ctx, "99999999-0000-0000-0000-000000000000")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Readiness gating

func (s *ServiceSuite) TestLoadWaitsForGateResolution() {
	client := NewClient(testutil.NopLogger())
	service := NewService(client, s.bridge, s.fake, s.resolver, s.registry, s.clock, testutil.NopLogger())

	done := make(chan error, 1)
	go func() {
		_, err := service.Client().Load(context.Background(), aliceID)
		done <- err
	}()

	select {
	case <-done:
		s.Fail("load completed before the gate resolved")
	case <-time.After(20 * time.Millisecond):
	}

	client.store = s.storage
	client.Gate().Resolve(nil)
	s.ErrorIs(<-done, model.ErrProfileNotFound)
}

func (s *ServiceSuite) TestFailedGateFailsLoadsFast() {
	client := NewClient(testutil.NopLogger())
	client.Gate().Resolve(errors.New("no credentials"))

	_, err := client.Load(s.ctx, aliceID)
	s.ErrorIs(err, model.ErrStoreNotReady)
}

func (s *ServiceSuite) TestFailedGateDropsSavesQuietly() {
	client := NewClient(testutil.NopLogger())
	client.Gate().Resolve(errors.New("no credentials"))

	client.Save(&model.PlayerProfile{Identity: aliceID, Stats: map[string]string{}})
	client.Flush()
}

// Quit handling

func (s *ServiceSuite) TestHandleQuitSavesMergedProfile() {
	s.Require().NoError(s.storage.SaveProfile(s.ctx, &model.PlayerProfile{
		Identity: aliceID,
		Stats:    map[string]string{"auraskills_mining": "12"},
	}))
	s.resolver[aliceID] = map[string]string{"%statistic_deaths%": "9"}
	s.fake.SetOnline(aliceID, false)

	s.service.HandleQuit(aliceID)

	s.Require().Eventually(func() bool {
		saved, err := s.storage.GetProfile(s.ctx, aliceID)
		return err == nil && saved.Stats["statistic_deaths"] == "9"
	}, time.Second, 10*time.Millisecond)

	saved, err := s.storage.GetProfile(s.ctx, aliceID)
	s.Require().NoError(err)
	s.Equal("12", saved.Stats["auraskills_mining"])
	s.Equal("Alice", saved.Stats["player_name"])
}
