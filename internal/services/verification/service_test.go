package verification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/atlashelp/atlascore-connector/internal/dependencies/mocks"
	"github.com/atlashelp/atlascore-connector/internal/host"
	"github.com/atlashelp/atlascore-connector/internal/host/hosttest"
	"github.com/atlashelp/atlascore-connector/internal/model"
	"github.com/atlashelp/atlascore-connector/internal/testutil"
)

const aliceID = model.Identity("11111111-2222-3333-4444-555555555555")

type ServiceSuite struct {
	suite.Suite
	fake    *hosttest.FakeHost
	bridge  *host.Bridge
	random  *mocks.MockRandom
	clock   *mocks.MockClock
	service *Service
	cancel  context.CancelFunc
	ctx     context.Context
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

	s.random = mocks.NewMockRandom()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.bridge, s.fake, s.random, s.clock, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TearDownTest() {
	s.cancel()
}

// sync waits for queued fire-and-forget bridge tasks to drain
func (s *ServiceSuite) sync() {
	_, err := host.Do(s.ctx, s.bridge, func() (struct{}, error) {
		return struct{}{}, nil
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestGenerateDeliversCodeInGame() {
	s.random.QueueCode("042913")

	s.Require().NoError(s.service.Generate(s.ctx, "Alice"))
	s.sync()

	messages := s.fake.Messages(aliceID)
	s.Require().Len(messages, 2)
	s.Contains(messages[0], "042913")
}

func (s *ServiceSuite) TestGenerateRequiresOnlinePlayer() {
	s.fake.SetOnline(aliceID, false)

	err := s.service.Generate(s.ctx, "Alice")
	s.ErrorIs(err, model.ErrPlayerOffline)
}

func (s *ServiceSuite) TestVerifyIsSingleUse() {
	s.random.QueueCode("042913")
	s.Require().NoError(s.service.Generate(s.ctx, "Alice"))

	id, err := s.service.Verify(s.ctx, "Alice", "042913")
	s.Require().NoError(err)
	s.Equal(aliceID, id)

	_, err = s.service.Verify(s.ctx, "Alice", "042913")
	s.ErrorIs(err, model.ErrInvalidCode)
}

func (s *ServiceSuite) TestGenerateOverwritesPriorCode() {
	s.random.QueueCode("111111", "222222")
	s.Require().NoError(s.service.Generate(s.ctx, "Alice"))
	s.Require().NoError(s.service.Generate(s.ctx, "Alice"))

	_, err := s.service.Verify(s.ctx, "Alice", "111111")
	s.ErrorIs(err, model.ErrInvalidCode)

	id, err := s.service.Verify(s.ctx, "Alice", "222222")
	s.Require().NoError(err)
	s.Equal(aliceID, id)
}

func (s *ServiceSuite) TestVerifyWorksWhileOffline() {
	s.random.QueueCode("042913")
	s.Require().NoError(s.service.Generate(s.ctx, "Alice"))

	s.fake.SetOnline(aliceID, false)

	id, err := s.service.Verify(s.ctx, "Alice", "042913")
	s.Require().NoError(err)
	s.Equal(aliceID, id)
}

func (s *ServiceSuite) TestVerifyRejectsWrongCode() {
	s.random.QueueCode("042913")
	s.Require().NoError(s.service.Generate(s.ctx, "Alice"))

	_, err := s.service.Verify(s.ctx, "Alice", "000000")
	s.ErrorIs(err, model.ErrInvalidCode)
}

func (s *ServiceSuite) TestVerifyRejectsUnknownPlayer() {
	_, err := s.service.Verify(s.ctx, "nobody", "042913")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestVerifyRejectsExpiredCode() {
	s.random.QueueCode("042913")
	s.Require().NoError(s.service.Generate(s.ctx, "Alice"))

	s.clock.Advance(6 * time.Minute)

	_, err := s.service.Verify(s.ctx, "Alice", "042913")
	s.ErrorIs(err, model.ErrInvalidCode)
}

func (s *ServiceSuite) TestCodeValidJustInsideTTL() {
	s.random.QueueCode("042913")
	s.Require().NoError(s.service.Generate(s.ctx, "Alice"))

	s.clock.Advance(5 * time.Minute)

	id, err := s.service.Verify(s.ctx, "Alice", "042913")
	s.Require().NoError(err)
	s.Equal(aliceID, id)
}
