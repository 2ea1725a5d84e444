package stats

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/atlashelp/atlascore-connector/internal/host"
	"github.com/atlashelp/atlascore-connector/internal/host/hosttest"
	"github.com/atlashelp/atlascore-connector/internal/testutil"
)

type ReporterSuite struct {
	suite.Suite
	fake      *hosttest.FakeHost
	bridge    *host.Bridge
	collector *Collector
	cancel    context.CancelFunc
	ctx       context.Context

	mu       sync.Mutex
	requests []reportPayload
	status   int
}

func TestReporterSuite(t *testing.T) {
	suite.Run(t, new(ReporterSuite))
}

func (s *ReporterSuite) SetupTest() {
	s.fake = hosttest.New(50)
	s.bridge = host.NewBridge(host.DefaultBridgeConfig(), testutil.NopLogger())
	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.bridge.Run(runCtx)

	s.collector = NewCollector(s.fake)
	s.ctx = context.Background()
	s.requests = nil
	s.status = http.StatusOK
}

func (s *ReporterSuite) TearDownTest() {
	s.cancel()
}

// backend records every payload and answers with the configured status
func (s *ReporterSuite) backend() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p reportPayload
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&p))
		s.mu.Lock()
		s.requests = append(s.requests, p)
		status := s.status
		s.mu.Unlock()
		w.WriteHeader(status)
	}))
}

func (s *ReporterSuite) reporter(url string) *Reporter {
	cfg := DefaultReporterConfig()
	cfg.URL = url
	cfg.Secret = "hunter2"
	return NewReporter(s.collector, s.bridge, cfg, testutil.NopLogger())
}

func (s *ReporterSuite) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *ReporterSuite) TestReportSendsSnapshotAndSecret() {
	srv := s.backend()
	defer srv.Close()

	s.collector.HandleJoin(true)
	s.collector.HandleJoin(false) // returning player, not counted

	r := s.reporter(srv.URL)
	r.ReportOnce(s.ctx)

	s.Require().Equal(1, s.requestCount())
	got := s.requests[0]
	s.Equal(0, got.OnlinePlayers)
	s.Equal(50, got.MaxPlayers)
	s.Equal(1, got.NewPlayersToday)
	s.Equal("hunter2", got.Secret)
	s.False(r.Disabled())
}

func (s *ReporterSuite) TestCounterDrainIsReadAndClear() {
	srv := s.backend()
	defer srv.Close()

	const joins = 32
	var wg sync.WaitGroup
	for i := 0; i < joins; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.collector.HandleJoin(true)
		}()
	}
	wg.Wait()

	r := s.reporter(srv.URL)
	r.ReportOnce(s.ctx)
	r.ReportOnce(s.ctx)

	s.Require().Equal(2, s.requestCount())
	s.Equal(joins, s.requests[0].NewPlayersToday)
	s.Equal(0, s.requests[1].NewPlayersToday)
}

func (s *ReporterSuite) TestFailureStreakDisablesReporter() {
	srv := s.backend()
	defer srv.Close()
	s.status = http.StatusBadGateway

	r := s.reporter(srv.URL)
	for i := 0; i < 3; i++ {
		r.ReportOnce(s.ctx)
	}
	s.True(r.Disabled())

	// A fourth cycle performs no network call
	r.ReportOnce(s.ctx)
	s.Equal(3, s.requestCount())
}

func (s *ReporterSuite) TestSuccessResetsFailureStreak() {
	srv := s.backend()
	defer srv.Close()

	r := s.reporter(srv.URL)

	s.status = http.StatusInternalServerError
	r.ReportOnce(s.ctx)
	r.ReportOnce(s.ctx)

	s.status = http.StatusOK
	r.ReportOnce(s.ctx)

	s.status = http.StatusInternalServerError
	r.ReportOnce(s.ctx)
	r.ReportOnce(s.ctx)

	// 2 failures, reset, then 2 more: never 3 in a row
	s.False(r.Disabled())
}

func (s *ReporterSuite) TestConnectFailuresTripBreaker() {
	// Nothing listens here; connections are refused
	r := s.reporter("http://127.0.0.1:1")
	for i := 0; i < 3; i++ {
		r.ReportOnce(s.ctx)
	}
	s.True(r.Disabled())
}

func (s *ReporterSuite) TestMissingURLIsFatal() {
	cfg := DefaultReporterConfig()
	cfg.Secret = "hunter2"
	r := NewReporter(s.collector, s.bridge, cfg, testutil.NopLogger())

	r.ReportOnce(s.ctx)
	s.True(r.Disabled())
}

func (s *ReporterSuite) TestMissingSecretIsFatal() {
	cfg := DefaultReporterConfig()
	cfg.URL = "http://localhost:9/stats"
	r := NewReporter(s.collector, s.bridge, cfg, testutil.NopLogger())

	r.ReportOnce(s.ctx)
	s.True(r.Disabled())
}

func (s *ReporterSuite) TestMalformedURLIsFatalImmediately() {
	r := s.reporter("not-a-url")
	r.ReportOnce(s.ctx)
	s.True(r.Disabled())
}
