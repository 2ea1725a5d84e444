package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/atlashelp/atlascore-connector/internal/host"
	"github.com/atlashelp/atlascore-connector/internal/model"
)

// maxConsecutiveFailures is the circuit-breaker threshold: reaching it
// disables reporting for the rest of the process lifetime.
const maxConsecutiveFailures = 3

// ReporterConfig holds configuration for the stats reporter
type ReporterConfig struct {
	// URL is the telemetry collector endpoint
	URL string
	// Secret authenticates the payload to the collector
	Secret string
	// Interval between report cycles
	Interval time.Duration
	// Timeout bounds each HTTP attempt
	Timeout time.Duration
}

// DefaultReporterConfig returns sensible defaults for the reporter
func DefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		Interval: 5 * time.Minute,
		Timeout:  5 * time.Second,
	}
}

type reportPayload struct {
	OnlinePlayers   int    `json:"onlinePlayers"`
	MaxPlayers      int    `json:"maxPlayers"`
	NewPlayersToday int    `json:"newPlayersToday"`
	Secret          string `json:"secret"`
}

// Reporter periodically pushes a stats snapshot to the remote collector.
// It runs off the host thread; only the counter read crosses the bridge
// so the drain is atomic with join-event increments.
type Reporter struct {
	collector *Collector
	bridge    *host.Bridge
	client    *http.Client
	cfg       ReporterConfig
	logger    *slog.Logger

	failures atomic.Int32
	disabled atomic.Bool
}

// NewReporter creates a stats reporter.
func NewReporter(collector *Collector, bridge *host.Bridge, cfg ReporterConfig, logger *slog.Logger) *Reporter {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultReporterConfig().Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultReporterConfig().Timeout
	}
	return &Reporter{
		collector: collector,
		bridge:    bridge,
		client:    &http.Client{Timeout: cfg.Timeout},
		cfg:       cfg,
		logger:    logger,
	}
}

// Disabled reports whether the reporter has been shut off, either by a
// fatal configuration problem or by the failure streak.
func (r *Reporter) Disabled() bool {
	return r.disabled.Load()
}

// Run reports on the configured interval until ctx is cancelled or the
// reporter disables itself. The first cycle runs immediately.
func (r *Reporter) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()
	for {
		r.ReportOnce(ctx)
		if r.Disabled() {
			return
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

// ReportOnce performs a single report cycle. A disabled reporter does
// nothing, including no network call.
func (r *Reporter) ReportOnce(ctx context.Context) {
	if r.disabled.Load() {
		return
	}
	if !r.validateConfig() {
		return
	}

	snap, err := host.Do(ctx, r.bridge, func() (model.StatsSnapshot, error) {
		return r.collector.Snapshot(true), nil
	})
	if err != nil {
		r.recordFailure("could not read server counters", err)
		return
	}

	body, err := json.Marshal(reportPayload{
		OnlinePlayers:   snap.OnlinePlayers,
		MaxPlayers:      snap.MaxPlayers,
		NewPlayersToday: snap.NewPlayersToday,
		Secret:          r.cfg.Secret,
	})
	if err != nil {
		r.disable("could not encode stats payload: " + err.Error())
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.URL, bytes.NewReader(body))
	if err != nil {
		// Request construction only fails for a malformed URL; retrying
		// cannot help
		r.disable("invalid stats URL: " + err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.recordFailure("could not reach stats backend", err)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		r.logger.Warn("stats backend rejected report",
			slog.Int("status", resp.StatusCode),
			slog.String("response", string(respBody)))
		r.bumpStreak()
		return
	}

	r.failures.Store(0)
	r.logger.Info("sent server stats to backend",
		slog.Int("onlinePlayers", snap.OnlinePlayers),
		slog.Int("newPlayersToday", snap.NewPlayersToday))
}

// validateConfig checks the reporter configuration once per cycle.
// Missing or malformed settings are fatal, not retryable.
func (r *Reporter) validateConfig() bool {
	if r.cfg.URL == "" {
		r.disable("stats URL is not configured")
		return false
	}
	if r.cfg.Secret == "" {
		r.disable("stats secret is not configured")
		return false
	}
	if u, err := url.Parse(r.cfg.URL); err != nil || u.Scheme == "" || u.Host == "" {
		r.disable("stats URL is malformed: " + r.cfg.URL)
		return false
	}
	return true
}

func (r *Reporter) recordFailure(msg string, err error) {
	r.logger.Warn(msg+", will retry next interval", slog.String("error", err.Error()))
	r.bumpStreak()
}

func (r *Reporter) bumpStreak() {
	if r.failures.Add(1) >= maxConsecutiveFailures {
		r.disable("max consecutive failures reached")
	}
}

func (r *Reporter) disable(reason string) {
	if r.disabled.CompareAndSwap(false, true) {
		r.logger.Error("disabling stats reporting", slog.String("reason", reason))
	}
}
