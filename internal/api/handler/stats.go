package handler

import (
	"log/slog"
	"net/http"

	"github.com/atlashelp/atlascore-connector/internal/api/apierr"
	"github.com/atlashelp/atlascore-connector/internal/api/middleware"
	"github.com/atlashelp/atlascore-connector/internal/api/request"
	"github.com/atlashelp/atlascore-connector/internal/api/response"
	"github.com/atlashelp/atlascore-connector/internal/host"
	"github.com/atlashelp/atlascore-connector/internal/model"
	"github.com/atlashelp/atlascore-connector/internal/services/stats"
)

// StatsHandler serves the server stats endpoint
type StatsHandler struct {
	collector *stats.Collector
	bridge    *host.Bridge
	secret    string
	logger    *slog.Logger
}

// NewStatsHandler creates a StatsHandler
func NewStatsHandler(collector *stats.Collector, bridge *host.Bridge, secret string, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{collector: collector, bridge: bridge, secret: secret, logger: logger}
}

// ServerStats handles POST /server-stats. The shared secret may arrive as
// a bearer header or embedded in the body; this read never drains the
// new-player counter, which belongs to the reporter.
func (h *StatsHandler) ServerStats(w http.ResponseWriter, r *http.Request) {
	var req request.ServerStats
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, apierr.NewValidationError("Invalid payload."))
		return
	}

	presented := middleware.ExtractBearer(r)
	if presented == "" {
		presented = req.Secret
	}
	if !middleware.TokenMatches(h.secret, presented) {
		h.logger.Warn("unauthorized server stats request",
			slog.String("remote", r.RemoteAddr))
		apierr.WriteError(w, apierr.NewUnauthorizedError())
		return
	}

	snap, err := host.Do(r.Context(), h.bridge, func() (model.StatsSnapshot, error) {
		return h.collector.Snapshot(false), nil
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ServerStatsFromSnapshot(snap))
}
