package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/atlashelp/atlascore-connector/internal/api/apierr"
	"github.com/atlashelp/atlascore-connector/internal/api/request"
	"github.com/atlashelp/atlascore-connector/internal/api/response"
	"github.com/atlashelp/atlascore-connector/internal/model"
	"github.com/atlashelp/atlascore-connector/internal/services/profile"
)

// ProfileHandler serves the player stats endpoint
type ProfileHandler struct {
	profiles *profile.Service
	logger   *slog.Logger
}

// NewProfileHandler creates a ProfileHandler
func NewProfileHandler(profiles *profile.Service, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// PlayerStats handles POST /player-stats
func (h *ProfileHandler) PlayerStats(w http.ResponseWriter, r *http.Request) {
	var req request.PlayerStats
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, apierr.NewValidationError("Invalid payload."))
		return
	}
	if req.UUID == "" {
		apierr.WriteError(w, apierr.NewValidationError("Missing player UUID."))
		return
	}
	parsed, err := uuid.Parse(req.UUID)
	if err != nil {
		apierr.WriteError(w, apierr.NewValidationError("Invalid player UUID."))
		return
	}

	stats, err := h.profiles.GetProfile(r.Context(), model.Identity(parsed.String()))
	if err != nil {
		h.logger.Error("player stats lookup failed",
			slog.String("uuid", req.UUID),
			slog.String("error", err.Error()))
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerStats{Success: true, Stats: stats})
}
