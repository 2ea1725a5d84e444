package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/atlashelp/atlascore-connector/internal/api/apierr"
	"github.com/atlashelp/atlascore-connector/internal/api/request"
	"github.com/atlashelp/atlascore-connector/internal/api/response"
	"github.com/atlashelp/atlascore-connector/internal/services/verification"
)

// VerificationHandler serves the account-linking endpoints
type VerificationHandler struct {
	verification *verification.Service
	logger       *slog.Logger
}

// NewVerificationHandler creates a VerificationHandler
func NewVerificationHandler(svc *verification.Service, logger *slog.Logger) *VerificationHandler {
	return &VerificationHandler{verification: svc, logger: logger}
}

// GenerateCode handles POST /generate-and-send-code
func (h *VerificationHandler) GenerateCode(w http.ResponseWriter, r *http.Request) {
	var req request.GenerateCode
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, apierr.NewValidationError("Invalid payload."))
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		apierr.WriteError(w, apierr.NewValidationError("Username is required."))
		return
	}

	if err := h.verification.Generate(r.Context(), req.Username); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OK("Code sent to player in-game."))
}

// VerifyCode handles POST /verify-code
func (h *VerificationHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyCode
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, apierr.NewValidationError("Invalid payload."))
		return
	}
	if req.Username == "" || req.Code == "" {
		apierr.WriteError(w, apierr.NewValidationError("Username and code are required."))
		return
	}

	id, err := h.verification.Verify(r.Context(), req.Username, req.Code)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Verification{
		Success: true,
		UUID:    string(id),
		Message: "Verification successful.",
	})
}
