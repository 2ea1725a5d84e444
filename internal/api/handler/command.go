package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/atlashelp/atlascore-connector/internal/api/apierr"
	"github.com/atlashelp/atlascore-connector/internal/api/request"
	"github.com/atlashelp/atlascore-connector/internal/api/response"
	"github.com/atlashelp/atlascore-connector/internal/services/command"
)

// CommandHandler serves the command dispatch endpoint
type CommandHandler struct {
	commands *command.Service
	logger   *slog.Logger
}

// NewCommandHandler creates a CommandHandler
func NewCommandHandler(commands *command.Service, logger *slog.Logger) *CommandHandler {
	return &CommandHandler{commands: commands, logger: logger}
}

// Execute handles POST /execute-command
func (h *CommandHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req request.ExecuteCommand
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, apierr.NewValidationError("Invalid payload."))
		return
	}
	if strings.TrimSpace(req.Command) == "" {
		apierr.WriteError(w, apierr.NewValidationError("Invalid payload: Missing command."))
		return
	}

	accepted, err := h.commands.Dispatch(r.Context(), req.Command, req.PlayerContext)
	if err != nil {
		h.logger.Error("command dispatch failed", slog.String("error", err.Error()))
		apierr.WriteError(w, err)
		return
	}
	if !accepted {
		response.JSON(w, http.StatusInternalServerError, response.Failure("Command was rejected by the server."))
		return
	}

	response.JSON(w, http.StatusOK, response.OK("Command dispatched."))
}
