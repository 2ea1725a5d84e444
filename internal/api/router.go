package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/atlashelp/atlascore-connector/internal/api/handler"
	"github.com/atlashelp/atlascore-connector/internal/api/middleware"
	"github.com/atlashelp/atlascore-connector/internal/host"
	"github.com/atlashelp/atlascore-connector/internal/services/command"
	"github.com/atlashelp/atlascore-connector/internal/services/profile"
	"github.com/atlashelp/atlascore-connector/internal/services/stats"
	"github.com/atlashelp/atlascore-connector/internal/services/verification"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	Secret       string
	Commands     *command.Service
	Profiles     *profile.Service
	Verification *verification.Service
	Collector    *stats.Collector
	Bridge       *host.Bridge
}

// NewRouter creates the gateway router with all routes configured.
// Everything except the root path and OPTIONS preflights requires the
// bearer secret; the server stats endpoint checks it itself because the
// secret may ride in the request body.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	commandHandler := handler.NewCommandHandler(cfg.Commands, cfg.Logger)
	profileHandler := handler.NewProfileHandler(cfg.Profiles, cfg.Logger)
	verificationHandler := handler.NewVerificationHandler(cfg.Verification, cfg.Logger)
	statsHandler := handler.NewStatsHandler(cfg.Collector, cfg.Bridge, cfg.Secret, cfg.Logger)

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Unauthenticated liveness check
	r.HandleFunc("/", handler.Status).Methods(http.MethodGet)

	// Self-authenticating (header or body secret)
	r.HandleFunc("/server-stats", statsHandler.ServerStats).Methods(http.MethodPost)

	// Bearer-secret protected routes
	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.Auth(cfg.Secret, cfg.Logger))
	protected.HandleFunc("/execute-command", commandHandler.Execute).Methods(http.MethodPost)
	protected.HandleFunc("/player-stats", profileHandler.PlayerStats).Methods(http.MethodPost)
	protected.HandleFunc("/generate-and-send-code", verificationHandler.GenerateCode).Methods(http.MethodPost)
	protected.HandleFunc("/verify-code", verificationHandler.VerifyCode).Methods(http.MethodPost)

	// CORS wraps the whole tree so preflights short-circuit before auth
	return middleware.CORS(r)
}
