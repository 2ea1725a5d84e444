package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/atlashelp/atlascore-connector/internal/api/apierr"
)

// Auth creates middleware enforcing the static bearer secret. Every
// protected route requires Authorization: Bearer <secret>; a mismatch is
// answered with the uniform 401 envelope and no state change.
func Auth(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !TokenMatches(secret, ExtractBearer(r)) {
				logger.Warn("unauthorized request",
					slog.String("path", r.URL.Path),
					slog.String("remote", r.RemoteAddr))
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ExtractBearer returns the bearer token from the Authorization header,
// or the empty string.
func ExtractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// TokenMatches compares a presented token to the configured secret in
// constant time. An empty configured secret never matches.
func TokenMatches(secret, presented string) bool {
	if secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(presented)) == 1
}
