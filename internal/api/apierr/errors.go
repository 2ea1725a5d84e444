package apierr

import (
	"errors"
	"net/http"

	"github.com/atlashelp/atlascore-connector/internal/api/response"
	"github.com/atlashelp/atlascore-connector/internal/model"
)

// httpError combines an HTTP status code with a safe public message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError normalizes err to the uniform failure envelope. Unrecognized
// errors become a generic 500: internal detail is logged server-side by
// the caller, never sent to the client.
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	response.JSON(w, he.status, response.Failure(he.message))
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, "Player not found."}
	case errors.Is(err, model.ErrPlayerOffline):
		return &httpError{http.StatusNotFound, "Player is not online."}
	case errors.Is(err, model.ErrInvalidCode):
		return &httpError{http.StatusBadRequest, "Invalid or expired verification code."}
	case errors.Is(err, model.ErrBridgeBusy), errors.Is(err, model.ErrBridgeClosed):
		return &httpError{http.StatusServiceUnavailable, "Server is busy, try again shortly."}
	case errors.Is(err, model.ErrStoreNotReady):
		return &httpError{http.StatusServiceUnavailable, "Profile store is unavailable."}
	default:
		return &httpError{http.StatusInternalServerError, "Internal server error."}
	}
}

// NewValidationError creates a 400 with the given public message
func NewValidationError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewUnauthorizedError creates the uniform 401
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, "Unauthorized."}
}
