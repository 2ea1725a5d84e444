package request

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBodySize caps request bodies; the gateway only ever receives small
// JSON documents
const maxBodySize = 64 * 1024

// ExecuteCommand is the body for the command dispatch endpoint
type ExecuteCommand struct {
	Command       string            `json:"command"`
	PlayerContext map[string]string `json:"playerContext"`
}

// PlayerStats is the body for the player stats endpoint
type PlayerStats struct {
	UUID string `json:"uuid"`
}

// GenerateCode is the body for issuing a verification code
type GenerateCode struct {
	Username string `json:"username"`
}

// VerifyCode is the body for consuming a verification code
type VerifyCode struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

// ServerStats is the body for the server stats endpoint; the shared
// secret may ride in the body instead of the Authorization header
type ServerStats struct {
	Secret string `json:"secret"`
}

// ErrMalformedBody indicates the request body was not valid JSON
var ErrMalformedBody = errors.New("malformed request body")

// Decode parses a JSON request body into v. An empty body decodes to the
// zero value so handlers can report missing fields specifically.
func Decode(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return ErrMalformedBody
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return ErrMalformedBody
	}
	return nil
}
