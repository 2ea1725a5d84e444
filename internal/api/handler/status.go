package handler

import "net/http"

// Status answers the unauthenticated root path with a liveness line.
func Status(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("AtlasCore Connector is running"))
}
