package handlers

import "net/http"

// healthBody is written verbatim; health checkers compare it byte for byte.
const healthBody = `{"status":"healthy"}`

// HealthHandler responds with a fixed JSON body indicating the service is healthy.
// It carries no service name and no identity, and always returns 200 OK.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(healthBody))
}
