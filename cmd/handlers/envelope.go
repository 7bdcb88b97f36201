package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/zircuit-labs/authz-demo/cmd/clock"
	"github.com/zircuit-labs/authz-demo/cmd/identity"
)

// Envelope is the JSON document returned by every route except /health.
type Envelope struct {
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
}

// Responder builds envelopes for one service identity.
// It holds only immutable values and is safe for concurrent use.
type Responder struct {
	service identity.Service
	clock   clock.Clock
}

// NewResponder returns a Responder; a nil clock means the system clock
func NewResponder(service identity.Service, c clock.Clock) *Responder {
	if c == nil {
		c = clock.NewSystem()
	}
	return &Responder{service: service, clock: c}
}

// Service returns the identity this responder reports
func (rs *Responder) Service() identity.Service {
	return rs.service
}

// Envelope stamps message and user with the service name and current time
func (rs *Responder) Envelope(message, user string) Envelope {
	return Envelope{
		Service:   rs.service.String(),
		Message:   message,
		Timestamp: rs.clock.Now(),
		User:      user,
	}
}

// Respond writes a 200 JSON envelope
func (rs *Responder) Respond(w http.ResponseWriter, message, user string) {
	payload, err := json.Marshal(rs.Envelope(message, user))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
