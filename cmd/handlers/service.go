package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zircuit-labs/authz-demo/cmd/identity"
)

// Messages returned by the fixed routes. Role and OPA wording describes a policy
// enforced elsewhere; nothing here checks it.
const (
	MsgAPIData     = "API data endpoint - requires user or admin role"
	MsgAPIDataPost = "API data POST endpoint - requires admin role"
	MsgAdminUsers  = "Admin endpoint - requires admin role"
)

// RootMessage is the public greeting for service
func RootMessage(service identity.Service) string {
	return fmt.Sprintf("Hello from %s! This is a public endpoint.", service)
}

// ResourceMessage describes an ownership-pattern request
func ResourceMessage(userID, resource string) string {
	return fmt.Sprintf("Resource-based access: user %s's %s (OPA validates ownership)", userID, resource)
}

// Root handles GET /
func (rs *Responder) Root(w http.ResponseWriter, r *http.Request) {
	rs.Respond(w, RootMessage(rs.service), identity.FromRequest(r))
}

// APIData handles GET /api/data
func (rs *Responder) APIData(w http.ResponseWriter, r *http.Request) {
	rs.Respond(w, MsgAPIData, identity.FromRequest(r))
}

// APIDataPost handles POST /api/data. The request body is accepted but never read.
func (rs *Responder) APIDataPost(w http.ResponseWriter, r *http.Request) {
	rs.Respond(w, MsgAPIDataPost, identity.FromRequest(r))
}

// AdminUsers handles GET /admin/users
func (rs *Responder) AdminUsers(w http.ResponseWriter, r *http.Request) {
	rs.Respond(w, MsgAdminUsers, identity.FromRequest(r))
}

// UserResource handles GET /users/{userId}/{resource}.
// The user field echoes the raw userId segment, not the header-derived identity.
func (rs *Responder) UserResource(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	resource := chi.URLParam(r, "resource")

	rs.Respond(w, ResourceMessage(userID, resource), userID)
}
