package routes

import (
	"fmt"
	"net/http"

	"github.com/zircuit-labs/authz-demo/cmd/config"
	"github.com/zircuit-labs/authz-demo/cmd/handlers"
)

// Variant selects which slice of the route table a service serves
type Variant string

const (
	// VariantBasic serves the read-only routes
	VariantBasic Variant = config.VariantBasic
	// VariantExtended adds POST /api/data and the ownership-pattern route
	VariantExtended Variant = config.VariantExtended
)

// ParseVariant accepts "basic" or "extended"
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantBasic, VariantExtended:
		return Variant(s), nil
	default:
		return "", fmt.Errorf("unknown route variant %q", s)
	}
}

// Route is one entry of the fixed route table
type Route struct {
	Name    string
	Method  string
	Pattern string
	// Extended routes are only mounted for VariantExtended
	Extended bool
	handler  func(rs *handlers.Responder) http.HandlerFunc
}

// Handler binds the route to a responder
func (rt Route) Handler(rs *handlers.Responder) http.HandlerFunc {
	return rt.handler(rs)
}

func static(h http.HandlerFunc) func(*handlers.Responder) http.HandlerFunc {
	return func(*handlers.Responder) http.HandlerFunc { return h }
}

// table is the superset of both variants, in registration order
var table = []Route{
	{
		Name:    "root",
		Method:  http.MethodGet,
		Pattern: "/",
		handler: func(rs *handlers.Responder) http.HandlerFunc { return rs.Root },
	},
	{
		Name:    "health",
		Method:  http.MethodGet,
		Pattern: "/health",
		handler: static(handlers.HealthHandler),
	},
	{
		Name:    "api_data",
		Method:  http.MethodGet,
		Pattern: "/api/data",
		handler: func(rs *handlers.Responder) http.HandlerFunc { return rs.APIData },
	},
	{
		Name:     "api_data_post",
		Method:   http.MethodPost,
		Pattern:  "/api/data",
		Extended: true,
		handler:  func(rs *handlers.Responder) http.HandlerFunc { return rs.APIDataPost },
	},
	{
		Name:    "admin_users",
		Method:  http.MethodGet,
		Pattern: "/admin/users",
		handler: func(rs *handlers.Responder) http.HandlerFunc { return rs.AdminUsers },
	},
	{
		Name:     "user_resource",
		Method:   http.MethodGet,
		Pattern:  "/users/{userId}/{resource}",
		Extended: true,
		handler:  func(rs *handlers.Responder) http.HandlerFunc { return rs.UserResource },
	},
}

// Table returns the routes served by variant v
func Table(v Variant) []Route {
	routes := make([]Route, 0, len(table))
	for _, rt := range table {
		if rt.Extended && v != VariantExtended {
			continue
		}
		routes = append(routes, rt)
	}
	return routes
}
