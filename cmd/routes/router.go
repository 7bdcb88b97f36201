package routes

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/zircuit-labs/authz-demo/cmd/config"
	"github.com/zircuit-labs/authz-demo/cmd/handlers"
	"github.com/zircuit-labs/authz-demo/cmd/identity"
	"github.com/zircuit-labs/authz-demo/cmd/logger"
	"github.com/zircuit-labs/authz-demo/cmd/metrics"
	"github.com/zircuit-labs/authz-demo/cmd/middleware"
)

// Options configures NewRouter
type Options struct {
	Variant   Variant
	Responder *handlers.Responder
	Logger    *logger.Logger
	Metrics   metrics.Client

	// MetricsHandler is mounted at MetricsPath when both are set
	MetricsPath    string
	MetricsHandler http.Handler
}

// NewRouter mounts the variant's routes behind the middleware stack.
// Unmatched paths and methods fall through to chi's default 404 and 405 responses.
// It fails when the metrics path would shadow a route from the table.
func NewRouter(opts Options) (http.Handler, error) {
	if opts.Responder == nil {
		opts.Responder = handlers.NewResponder(identity.Service(config.DefaultServiceName), nil)
	}
	if opts.Variant == "" {
		opts.Variant = VariantExtended
	}

	r := chi.NewRouter()
	applyStack(r, opts)

	for _, rt := range Table(opts.Variant) {
		r.Method(rt.Method, rt.Pattern, rt.Handler(opts.Responder))
	}

	if opts.MetricsPath != "" && opts.MetricsHandler != nil {
		if r.Match(chi.NewRouteContext(), http.MethodGet, opts.MetricsPath) {
			return nil, fmt.Errorf("metrics path %s collides with a service route", opts.MetricsPath)
		}
		r.Method(http.MethodGet, opts.MetricsPath, opts.MetricsHandler)
	}

	return r, nil
}

// applyStack installs the middleware chain. Recoverer sits innermost so the
// logging and metrics layers observe the 500 it writes for a panicking handler.
func applyStack(r chi.Router, opts Options) {
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(middleware.AccessLog(opts.Logger))
	r.Use(chimw.Recoverer)
}
