package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zircuit-labs/authz-demo/cmd/identity"
	"github.com/zircuit-labs/authz-demo/cmd/logger"
)

// AccessLog logs one structured line per request once the handler returns.
func AccessLog(log *logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			log.LogRequest(
				r.Method,
				r.URL.Path,
				routePattern(r),
				identity.FromRequest(r),
				RequestIDFromContext(r.Context()),
				time.Since(start),
				rec.Status(),
			)
		})
	}
}

// routePattern returns the matched chi pattern, or "unmatched" so unknown paths do not become labels
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
