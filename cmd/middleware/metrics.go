package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/zircuit-labs/authz-demo/cmd/metrics"
)

const (
	metricRequests = "http_requests_total"
	metricDuration = "http_request_duration_seconds"
)

// Metrics records a request counter and latency summary labelled by route pattern, method, and status.
func Metrics(client metrics.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if client == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			tags := []string{
				"route:" + routePattern(r),
				"method:" + r.Method,
				"status:" + strconv.Itoa(rec.Status()),
			}
			_ = client.Incr(metricRequests, tags, 1)
			_ = client.Timing(metricDuration, time.Since(start), tags, 1)
		})
	}
}
