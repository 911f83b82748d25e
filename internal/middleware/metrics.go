package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/goober-garden/internal/metrics"
)

// Metrics returns an HTTP middleware that records the request counter and
// latency histogram.
//
// The route label is chi's route PATTERN ("/v1/goobers/{fingerprint}"),
// not the raw path — raw paths contain the token and would blow up the
// label cardinality with one series per visitor.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapped, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}

			metrics.HTTPRequests.WithLabelValues(
				r.Method, route, strconv.Itoa(wrapped.statusCode),
			).Inc()
			metrics.HTTPDuration.WithLabelValues(r.Method, route).
				Observe(time.Since(start).Seconds())
		})
	}
}
