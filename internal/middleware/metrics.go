package middleware

import (
	"net/http"
	"strconv"
	"time"

	"review-studio/internal/monitoring"

	"github.com/go-chi/chi/v5/middleware"
)

// MetricsMiddleware records request counts and durations by route pattern.
func MetricsMiddleware(m *monitoring.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			labels := []string{r.Method, routePattern(r), strconv.Itoa(status)}
			m.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			m.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
		})
	}
}
