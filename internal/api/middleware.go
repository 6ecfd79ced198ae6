// internal/api/middleware.go
package api

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	"minutes-service/internal/common/logger"
	"minutes-service/internal/common/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// statusWriter captures the status code for request logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// requestLogger logs every request and feeds the duration histogram, labeled
// with the chi route pattern so ids don't explode the cardinality.
func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(sw, r)

			elapsed := time.Since(start)
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}

			metrics.HTTPRequestDuration.
				WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).
				Observe(elapsed.Seconds())

			log.Info("http request", map[string]interface{}{
				"method":    r.Method,
				"path":      r.URL.Path,
				"status":    sw.status,
				"duration":  elapsed.String(),
				"requestId": middleware.GetReqID(r.Context()),
			})
		})
	}
}

// secretsMatch compares an offered admin secret in constant time.
func secretsMatch(offered, expected string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(offered), []byte(expected)) == 1
}
