package middleware

import (
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"golang.org/x/time/rate"

	"gocompare_api/metrics"
	"gocompare_api/pkg/logger"
)

// responseWriter keeps the status code written by the wrapped handler.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

var idSegment = regexp.MustCompile(`/[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}|/\d+`)

// endpointLabel collapses ids in a path so the metric label set stays bounded.
func endpointLabel(path string) string {
	return idSegment.ReplaceAllString(path, "/{id}")
}

// PrometheusMiddleware records count and duration of every request.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		metrics.RecordRequest(r.Method, endpointLabel(r.URL.Path), rw.status, time.Since(start))
	})
}

func LoggingMiddleware(log logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			log.Log("Started %s %s", r.Method, r.URL.Path)

			next.ServeHTTP(rw, r)

			log.Log("Completed %s %s with %d in %v", r.Method, r.URL.Path, rw.status, time.Since(start))
		})
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

// RateLimitMiddleware rejects requests above the limiter's rate with 429.
// Requests are never queued.
func RateLimitMiddleware(limiter *rate.Limiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(errorBody{Error: "too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
