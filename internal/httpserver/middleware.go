package httpserver

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/feedlab/snsbox/internal/domain"
	"github.com/feedlab/snsbox/internal/metrics"
)

// apiPrefix marks the routes subject to fault injection.
const apiPrefix = "/api/"

// withFaults is the request gateway. Requests under /api/ pass through
// up to three gates, checked in fixed order with the first match
// winning: rate limiting, random error injection, then added latency.
// Everything outside /api/ bypasses the gateway entirely.
func (s *Server) withFaults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, apiPrefix) {
			next.ServeHTTP(w, r)
			return
		}

		state := s.faults.Current()

		if state.RateLimit {
			metrics.ObserveFault(metrics.FaultRateLimit)
			writeError(w, http.StatusTooManyRequests, domain.CodeRateLimit, "Too many requests")
			return
		}

		if state.ErrorRate > 0 && s.sampler.Percent() < state.ErrorRate {
			metrics.ObserveFault(metrics.FaultError)
			writeError(w, http.StatusInternalServerError, domain.CodeServerError, "Injected server error")
			return
		}

		if state.LatencyMs > 0 {
			metrics.ObserveFault(metrics.FaultLatency)
			// Parks only this request's goroutine; concurrent requests
			// keep being served. The wait is not tied to the request
			// context and always runs to completion.
			timer := time.NewTimer(time.Duration(state.LatencyMs) * time.Millisecond)
			<-timer.C
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging records method, path, status and elapsed time for every
// request, tagged with a generated request id. API requests also feed
// the request counter.
func withLogging(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		if strings.HasPrefix(r.URL.Path, apiPrefix) {
			metrics.ObserveRequest(r.Method, wrapped.status)
		}
		logger.Info("http request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration", time.Since(start),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Unwrap lets http.ResponseController reach the underlying writer, which
// the websocket upgrade needs for hijacking.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
