package api

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/google/uuid"
)

// sharerHeader carries the acting user's id on every authenticated call.
const sharerHeader = "X-Sharer-User-Id"

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		metrics.IncHTTP(endpointLabel(r.URL.Path))
		s.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// rateLimitMiddleware limits requests per client within a window. The
// counters live in the search cache so limits span replicas when Redis is up.
func (s *HTTPServer) rateLimitMiddleware(next http.Handler) http.Handler {
	limit := s.cfg.RateLimit.Requests
	if limit <= 0 {
		limit = models.RateLimitRequests
	}
	window := time.Duration(s.cfg.RateLimit.WindowSeconds) * time.Second
	if window <= 0 {
		window = models.RateLimitWindow * time.Second
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, err := s.cache.CheckRateLimit(r.Context(), clientKey(r), limit, window)
		if err != nil {
			s.logger.Warn().Err(err).Msg("rate limit check failed, allowing request")
		} else if !allowed {
			writeError(w, http.StatusTooManyRequests, "error", "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(sharerHeader)); id != "" {
		return id
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return "unknown"
}

// endpointLabel collapses paths with ids into a fixed label set so that the
// metric cardinality stays bounded.
func endpointLabel(path string) string {
	parts := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)
	if len(parts) == 0 || parts[0] == "" {
		return "root"
	}
	return parts[0]
}

// userIDFromHeader extracts the acting user id from X-Sharer-User-Id.
func userIDFromHeader(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.Header.Get(sharerHeader))
	if raw == "" {
		return 0, fmt.Errorf("%s header is required", sharerHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s header must be an integer", sharerHeader)
	}
	return id, nil
}

// pathID parses the numeric id segment that follows prefix, e.g.
// /items/42/comment -> (42, "comment").
func pathID(path, prefix string) (int64, string, error) {
	rest := strings.TrimPrefix(path, prefix)
	segment, tail, _ := strings.Cut(rest, "/")
	id, err := strconv.ParseInt(segment, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid id in path: %s", segment)
	}
	return id, tail, nil
}

func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
