package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gradientlab/darkroom/internal/ratelimit"
)

// RateLimiter decides whether a subject may proceed. Satisfied by
// ratelimit.RedisTokenBucket.
type RateLimiter interface {
	Allow(ctx context.Context, subject string) (ratelimit.Decision, error)
}

// withRateLimit throttles mutating edit routes per caller and route. Reads
// stay unthrottled, and a limiter outage fails open so Redis downtime does
// not take the API with it.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	if s.rateLimiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := routeLabel(r.URL.Path)
		if r.Method == http.MethodGet || !strings.HasPrefix(r.URL.Path, "/v1/edits") {
			next.ServeHTTP(w, r)
			return
		}

		decision, err := s.rateLimiter.Allow(r.Context(), s.limitSubject(r, route))
		if err != nil {
			s.logger.Printf("rate limiter check failed route=%s err=%v", route, err)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))
		if !decision.Allowed {
			s.rejectRateLimited(w, route, decision)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) limitSubject(r *http.Request, route string) string {
	caller := strings.TrimSpace(r.Header.Get(s.rateLimitUserIDHeader))
	if caller == "" {
		caller = "anonymous"
	}
	return caller + ":" + route
}

func (s *Server) rejectRateLimited(w http.ResponseWriter, route string, decision ratelimit.Decision) {
	retryAfter := max(int(decision.RetryAfter.Round(time.Second).Seconds()), 1)
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	s.metrics.rateLimitRejected.WithLabelValues(route).Inc()
	writeJSON(w, http.StatusTooManyRequests, map[string]string{
		"error": "rate limit exceeded",
	})
}
