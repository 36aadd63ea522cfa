package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/sentinelai/sentinel/internal/cache"
)

// RateLimitAuth returns a middleware that applies a per-IP token bucket
// to credential endpoints (signup, login). The bucket lives in Redis so
// the limit holds across instances; if Redis is unavailable the check
// fails open and the request proceeds.
func RateLimitAuth(c *cache.Cache, rps, burst int, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r)

			result, err := c.CheckAuthRateLimit(r.Context(), ip, rps, burst)
			if err != nil {
				logger.LogAttrs(r.Context(), slog.LevelWarn, "rate limit check failed, allowing request",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("error", err.Error()),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(burst))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))

			if !result.Allowed {
				logger.LogAttrs(r.Context(), slog.LevelWarn, "rate limit exceeded",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("path", r.URL.Path),
				)

				if result.RetryAfter > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":{"code":"RATE_LIMITED","message":"too many requests, slow down"}}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client IP, preferring proxy headers set by
// the load balancer over the raw remote address.
func getClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// First entry is the original client
		if ip, _, found := strings.Cut(forwarded, ","); found {
			return strings.TrimSpace(ip)
		}
		return strings.TrimSpace(forwarded)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
