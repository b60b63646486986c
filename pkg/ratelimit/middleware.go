package ratelimit

import (
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"golang.org/x/exp/slog"
)

// PerClient wraps a handler with a per-client-IP throttle. Over-limit
// requests get 429 with a Retry-After hint.
func PerClient(limiter *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ClientKey(r)
			if !limiter.Allow(key) {
				slog.Warn("Request throttled", "client", key, "path", r.URL.Path)
				w.Header().Set("Retry-After", "60")
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, map[string]string{
					"message": "too many requests, try again later",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientKey extracts the client IP for throttling, preferring proxy
// headers over RemoteAddr.
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// first hop is the original client
		if ip, _, ok := strings.Cut(xff, ","); ok {
			return strings.TrimSpace(ip)
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
