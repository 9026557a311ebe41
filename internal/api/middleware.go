package api

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"

	"github.com/airatlasapp/airatlas-server/internal/http/response"
)

// rateLimitMiddleware applies a per-client token bucket. The key is the
// client IP, which RealIP has already resolved from proxy headers.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if host, _, err := net.SplitHostPort(key); err == nil {
			key = host
		}
		if !s.limiter.Allow(key) {
			response.Error(w, http.StatusTooManyRequests, "rate limit exceeded", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin checks the bearer token on admin routes. With no token
// configured the routes stay open.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminToken == "" {
			next.ServeHTTP(w, r)
			return
		}

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			response.Error(w, http.StatusUnauthorized, "invalid admin token", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}
