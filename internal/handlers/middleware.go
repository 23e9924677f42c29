package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"
	"vocadrill/internal/models"
	"vocadrill/internal/security"
	"vocadrill/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// SessionCookieName is the cookie that carries the session token
const SessionCookieName = "session_token"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	limiter     *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService: authService,
		limiter:     limiter,
	}
}

// RequireAuth validates the session token from the cookie or the
// Authorization header, loads the user and injects it into the context
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
			return
		}

		user, err := m.authService.Authenticate(token)
		if err != nil {
			// Clear the stale cookie so the client stops resending it
			http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
			respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid or expired session"})
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit rejects requests from IPs that exhausted their token bucket
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiter.Allow(ip) {
			respondJSON(w, http.StatusTooManyRequests, map[string]string{"error": "Too many requests"})
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func tokenFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return token
		}
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
