// Package middleware provides HTTP middleware for the ShopHub API.
package middleware

import (
	"net/http"
)

// SessionChecker reports whether a user is logged in.
type SessionChecker interface {
	IsAuthenticated() bool
}

// RequireSession rejects requests with 401 while no user is logged in.
// When enabled is false the guard is a pass-through.
func RequireSession(sessions SessionChecker, enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.IsAuthenticated() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"login required"}` + "\n"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
