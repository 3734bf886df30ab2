package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/AndhiniDev/dapur-azka-backend/internal/auth"
)

type ctxKey int

const claimsKey ctxKey = iota

// Middleware gates routes on the session: a valid token AND a live auth
// flag. A parsed-but-logged-out token is rejected, so logout actually works.
type Middleware struct {
	Tokens *auth.TokenManager
	Auth   *auth.Service
}

func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" || raw == r.Header.Get("Authorization") {
			writeErr(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := m.Tokens.Parse(raw)
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if !m.Auth.IsAuthenticated(r.Context(), claims.UserID) {
			writeErr(w, http.StatusUnauthorized, "session expired")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claimsFrom(r).Role != auth.RoleAdmin {
			writeErr(w, http.StatusForbidden, "admin only")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func claimsFrom(r *http.Request) auth.Claims {
	c, _ := r.Context().Value(claimsKey).(auth.Claims)
	return c
}
