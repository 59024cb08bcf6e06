package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"outreach-backend/internal/auth"
	"outreach-backend/internal/models"
)

type contextKey string

const claimsKey contextKey = "staff_claims"

// AuthMiddleware guards the canonical staff API with bearer tokens.
type AuthMiddleware struct {
	JWT *auth.JWTManager
}

func NewAuthMiddleware(jwtManager *auth.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{JWT: jwtManager}
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// RequireAuth verifies the Authorization header and stores the claims in
// the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := m.JWT.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireGlobal additionally rejects callers without global visibility.
// The token's role and team are a fast pre-check; services re-verify
// against the live profile.
func (m *AuthMiddleware) RequireGlobal(next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok || !isGlobalClaims(claims) {
			writeAuthError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func isGlobalClaims(c *auth.Claims) bool {
	return c.Role == models.RoleAdmin || c.Role == models.RoleSuperAdmin || c.Team == models.TeamHQ
}

// GetClaims returns the verified token claims for the request.
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

// GetUserID returns the authenticated staff member's id.
func GetUserID(ctx context.Context) (int, bool) {
	if claims, ok := GetClaims(ctx); ok {
		return claims.UserID, true
	}
	return 0, false
}
