package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/garajdev/garage-api/internal/auth"
	"github.com/garajdev/garage-api/internal/db"
	"github.com/garajdev/garage-api/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	userContextKey  contextKey = "user"
	tokenContextKey contextKey = "token"
)

// AuthMiddleware is the access guard: it authenticates bearer tokens and
// enforces role-based authorization per route.
type AuthMiddleware struct {
	authService *auth.Service
	revocations *auth.RevocationRegistry
	users       db.UserCollection
}

// NewAuthMiddleware creates a new access guard.
func NewAuthMiddleware(authService *auth.Service, revocations *auth.RevocationRegistry, users db.UserCollection) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		revocations: revocations,
		users:       users,
	}
}

// Protect authenticates the request: bearer header → revocation check →
// signature/expiry verification → user lookup. On success the resolved user
// and the raw token are attached to the request context.
func (m *AuthMiddleware) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.ExtractTokenFromHeader(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Not authorized, token missing")
			return
		}

		if m.revocations.IsRevoked(r.Context(), token) {
			writeError(w, http.StatusUnauthorized, "Token has been revoked, please log in again")
			return
		}

		claims, err := m.authService.ValidateToken(token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				writeError(w, http.StatusUnauthorized, "Token expired, please log in again")
			case errors.Is(err, auth.ErrStaleToken):
				writeError(w, http.StatusUnauthorized, "Token too old, please log in again")
			default:
				writeError(w, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		user, err := m.users.FindUserByID(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Token valid but user no longer exists")
			return
		}
		user.PasswordHash = ""

		ctx := context.WithValue(r.Context(), userContextKey, user)
		ctx = context.WithValue(ctx, tokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly allows only admin users through. Must run after Protect.
func (m *AuthMiddleware) AdminOnly(next http.Handler) http.Handler {
	return m.Authorize(models.RoleAdmin)(next)
}

// Authorize allows only the given roles through. Must run after Protect.
func (m *AuthMiddleware) Authorize(allowed ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "User context not found")
				return
			}
			for _, role := range allowed {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "Insufficient permissions for this action")
		})
	}
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

// TokenFromContext extracts the raw bearer token from the request context.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok
}

// writeError sends the standard error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
