package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"isp-admin/internal/model"
	"isp-admin/pkg/apierror"
)

type tokenVerifier interface {
	VerifyToken(tokenString string) (*model.Identity, error)
}

type contextKey string

const identityContextKey contextKey = "identity"

type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth admits only requests carrying a verifiable bearer token. The
// header must be exactly "Bearer <token>": two space-separated parts, first
// part the literal word Bearer.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeUnauthorized(w, "Authentication required", "No authorization header provided")
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeUnauthorized(w, "Authentication required", "Invalid authorization header format. Use: Bearer <token>")
			return
		}

		identity, err := m.verifier.VerifyToken(parts[1])
		if err != nil {
			writeUnauthorized(w, "Authentication failed", "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext returns the identity attached by RequireAuth.
func IdentityFromContext(ctx context.Context) (*model.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*model.Identity)
	return identity, ok
}

func writeUnauthorized(w http.ResponseWriter, message string, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(apierror.Unauthorized(message, reason))
}
