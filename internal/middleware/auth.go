package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"problem-hunt-api/internal/auth"
	"problem-hunt-api/internal/model"
)

type tokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

type contextKey string

const claimsContextKey contextKey = "auth_claims"

type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth rejects the request before any handler or store work when
// the bearer token is missing or fails verification. The sub-reason is
// folded into the message; callers only see a 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" {
			writeUnauthenticated(w, "authorization header is required")
			return
		}

		fields := strings.Fields(header)
		if len(fields) != 2 || !strings.EqualFold(fields[0], "bearer") {
			writeUnauthenticated(w, "authorization header must be of the form 'Bearer <token>'")
			return
		}

		claims, err := m.verifier.Verify(fields[1])
		if err != nil {
			writeUnauthenticated(w, authFailureMessage(err))
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the verified claims installed by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok
}

func authFailureMessage(err error) string {
	// Expiry keeps its own message so clients know to refresh rather
	// than re-login.
	if errors.Is(err, auth.ErrTokenExpired) {
		return "token has expired"
	}
	return "invalid token"
}

func writeUnauthenticated(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{Error: message})
}
