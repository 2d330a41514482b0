package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sign issues an HS256 token for the given subject. Production tokens
// come from the external identity provider; this exists for tests and
// local tooling.
func Sign(secret string, subject string, ttl time.Duration, extra map[string]any) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	for key, value := range extra {
		claims[key] = value
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
