// Package auth verifies externally issued bearer tokens. Verification is
// a pure computation over the token bytes and the configured symmetric
// secret; it never touches the network or the store.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token has expired")
	ErrMissingSubject   = errors.New("token is missing a subject")
)

// Claims is the decoded identity carried by a verified token. Subject is
// opaque; nothing downstream parses it.
type Claims struct {
	Subject   string
	Email     string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type Verifier struct {
	secret []byte
}

// NewVerifier fails when the secret is blank; the caller treats that as a
// fatal configuration error, never a request-level one.
func NewVerifier(secret string) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("signing secret is not configured")
	}

	return &Verifier{secret: []byte(secret)}, nil
}

// Verify checks structure, signature, and expiry in that order, then
// requires a non-empty subject claim. Only HS256 is accepted; the
// algorithm declared by the token header is never trusted.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			// Includes signature mismatches and tokens declaring a
			// different signing algorithm.
			return nil, ErrInvalidSignature
		}
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformedToken
	}

	subject, _ := claimsMap["sub"].(string)
	if strings.TrimSpace(subject) == "" {
		return nil, ErrMissingSubject
	}

	claims := &Claims{Subject: subject}
	claims.Email, _ = claimsMap["email"].(string)
	claims.Name, _ = claimsMap["name"].(string)

	if issued, err := claimsMap.GetIssuedAt(); err == nil && issued != nil {
		claims.IssuedAt = issued.Time
	}
	if expires, err := claimsMap.GetExpirationTime(); err == nil && expires != nil {
		claims.ExpiresAt = expires.Time
	}

	return claims, nil
}
