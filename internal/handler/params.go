package handler

import (
	"net/http"
	"strconv"
	"strings"

	"problem-hunt-api/internal/auth"
	"problem-hunt-api/internal/middleware"
	"problem-hunt-api/pkg/apierror"
)

func parseIntOrDefault(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// pageParams reads limit/offset with their defaults; clamping happens in
// the service layer.
func pageParams(r *http.Request) (int, int) {
	query := r.URL.Query()
	limit := parseIntOrDefault(query.Get("limit"), 10)
	offset := parseIntOrDefault(query.Get("offset"), 0)
	return limit, offset
}

// callerClaims returns the identity installed by RequireAuth. Routes
// using it are always behind the middleware; the error path is a guard
// against wiring mistakes.
func callerClaims(r *http.Request) (*auth.Claims, error) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return nil, apierror.Unauthorized("authentication required")
	}
	return claims, nil
}
