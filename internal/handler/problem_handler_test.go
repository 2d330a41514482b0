package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"problem-hunt-api/internal/auth"
	"problem-hunt-api/internal/middleware"
	"problem-hunt-api/internal/service"
	"problem-hunt-api/internal/store"
)

func TestProblemHandlerCreate_MalformedJSON(t *testing.T) {
	verifier, err := auth.NewVerifier("test-secret")
	require.NoError(t, err)
	token, err := auth.Sign("test-secret", "user-1", time.Hour, nil)
	require.NoError(t, err)

	h := NewProblemHandler(service.NewProblemService(store.NewMemory()))
	guarded := middleware.NewAuthMiddleware(verifier).RequireAuth(http.HandlerFunc(h.Create))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/problems", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON body")
}
