//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"problem-hunt-api/internal/auth"
	"problem-hunt-api/internal/config"
	"problem-hunt-api/internal/handler"
	"problem-hunt-api/internal/middleware"
	"problem-hunt-api/internal/router"
	"problem-hunt-api/internal/service"
	"problem-hunt-api/internal/store"
)

const testSecret = "test-secret"

// countingStore wraps a store and counts every call that reaches it, so
// tests can prove a rejected request never touched persistence.
type countingStore struct {
	inner store.Store
	calls int64
}

func newCountingStore() *countingStore {
	return &countingStore{inner: store.NewMemory()}
}

func (c *countingStore) Calls() int64 {
	return atomic.LoadInt64(&c.calls)
}

func (c *countingStore) ResetCalls() {
	atomic.StoreInt64(&c.calls, 0)
}

func (c *countingStore) Create(ctx context.Context, collection string, doc store.Document) error {
	atomic.AddInt64(&c.calls, 1)
	return c.inner.Create(ctx, collection, doc)
}

func (c *countingStore) Get(ctx context.Context, collection string, id string, partitionKey string) (json.RawMessage, error) {
	atomic.AddInt64(&c.calls, 1)
	return c.inner.Get(ctx, collection, id, partitionKey)
}

func (c *countingStore) Find(ctx context.Context, collection string, id string) (json.RawMessage, error) {
	atomic.AddInt64(&c.calls, 1)
	return c.inner.Find(ctx, collection, id)
}

func (c *countingStore) Query(ctx context.Context, collection string, filter store.Filter) ([]json.RawMessage, error) {
	atomic.AddInt64(&c.calls, 1)
	return c.inner.Query(ctx, collection, filter)
}

func (c *countingStore) Replace(ctx context.Context, collection string, doc store.Document) error {
	atomic.AddInt64(&c.calls, 1)
	return c.inner.Replace(ctx, collection, doc)
}

func (c *countingStore) Delete(ctx context.Context, collection string, id string, partitionKey string) error {
	atomic.AddInt64(&c.calls, 1)
	return c.inner.Delete(ctx, collection, id, partitionKey)
}

func newTestServer(t *testing.T) (*httptest.Server, *countingStore) {
	t.Helper()

	st := newCountingStore()

	verifier, err := auth.NewVerifier(testSecret)
	require.NoError(t, err)
	authMiddleware := middleware.NewAuthMiddleware(verifier)

	cfg := &config.Config{
		ServerPort:         "8080",
		ServerReadTimeout:  15 * time.Second,
		ServerWriteTimeout: 30 * time.Second,
		ServerIdleTimeout:  120 * time.Second,
		RequestTimeout:     30 * time.Second,
		JWTSecret:          testSecret,
		StoreDriver:        config.StoreDriverMemory,
		CORSOrigins:        []string{"*"},
		RateLimitRPM:       10000,
	}

	handlers := router.Handlers{
		Health:      handler.NewHealthHandler(nil),
		Problem:     handler.NewProblemHandler(service.NewProblemService(st)),
		Proposal:    handler.NewProposalHandler(service.NewProposalService(st)),
		Tip:         handler.NewTipHandler(service.NewTipService(st)),
		Wallet:      handler.NewWalletHandler(service.NewWalletService(st)),
		Post:        handler.NewPostHandler(service.NewPostService(st)),
		Leaderboard: handler.NewLeaderboardHandler(service.NewLeaderboardService(st)),
	}

	server := httptest.NewServer(router.New(cfg, authMiddleware, handlers))
	t.Cleanup(server.Close)

	return server, st
}

func tokenFor(t *testing.T, subject string) string {
	t.Helper()

	token, err := auth.Sign(testSecret, subject, time.Hour, nil)
	require.NoError(t, err)
	return token
}

func expiredTokenFor(t *testing.T, subject string) string {
	t.Helper()

	token, err := auth.Sign(testSecret, subject, -time.Hour, nil)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, method string, url string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader = bytes.NewReader(nil)
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
