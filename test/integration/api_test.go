//go:build integration

package integration

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Error string `json:"error"`
}

type problemBody struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	AuthorID string `json:"authorId"`
	Upvotes  int    `json:"upvotes"`
}

func createProblem(t *testing.T, baseURL string, token string, title string) problemBody {
	t.Helper()

	resp := doJSON(t, http.MethodPost, baseURL+"/api/v1/problems", map[string]any{
		"title":       title,
		"description": "a description of " + title,
		"category":    "Web3",
		"budget":      "$1,000",
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var problem problemBody
	decodeBody(t, resp, &problem)
	require.NotEmpty(t, problem.ID)
	return problem
}

func TestOwnershipLifecycle(t *testing.T) {
	server, _ := newTestServer(t)
	ownerToken := tokenFor(t, "user-1")
	otherToken := tokenFor(t, "user-2")

	problem := createProblem(t, server.URL, ownerToken, "settle the debate")
	assert.Equal(t, "user-1", problem.AuthorID)

	// Anyone can read it without a token.
	resp := doJSON(t, http.MethodGet, server.URL+"/api/v1/problems/"+problem.ID, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A different authenticated user cannot delete it.
	resp = doJSON(t, http.MethodDelete, server.URL+"/api/v1/problems/"+problem.ID, nil, otherToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The failed delete left it intact.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/problems/"+problem.ID, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The owner can.
	resp = doJSON(t, http.MethodDelete, server.URL+"/api/v1/problems/"+problem.ID, nil, ownerToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Gone for everyone now, including the owner repeating the delete.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/problems/"+problem.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, server.URL+"/api/v1/problems/"+problem.ID, nil, ownerToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExpiredTokenNeverReachesStore(t *testing.T) {
	server, st := newTestServer(t)
	expired := expiredTokenFor(t, "user-1")

	requests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, "/api/v1/problems", map[string]any{"title": "x"}},
		{http.MethodPut, "/api/v1/problems/some-id", map[string]any{"title": "x"}},
		{http.MethodDelete, "/api/v1/problems/some-id", nil},
		{http.MethodPost, "/api/v1/problems/some-id/upvote", nil},
		{http.MethodPost, "/api/v1/proposals/some-id/tip", map[string]any{"amount": 5}},
		{http.MethodGet, "/api/v1/user/problems", nil},
		{http.MethodGet, "/api/v1/user/wallets", nil},
		{http.MethodPost, "/api/v1/posts/", map[string]any{"title": "x", "content": "y"}},
	}

	st.ResetCalls()
	for _, r := range requests {
		resp := doJSON(t, r.method, server.URL+r.path, r.body, expired)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", r.method, r.path)

		var body errorBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "token has expired", body.Error)
	}

	assert.Zero(t, st.Calls(), "rejected requests must not touch the store")
}

func TestMissingTokenRejected(t *testing.T) {
	server, st := newTestServer(t)

	st.ResetCalls()
	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/problems", map[string]any{"title": "x"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body errorBody
	decodeBody(t, resp, &body)
	assert.Equal(t, "authorization header is required", body.Error)
	assert.Zero(t, st.Calls())
}

func TestDoubleUpvoteConflicts(t *testing.T) {
	server, _ := newTestServer(t)
	ownerToken := tokenFor(t, "user-1")
	voterToken := tokenFor(t, "user-2")

	problem := createProblem(t, server.URL, ownerToken, "worth voting on")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/problems/"+problem.ID+"/upvote", nil, voterToken)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/problems/"+problem.ID+"/upvote", nil, voterToken)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body errorBody
	decodeBody(t, resp, &body)
	assert.Equal(t, "problem already upvoted", body.Error)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/problems/"+problem.ID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got problemBody
	decodeBody(t, resp, &got)
	assert.Equal(t, 1, got.Upvotes)
}

func TestProposalAndTipFlow(t *testing.T) {
	server, _ := newTestServer(t)
	ownerToken := tokenFor(t, "user-1")
	builderToken := tokenFor(t, "builder-1")

	problem := createProblem(t, server.URL, ownerToken, "needs a builder")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/problems/"+problem.ID+"/proposals", map[string]any{
		"title":       "my approach",
		"description": "three weeks of work",
		"builderName": "Builder One",
	}, builderToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var proposal struct {
		ID        string `json:"id"`
		BuilderID string `json:"builderId"`
		Status    string `json:"status"`
	}
	decodeBody(t, resp, &proposal)
	assert.Equal(t, "builder-1", proposal.BuilderID)
	assert.Equal(t, "pending", proposal.Status)

	// Proposal listing is public.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/problems/"+problem.ID+"/proposals", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list struct {
		Total int `json:"total"`
	}
	decodeBody(t, resp, &list)
	assert.Equal(t, 1, list.Total)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/proposals/"+proposal.ID+"/tip", map[string]any{
		"amount":  7.5,
		"message": "nice work",
	}, ownerToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var tip struct {
		BuilderID string  `json:"builderId"`
		TipperID  string  `json:"tipperId"`
		Amount    float64 `json:"amount"`
	}
	decodeBody(t, resp, &tip)
	assert.Equal(t, "builder-1", tip.BuilderID)
	assert.Equal(t, "user-1", tip.TipperID)
	assert.Equal(t, 7.5, tip.Amount)

	// The tip shows up in the builder's dashboard and on the leaderboard.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/user/proposals", nil, builderToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var mine struct {
		Proposals []struct {
			ProblemTitle string  `json:"problemTitle"`
			TipTotal     float64 `json:"tipTotal"`
		} `json:"proposals"`
	}
	decodeBody(t, resp, &mine)
	require.Len(t, mine.Proposals, 1)
	assert.Equal(t, "needs a builder", mine.Proposals[0].ProblemTitle)
	assert.Equal(t, 7.5, mine.Proposals[0].TipTotal)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/leaderboard", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var board struct {
		Leaderboard []struct {
			BuilderID       string `json:"builderId"`
			ReputationScore int    `json:"reputationScore"`
		} `json:"leaderboard"`
		Period string `json:"period"`
	}
	decodeBody(t, resp, &board)
	require.Len(t, board.Leaderboard, 1)
	assert.Equal(t, "builder-1", board.Leaderboard[0].BuilderID)
	// 1 submitted * 5 + 7.5 tips * 10
	assert.Equal(t, 80, board.Leaderboard[0].ReputationScore)
	assert.Equal(t, "alltime", board.Period)
}

func TestWalletLifecycle(t *testing.T) {
	server, _ := newTestServer(t)
	ownerToken := tokenFor(t, "user-1")
	otherToken := tokenFor(t, "user-2")

	address := "0xa1b2c3d4e5f6a7b8c9d0a1b2c3d4e5f6a7b8c9d0"

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/user/wallets", map[string]any{
		"chain":   "ethereum",
		"address": address,
	}, ownerToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var wallet struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &wallet)

	// Same address on another account is a conflict.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/user/wallets", map[string]any{
		"chain":   "polygon",
		"address": address,
	}, otherToken)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Another user's wallet id deletes as not-found, never forbidden.
	resp = doJSON(t, http.MethodDelete, server.URL+"/api/v1/user/wallets/"+wallet.ID, nil, otherToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, server.URL+"/api/v1/user/wallets/"+wallet.ID, nil, ownerToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	server, _ := newTestServer(t)

	// /api/v1/problems only takes GET and POST.
	resp := doJSON(t, http.MethodPatch, server.URL+"/api/v1/problems", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	var body errorBody
	decodeBody(t, resp, &body)
	assert.Equal(t, "method not allowed", body.Error)
}

func TestMalformedJSONBody(t *testing.T) {
	server, _ := newTestServer(t)
	token := tokenFor(t, "user-1")

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/v1/problems", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errorBody
	decodeBody(t, resp, &body)
	assert.Equal(t, "invalid JSON body", body.Error)
}

func TestUnknownRouteAndHealth(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/v1/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body errorBody
	decodeBody(t, resp, &body)
	assert.Equal(t, "route not found", body.Error)

	resp = doJSON(t, http.MethodGet, server.URL+"/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
