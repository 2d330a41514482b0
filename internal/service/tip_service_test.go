package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"problem-hunt-api/internal/model"
	"problem-hunt-api/internal/store"
)

func TestTipService_Create(t *testing.T) {
	mem := store.NewMemory()
	problems := NewProblemService(mem)
	proposals := NewProposalService(mem)
	svc := NewTipService(mem)
	ctx := context.Background()

	problem := seedProblem(t, problems, "u1", "tippable")
	proposal, err := proposals.Create(ctx, "builder-1", problem.ID, model.CreateProposalRequest{
		Title:       "work",
		Description: "done",
	})
	require.NoError(t, err)

	tip, err := svc.Create(ctx, "u1", proposal.ID, model.CreateTipRequest{Amount: 12.5, Message: " thanks "})
	require.NoError(t, err)

	assert.Equal(t, proposal.ID, tip.ProposalID)
	assert.Equal(t, "builder-1", tip.BuilderID, "recipient comes from the proposal, not the request")
	assert.Equal(t, "u1", tip.TipperID)
	assert.Equal(t, 12.5, tip.Amount)
	assert.Equal(t, "thanks", tip.Message)
}

func TestTipService_RejectsNonPositiveAmount(t *testing.T) {
	svc := NewTipService(store.NewMemory())
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", "any", model.CreateTipRequest{Amount: 0})
	assertStatus(t, err, http.StatusBadRequest)

	_, err = svc.Create(ctx, "u1", "any", model.CreateTipRequest{Amount: -3})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestTipService_UnknownProposal(t *testing.T) {
	svc := NewTipService(store.NewMemory())

	_, err := svc.Create(context.Background(), "u1", "missing", model.CreateTipRequest{Amount: 1})
	assertStatus(t, err, http.StatusNotFound)
}
