package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"problem-hunt-api/internal/model"
	"problem-hunt-api/internal/store"
	"problem-hunt-api/pkg/apierror"
)

type TipService struct {
	store store.Store
}

func NewTipService(st store.Store) *TipService {
	return &TipService{store: st}
}

// Create records a tip from the caller to the proposal's builder.
func (s *TipService) Create(ctx context.Context, tipperID string, proposalID string, req model.CreateTipRequest) (*model.Tip, error) {
	if req.Amount <= 0 {
		return nil, apierror.BadRequest("a positive amount is required")
	}

	raw, err := s.store.Find(ctx, store.CollectionProposals, proposalID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, apierror.NotFound("proposal not found")
	}
	if err != nil {
		return nil, err
	}

	var proposal model.Proposal
	if err := json.Unmarshal(raw, &proposal); err != nil {
		return nil, fmt.Errorf("decode proposal %s: %w", proposalID, err)
	}

	tip := &model.Tip{
		ID:         uuid.NewString(),
		ProposalID: proposalID,
		BuilderID:  proposal.BuilderID,
		TipperID:   tipperID,
		Amount:     req.Amount,
		Message:    strings.TrimSpace(req.Message),
		CreatedAt:  nowStamp(),
	}

	if err := s.store.Create(ctx, store.CollectionTips, tip); err != nil {
		return nil, err
	}

	return tip, nil
}
