package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"problem-hunt-api/internal/model"
	"problem-hunt-api/internal/store"
	"problem-hunt-api/pkg/apierror"
)

type ProposalService struct {
	store store.Store
}

func NewProposalService(st store.Store) *ProposalService {
	return &ProposalService{store: st}
}

func (s *ProposalService) ListForProblem(ctx context.Context, problemID string, limit int, offset int) (*model.ProposalList, error) {
	if _, err := s.requireProblem(ctx, problemID); err != nil {
		return nil, err
	}

	proposals, err := s.queryProposals(ctx, store.Filter{"problemId": problemID})
	if err != nil {
		return nil, err
	}

	sortProposalsNewest(proposals)

	limit, offset = clampPage(limit, offset)
	total := len(proposals)
	start, end := pageBounds(total, limit, offset)

	return &model.ProposalList{
		Proposals: proposals[start:end],
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

func (s *ProposalService) Create(ctx context.Context, builderID string, problemID string, req model.CreateProposalRequest) (*model.Proposal, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" {
		return nil, apierror.BadRequest("missing required field: title")
	}
	if description == "" {
		return nil, apierror.BadRequest("missing required field: description")
	}

	problem, err := s.requireProblem(ctx, problemID)
	if err != nil {
		return nil, err
	}

	builderName := strings.TrimSpace(req.BuilderName)
	if builderName == "" {
		builderName = "Anonymous Builder"
	}

	now := nowStamp()
	proposal := &model.Proposal{
		ID:            uuid.NewString(),
		ProblemID:     problemID,
		Title:         title,
		Description:   description,
		ProjectURL:    strings.TrimSpace(req.ProjectURL),
		BuilderID:     builderID,
		BuilderName:   builderName,
		BriefSolution: strings.TrimSpace(req.BriefSolution),
		Timeline:      strings.TrimSpace(req.Timeline),
		Cost:          req.Cost,
		Expertise:     req.Expertise,
		Status:        model.ProposalStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if proposal.Expertise == nil {
		proposal.Expertise = model.StringList{}
	}

	if err := s.store.Create(ctx, store.CollectionProposals, proposal); err != nil {
		return nil, err
	}

	problem.Proposals++
	problem.UpdatedAt = now
	if err := s.store.Replace(ctx, store.CollectionProblems, problem); err != nil {
		return nil, err
	}

	return proposal, nil
}

// ListForUser returns the caller's proposals enriched with the parent
// problem title and the total tips received per proposal.
func (s *ProposalService) ListForUser(ctx context.Context, builderID string) (*model.UserProposalList, error) {
	proposals, err := s.queryProposals(ctx, store.Filter{"builderId": builderID})
	if err != nil {
		return nil, err
	}
	sortProposalsNewest(proposals)

	tipTotals, err := s.tipTotals(ctx, builderID)
	if err != nil {
		return nil, err
	}

	titleCache := map[string]string{}
	enriched := make([]model.UserProposal, 0, len(proposals))
	for _, proposal := range proposals {
		title, cached := titleCache[proposal.ProblemID]
		if !cached {
			title = s.problemTitle(ctx, proposal.ProblemID)
			titleCache[proposal.ProblemID] = title
		}

		enriched = append(enriched, model.UserProposal{
			Proposal:     proposal,
			ProblemTitle: title,
			TipTotal:     tipTotals[proposal.ID],
		})
	}

	return &model.UserProposalList{Proposals: enriched, Total: len(enriched)}, nil
}

func (s *ProposalService) requireProblem(ctx context.Context, problemID string) (*model.Problem, error) {
	raw, err := s.store.Find(ctx, store.CollectionProblems, problemID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, apierror.NotFound("problem not found")
	}
	if err != nil {
		return nil, err
	}

	var problem model.Problem
	if err := json.Unmarshal(raw, &problem); err != nil {
		return nil, fmt.Errorf("decode problem %s: %w", problemID, err)
	}
	return &problem, nil
}

func (s *ProposalService) queryProposals(ctx context.Context, filter store.Filter) ([]model.Proposal, error) {
	docs, err := s.store.Query(ctx, store.CollectionProposals, filter)
	if err != nil {
		return nil, err
	}

	proposals := make([]model.Proposal, 0, len(docs))
	for _, doc := range docs {
		var proposal model.Proposal
		if err := json.Unmarshal(doc, &proposal); err != nil {
			return nil, fmt.Errorf("decode proposal: %w", err)
		}
		proposals = append(proposals, proposal)
	}
	return proposals, nil
}

func (s *ProposalService) tipTotals(ctx context.Context, builderID string) (map[string]float64, error) {
	docs, err := s.store.Query(ctx, store.CollectionTips, store.Filter{"builderId": builderID})
	if err != nil {
		return nil, err
	}

	totals := map[string]float64{}
	for _, doc := range docs {
		var tip model.Tip
		if err := json.Unmarshal(doc, &tip); err != nil {
			return nil, fmt.Errorf("decode tip: %w", err)
		}
		totals[tip.ProposalID] += tip.Amount
	}
	return totals, nil
}

func (s *ProposalService) problemTitle(ctx context.Context, problemID string) string {
	raw, err := s.store.Find(ctx, store.CollectionProblems, problemID)
	if err != nil {
		return "Unknown Problem"
	}

	var problem model.Problem
	if err := json.Unmarshal(raw, &problem); err != nil {
		return "Unknown Problem"
	}
	return problem.Title
}

func sortProposalsNewest(proposals []model.Proposal) {
	sort.SliceStable(proposals, func(i, j int) bool {
		return proposals[i].CreatedAt > proposals[j].CreatedAt
	})
}
