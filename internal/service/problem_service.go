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
	"problem-hunt-api/internal/util"
	"problem-hunt-api/pkg/apierror"
)

type ProblemService struct {
	store store.Store
}

func NewProblemService(st store.Store) *ProblemService {
	return &ProblemService{store: st}
}

type ListProblemsOptions struct {
	Category string
	SortBy   string
	Search   string
	Limit    int
	Offset   int
}

func (s *ProblemService) Create(ctx context.Context, authorID string, req model.CreateProblemRequest) (*model.Problem, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	budget := strings.TrimSpace(req.Budget)

	for field, value := range map[string]string{
		"title":       title,
		"description": description,
		"category":    req.Category,
		"budget":      budget,
	} {
		if value == "" {
			return nil, apierror.BadRequest(fmt.Sprintf("missing required field: %s", field))
		}
	}

	if !model.IsValidCategory(req.Category) {
		return nil, apierror.BadRequest("invalid category")
	}

	author := strings.TrimSpace(req.Author)
	if author == "" {
		author = "Anonymous User"
	}

	now := nowStamp()
	problem := &model.Problem{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  description,
		Requirements: req.Requirements,
		Category:     req.Category,
		Budget:       budget,
		BudgetValue:  util.BudgetValue(budget),
		Upvotes:      0,
		Proposals:    0,
		Author:       author,
		AuthorID:     authorID,
		Deadline:     strings.TrimSpace(req.Deadline),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if problem.Requirements == nil {
		problem.Requirements = model.StringList{}
	}

	if err := s.store.Create(ctx, store.CollectionProblems, problem); err != nil {
		return nil, err
	}

	return problem, nil
}

func (s *ProblemService) List(ctx context.Context, opts ListProblemsOptions) (*model.ProblemList, error) {
	var filter store.Filter
	if category := strings.TrimSpace(opts.Category); category != "" {
		if !model.IsValidCategory(category) {
			return nil, apierror.BadRequest("invalid category")
		}
		filter = store.Filter{"category": category}
	}

	problems, err := s.queryProblems(ctx, filter)
	if err != nil {
		return nil, err
	}

	if term := strings.TrimSpace(opts.Search); term != "" {
		problems = filterProblems(problems, term)
	}

	sortProblems(problems, opts.SortBy)

	limit, offset := clampPage(opts.Limit, opts.Offset)
	total := len(problems)
	start, end := pageBounds(total, limit, offset)

	return &model.ProblemList{
		Problems: problems[start:end],
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

func (s *ProblemService) ListByAuthor(ctx context.Context, authorID string, sortBy string, limit int, offset int) (*model.ProblemList, error) {
	problems, err := s.queryProblems(ctx, store.Filter{"authorId": authorID})
	if err != nil {
		return nil, err
	}

	sortProblems(problems, sortBy)

	limit, offset = clampPage(limit, offset)
	total := len(problems)
	start, end := pageBounds(total, limit, offset)

	return &model.ProblemList{
		Problems: problems[start:end],
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

func (s *ProblemService) Search(ctx context.Context, term string) (*model.SearchResults, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apierror.BadRequest("search term is required")
	}

	problems, err := s.queryProblems(ctx, nil)
	if err != nil {
		return nil, err
	}

	results := filterProblems(problems, term)
	sortProblems(results, "newest")

	return &model.SearchResults{Results: results, Total: len(results), SearchTerm: term}, nil
}

func (s *ProblemService) Get(ctx context.Context, id string) (*model.Problem, error) {
	return s.findProblem(ctx, id)
}

func (s *ProblemService) Update(ctx context.Context, subject string, id string, req model.UpdateProblemRequest) (*model.Problem, error) {
	problem, err := s.findProblem(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := requireOwner(subject, problem.AuthorID, "you can only edit your own problems"); err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apierror.BadRequest("title cannot be empty")
		}
		problem.Title = title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, apierror.BadRequest("description cannot be empty")
		}
		problem.Description = description
	}
	if req.Category != nil {
		if !model.IsValidCategory(*req.Category) {
			return nil, apierror.BadRequest("invalid category")
		}
		problem.Category = *req.Category
	}
	if req.Budget != nil {
		budget := strings.TrimSpace(*req.Budget)
		if budget == "" {
			return nil, apierror.BadRequest("budget cannot be empty")
		}
		problem.Budget = budget
		problem.BudgetValue = util.BudgetValue(budget)
	}
	if req.Requirements != nil {
		problem.Requirements = *req.Requirements
	}
	if req.Deadline != nil {
		problem.Deadline = strings.TrimSpace(*req.Deadline)
	}

	problem.UpdatedAt = nowStamp()

	if err := s.store.Replace(ctx, store.CollectionProblems, problem); err != nil {
		return nil, err
	}

	return problem, nil
}

// Delete removes the problem and cascades its upvotes and proposals.
func (s *ProblemService) Delete(ctx context.Context, subject string, id string) error {
	problem, err := s.findProblem(ctx, id)
	if err != nil {
		return err
	}

	if err := requireOwner(subject, problem.AuthorID, "you can only delete your own problems"); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, store.CollectionProblems, problem.ID, problem.AuthorID); err != nil {
		return err
	}

	if err := s.cascadeDelete(ctx, store.CollectionUpvotes, id); err != nil {
		return err
	}
	return s.cascadeDelete(ctx, store.CollectionProposals, id)
}

func (s *ProblemService) Upvote(ctx context.Context, subject string, problemID string) (*model.Upvote, error) {
	problem, err := s.findProblem(ctx, problemID)
	if err != nil {
		return nil, err
	}

	upvote := &model.Upvote{
		ID:        model.UpvoteID(problemID, subject),
		ProblemID: problemID,
		UserID:    subject,
		CreatedAt: nowStamp(),
	}

	if err := s.store.Create(ctx, store.CollectionUpvotes, upvote); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, apierror.Conflict("problem already upvoted")
		}
		return nil, err
	}

	// Counter update is last-writer-wins; a lost increment under
	// concurrent votes is accepted.
	problem.Upvotes++
	problem.UpdatedAt = nowStamp()
	if err := s.store.Replace(ctx, store.CollectionProblems, problem); err != nil {
		return nil, err
	}

	return upvote, nil
}

func (s *ProblemService) RemoveUpvote(ctx context.Context, subject string, problemID string) error {
	problem, err := s.findProblem(ctx, problemID)
	if err != nil {
		return err
	}

	err = s.store.Delete(ctx, store.CollectionUpvotes, model.UpvoteID(problemID, subject), problemID)
	if errors.Is(err, model.ErrNotFound) {
		return apierror.NotFound("upvote not found")
	}
	if err != nil {
		return err
	}

	if problem.Upvotes > 0 {
		problem.Upvotes--
	}
	problem.UpdatedAt = nowStamp()
	return s.store.Replace(ctx, store.CollectionProblems, problem)
}

func (s *ProblemService) findProblem(ctx context.Context, id string) (*model.Problem, error) {
	raw, err := s.store.Find(ctx, store.CollectionProblems, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, apierror.NotFound("problem not found")
	}
	if err != nil {
		return nil, err
	}

	var problem model.Problem
	if err := json.Unmarshal(raw, &problem); err != nil {
		return nil, fmt.Errorf("decode problem %s: %w", id, err)
	}
	return &problem, nil
}

func (s *ProblemService) queryProblems(ctx context.Context, filter store.Filter) ([]model.Problem, error) {
	docs, err := s.store.Query(ctx, store.CollectionProblems, filter)
	if err != nil {
		return nil, err
	}

	problems := make([]model.Problem, 0, len(docs))
	for _, doc := range docs {
		var problem model.Problem
		if err := json.Unmarshal(doc, &problem); err != nil {
			return nil, fmt.Errorf("decode problem: %w", err)
		}
		problems = append(problems, problem)
	}
	return problems, nil
}

func (s *ProblemService) cascadeDelete(ctx context.Context, collection string, problemID string) error {
	docs, err := s.store.Query(ctx, collection, store.Filter{"problemId": problemID})
	if err != nil {
		return err
	}

	for _, doc := range docs {
		var ref struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(doc, &ref); err != nil {
			return fmt.Errorf("decode %s document: %w", collection, err)
		}
		if err := s.store.Delete(ctx, collection, ref.ID, problemID); err != nil && !errors.Is(err, model.ErrNotFound) {
			return err
		}
	}
	return nil
}

func filterProblems(problems []model.Problem, term string) []model.Problem {
	// The store's containment filter is exact-match only, so substring
	// search happens here; collections are assumed small.
	lowered := strings.ToLower(term)
	matched := make([]model.Problem, 0, len(problems))
	for _, problem := range problems {
		if strings.Contains(strings.ToLower(problem.Title), lowered) ||
			strings.Contains(strings.ToLower(problem.Description), lowered) {
			matched = append(matched, problem)
		}
	}
	return matched
}

func sortProblems(problems []model.Problem, sortBy string) {
	switch sortBy {
	case "upvotes":
		sort.SliceStable(problems, func(i, j int) bool {
			return problems[i].Upvotes > problems[j].Upvotes
		})
	case "budget":
		sort.SliceStable(problems, func(i, j int) bool {
			return problems[i].BudgetValue > problems[j].BudgetValue
		})
	default: // newest
		sort.SliceStable(problems, func(i, j int) bool {
			return problems[i].CreatedAt > problems[j].CreatedAt
		})
	}
}
