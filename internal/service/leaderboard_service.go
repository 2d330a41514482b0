package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"problem-hunt-api/internal/model"
	"problem-hunt-api/internal/store"
)

type LeaderboardService struct {
	store store.Store
}

func NewLeaderboardService(st store.Store) *LeaderboardService {
	return &LeaderboardService{store: st}
}

// Get aggregates proposals and tips into per-builder reputation. Both
// collections are scanned whole; volumes are assumed small. The period
// parameter is echoed back but does not filter yet.
func (s *LeaderboardService) Get(ctx context.Context, period string, limit int) (*model.Leaderboard, error) {
	if period == "" {
		period = "alltime"
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	stats := map[string]*model.LeaderboardEntry{}

	proposalDocs, err := s.store.Query(ctx, store.CollectionProposals, nil)
	if err != nil {
		return nil, err
	}
	for _, doc := range proposalDocs {
		var proposal model.Proposal
		if err := json.Unmarshal(doc, &proposal); err != nil {
			return nil, fmt.Errorf("decode proposal: %w", err)
		}
		if proposal.BuilderID == "" {
			continue
		}

		entry := s.entryFor(stats, proposal.BuilderID, proposal.BuilderName)
		entry.ProposalsSubmitted++
		if proposal.Status == model.ProposalStatusAccepted {
			entry.ProposalsAccepted++
		}
	}

	tipDocs, err := s.store.Query(ctx, store.CollectionTips, nil)
	if err != nil {
		return nil, err
	}
	for _, doc := range tipDocs {
		var tip model.Tip
		if err := json.Unmarshal(doc, &tip); err != nil {
			return nil, fmt.Errorf("decode tip: %w", err)
		}
		if tip.BuilderID == "" {
			continue
		}

		entry := s.entryFor(stats, tip.BuilderID, "")
		entry.TipsReceived += tip.Amount
	}

	entries := make([]model.LeaderboardEntry, 0, len(stats))
	for _, entry := range stats {
		entry.ReputationScore = entry.ProposalsAccepted*100 +
			int(entry.TipsReceived*10) +
			entry.ProposalsSubmitted*5
		entry.Tier = tierFor(entry.ReputationScore)
		entries = append(entries, *entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ReputationScore != entries[j].ReputationScore {
			return entries[i].ReputationScore > entries[j].ReputationScore
		}
		return entries[i].BuilderID < entries[j].BuilderID
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return &model.Leaderboard{Leaderboard: entries, Total: len(entries), Period: period}, nil
}

func (s *LeaderboardService) entryFor(stats map[string]*model.LeaderboardEntry, builderID string, builderName string) *model.LeaderboardEntry {
	entry, ok := stats[builderID]
	if !ok {
		entry = &model.LeaderboardEntry{BuilderID: builderID, BuilderName: "Anonymous"}
		stats[builderID] = entry
	}
	if builderName != "" && entry.BuilderName == "Anonymous" {
		entry.BuilderName = builderName
	}
	return entry
}

func tierFor(score int) string {
	switch {
	case score >= 5000:
		return "Legend"
	case score >= 1500:
		return "Expert"
	case score >= 500:
		return "Senior"
	case score >= 100:
		return "Builder"
	default:
		return "Newcomer"
	}
}
