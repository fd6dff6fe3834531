package services

import (
	"context"
	"fmt"

	"github.com/orgvote/orgvote/internal/core/domain"
	"github.com/orgvote/orgvote/internal/core/ports"
)

type tallyService struct {
	repo ports.TallyRepository
}

func NewTallyService(repo ports.TallyRepository) ports.TallyService {
	return &tallyService{
		repo: repo,
	}
}

func (s *tallyService) Tally(ctx context.Context, organization string) (*domain.Tally, error) {
	totalVoters, err := s.repo.CountVoters(ctx, organization)
	if err != nil {
		return nil, fmt.Errorf("failed to count voters: %w", err)
	}

	totalCandidates, err := s.repo.CountCandidates(ctx, organization)
	if err != nil {
		return nil, fmt.Errorf("failed to count candidates: %w", err)
	}

	totalBallots, err := s.repo.CountBallots(ctx, organization)
	if err != nil {
		return nil, fmt.Errorf("failed to count ballots: %w", err)
	}

	perCandidate, err := s.repo.CandidateCounts(ctx, organization)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate candidate counts: %w", err)
	}

	for i := range perCandidate {
		perCandidate[i].Percentage = percentage(perCandidate[i].VoteCount, totalBallots)
	}

	return &domain.Tally{
		Organization:    organization,
		TotalVoters:     totalVoters,
		TotalCandidates: totalCandidates,
		TotalBallots:    totalBallots,
		PerCandidate:    perCandidate,
		Leader:          leader(perCandidate),
	}, nil
}

func (s *tallyService) GlobalTally(ctx context.Context) (*domain.GlobalTally, error) {
	totals, err := s.repo.GlobalCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate global counts: %w", err)
	}
	return totals, nil
}

func percentage(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return (float64(count) / float64(total)) * 100
}

// leader picks the candidate with the most votes. Ties break on name
// ascending, which the repository ordering already guarantees, so the
// first row with the maximum count wins.
func leader(tallies []domain.CandidateTally) *domain.CandidateTally {
	var best *domain.CandidateTally
	for i := range tallies {
		if best == nil || tallies[i].VoteCount > best.VoteCount {
			best = &tallies[i]
		}
	}
	if best == nil || best.VoteCount == 0 {
		return nil
	}
	return best
}
