package ports

import (
	"context"

	"github.com/orgvote/orgvote/internal/core/domain"
)

// TallyRepository answers counting queries against current table contents.
// Nothing here reads a denormalized counter: every number is an aggregate
// over the ballot ledger and its sibling tables at query time.
type TallyRepository interface {
	CountVoters(ctx context.Context, organization string) (int64, error)
	CountCandidates(ctx context.Context, organization string) (int64, error)
	CountBallots(ctx context.Context, organization string) (int64, error)
	// CandidateCounts returns one row per candidate of the organization
	// (including zero-vote candidates), ordered by vote count descending
	// then name ascending.
	CandidateCounts(ctx context.Context, organization string) ([]domain.CandidateTally, error)
	GlobalCounts(ctx context.Context) (*domain.GlobalTally, error)
}

type TallyService interface {
	Tally(ctx context.Context, organization string) (*domain.Tally, error)
	GlobalTally(ctx context.Context) (*domain.GlobalTally, error)
}
