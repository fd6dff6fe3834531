package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/orgvote/orgvote/internal/core/domain"
	"github.com/orgvote/orgvote/internal/core/ports"
)

// tallyRepository derives every figure from the live tables. There is no
// counter column anywhere to drift out of sync with the ledger.
type tallyRepository struct {
	db *sql.DB
}

func NewTallyRepository(db *sql.DB) ports.TallyRepository {
	return &tallyRepository{
		db: db,
	}
}

func (r *tallyRepository) CountVoters(ctx context.Context, organization string) (int64, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM users WHERE organization = $1 AND role = 'voter'`, organization)
}

func (r *tallyRepository) CountCandidates(ctx context.Context, organization string) (int64, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM candidates WHERE organization = $1`, organization)
}

func (r *tallyRepository) CountBallots(ctx context.Context, organization string) (int64, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM ballots WHERE organization = $1`, organization)
}

func (r *tallyRepository) CandidateCounts(ctx context.Context, organization string) ([]domain.CandidateTally, error) {
	query := `
		SELECT c.id, c.name, COUNT(b.id) AS vote_count
		FROM candidates c
		LEFT JOIN ballots b ON c.id = b.candidate_id
		WHERE c.organization = $1
		GROUP BY c.id, c.name
		ORDER BY vote_count DESC, c.name ASC
	`
	rows, err := r.db.QueryContext(ctx, query, organization)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate candidate counts: %w", err)
	}
	defer rows.Close()

	var tallies []domain.CandidateTally
	for rows.Next() {
		var t domain.CandidateTally
		if err := rows.Scan(&t.CandidateID, &t.Name, &t.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan candidate tally: %w", err)
		}
		tallies = append(tallies, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidate tallies: %w", err)
	}
	return tallies, nil
}

func (r *tallyRepository) GlobalCounts(ctx context.Context) (*domain.GlobalTally, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM organizations),
			(SELECT COUNT(*) FROM users WHERE role = 'admin'),
			(SELECT COUNT(*) FROM users WHERE role = 'voter'),
			(SELECT COUNT(*) FROM candidates),
			(SELECT COUNT(*) FROM ballots)
	`
	totals := &domain.GlobalTally{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&totals.TotalOrganizations, &totals.TotalAdmins, &totals.TotalVoters,
		&totals.TotalCandidates, &totals.TotalBallots,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate global counts: %w", err)
	}
	return totals, nil
}

func (r *tallyRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return n, nil
}
