package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/orgvote/orgvote/internal/core/domain"
	"github.com/orgvote/orgvote/internal/core/ports"
)

const uniqueViolation = "23505"

type ballotRepository struct {
	db *sql.DB
}

func NewBallotRepository(db *sql.DB) ports.BallotRepository {
	return &ballotRepository{
		db: db,
	}
}

// Insert appends a ballot. The candidate predicate (same organization,
// verified) is part of the INSERT itself, and the unique index on
// (voter_id, organization) rejects duplicates at the storage layer, so
// two racing casts for the same voter resolve to exactly one row.
func (r *ballotRepository) Insert(ctx context.Context, ballot *domain.Ballot) error {
	query := `
		INSERT INTO ballots (id, voter_id, candidate_id, organization)
		SELECT $1, $2, c.id, c.organization
		FROM candidates c
		WHERE c.id = $3 AND c.organization = $4 AND c.is_verified
		RETURNING cast_at
	`
	err := r.db.QueryRowContext(ctx, query,
		ballot.ID, ballot.VoterID, ballot.CandidateID, ballot.Organization,
	).Scan(&ballot.CastAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrCandidateIneligible
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return domain.ErrAlreadyVoted
		}
		return fmt.Errorf("failed to insert ballot: %w", err)
	}
	return nil
}

func (r *ballotRepository) GetByVoter(ctx context.Context, voterID uuid.UUID, organization string) (*domain.Ballot, error) {
	query := `
		SELECT id, voter_id, candidate_id, organization, cast_at
		FROM ballots
		WHERE voter_id = $1 AND organization = $2
	`
	ballot := &domain.Ballot{}
	err := r.db.QueryRowContext(ctx, query, voterID, organization).Scan(
		&ballot.ID, &ballot.VoterID, &ballot.CandidateID, &ballot.Organization, &ballot.CastAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ballot: %w", err)
	}
	return ballot, nil
}

func (r *ballotRepository) ListRecords(ctx context.Context, organization string) ([]domain.BallotRecord, error) {
	query := `
		SELECT b.id, b.organization, u.email, COALESCE(vp.full_name, u.name), COALESCE(c.name, ''), b.cast_at
		FROM ballots b
		JOIN users u ON b.voter_id = u.id
		LEFT JOIN voter_profiles vp ON u.id = vp.voter_id
		LEFT JOIN candidates c ON b.candidate_id = c.id
		WHERE b.organization = $1
		ORDER BY b.cast_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, organization)
	if err != nil {
		return nil, fmt.Errorf("failed to list ballots: %w", err)
	}
	defer rows.Close()

	return scanBallotRecords(rows)
}

func (r *ballotRepository) ListAllRecords(ctx context.Context) ([]domain.BallotRecord, error) {
	query := `
		SELECT b.id, b.organization, u.email, COALESCE(vp.full_name, u.name), COALESCE(c.name, ''), b.cast_at
		FROM ballots b
		JOIN users u ON b.voter_id = u.id
		LEFT JOIN voter_profiles vp ON u.id = vp.voter_id
		LEFT JOIN candidates c ON b.candidate_id = c.id
		ORDER BY b.cast_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ballots: %w", err)
	}
	defer rows.Close()

	return scanBallotRecords(rows)
}

func scanBallotRecords(rows *sql.Rows) ([]domain.BallotRecord, error) {
	var records []domain.BallotRecord
	for rows.Next() {
		var rec domain.BallotRecord
		if err := rows.Scan(&rec.ID, &rec.Organization, &rec.VoterEmail, &rec.VoterName, &rec.CandidateName, &rec.CastAt); err != nil {
			return nil, fmt.Errorf("failed to scan ballot record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ballots: %w", err)
	}
	return records, nil
}
