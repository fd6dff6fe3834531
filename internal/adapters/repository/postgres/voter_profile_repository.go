package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/orgvote/orgvote/internal/core/domain"
	"github.com/orgvote/orgvote/internal/core/ports"
)

type voterProfileRepository struct {
	db *sql.DB
}

func NewVoterProfileRepository(db *sql.DB) ports.VoterProfileRepository {
	return &voterProfileRepository{
		db: db,
	}
}

func (r *voterProfileRepository) Upsert(ctx context.Context, profile *domain.VoterProfile) error {
	query := `
		INSERT INTO voter_profiles (voter_id, full_name, date_of_birth, phone, national_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (voter_id) DO UPDATE
		SET full_name = EXCLUDED.full_name,
		    date_of_birth = EXCLUDED.date_of_birth,
		    phone = EXCLUDED.phone,
		    national_id = EXCLUDED.national_id
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		profile.VoterID, profile.FullName, profile.DateOfBirth, profile.Phone, profile.NationalID,
	).Scan(&profile.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert voter profile: %w", err)
	}
	return nil
}

func (r *voterProfileRepository) GetByVoterID(ctx context.Context, voterID uuid.UUID) (*domain.VoterProfile, error) {
	query := `
		SELECT voter_id, full_name, date_of_birth, phone, national_id, created_at
		FROM voter_profiles
		WHERE voter_id = $1
	`
	profile := &domain.VoterProfile{}
	err := r.db.QueryRowContext(ctx, query, voterID).Scan(
		&profile.VoterID, &profile.FullName, &profile.DateOfBirth,
		&profile.Phone, &profile.NationalID, &profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get voter profile: %w", err)
	}
	return profile, nil
}
