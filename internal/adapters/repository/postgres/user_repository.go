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

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, role, organization, is_verified)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.Organization, user.IsVerified,
	).Scan(&user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, name, role, COALESCE(organization, ''), is_verified, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, name, role, COALESCE(organization, ''), is_verified, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) SetVoterVerified(ctx context.Context, voterID uuid.UUID, organization string, verified bool) error {
	query := `
		UPDATE users SET is_verified = $1
		WHERE id = $2 AND organization = $3 AND role = 'voter'
	`
	res, err := r.db.ExecContext(ctx, query, verified, voterID, organization)
	if err != nil {
		return fmt.Errorf("failed to update voter verification: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrVoterNotFound
	}
	return nil
}

func (r *UserRepository) ListVoters(ctx context.Context, organization string) ([]domain.VoterOverview, error) {
	query := voterOverviewQuery + `
		WHERE u.role = 'voter' AND u.organization = $1
		ORDER BY u.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, organization)
	if err != nil {
		return nil, fmt.Errorf("failed to list voters: %w", err)
	}
	defer rows.Close()

	return scanVoterOverviews(rows)
}

func (r *UserRepository) ListAllVoters(ctx context.Context) ([]domain.VoterOverview, error) {
	query := voterOverviewQuery + `
		WHERE u.role = 'voter'
		ORDER BY u.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list voters: %w", err)
	}
	defer rows.Close()

	return scanVoterOverviews(rows)
}

const voterOverviewQuery = `
	SELECT u.id, u.email, u.name, COALESCE(u.organization, ''), u.is_verified, u.created_at,
	       vp.voter_id, vp.full_name, vp.date_of_birth, vp.phone, vp.national_id, vp.created_at,
	       b.id IS NOT NULL AS has_voted
	FROM users u
	LEFT JOIN voter_profiles vp ON u.id = vp.voter_id
	LEFT JOIN ballots b ON u.id = b.voter_id AND u.organization = b.organization
`

func scanVoterOverviews(rows *sql.Rows) ([]domain.VoterOverview, error) {
	var voters []domain.VoterOverview
	for rows.Next() {
		var v domain.VoterOverview
		var profileID sql.NullString
		var fullName, dob, phone, nationalID sql.NullString
		var profileCreated sql.NullTime
		if err := rows.Scan(
			&v.ID, &v.Email, &v.Name, &v.Organization, &v.IsVerified, &v.CreatedAt,
			&profileID, &fullName, &dob, &phone, &nationalID, &profileCreated,
			&v.HasVoted,
		); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		v.Role = domain.RoleVoter
		if profileID.Valid {
			v.Profile = &domain.VoterProfile{
				VoterID:     v.ID,
				FullName:    fullName.String,
				DateOfBirth: dob.String,
				Phone:       phone.String,
				NationalID:  nationalID.String,
				CreatedAt:   profileCreated.Time,
			}
		}
		voters = append(voters, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voters: %w", err)
	}
	return voters, nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&user.Role, &user.Organization, &user.IsVerified, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
