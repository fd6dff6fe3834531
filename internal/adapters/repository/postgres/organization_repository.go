package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/orgvote/orgvote/internal/core/domain"
	"github.com/orgvote/orgvote/internal/core/ports"
)

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) ports.OrganizationRepository {
	return &organizationRepository{
		db: db,
	}
}

// CreateWithAdmin is the one multi-table write in the platform: admin
// user, admin details and organization land together or not at all.
func (r *organizationRepository) CreateWithAdmin(ctx context.Context, user *domain.User, details *domain.AdminDetails, org *domain.Organization) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, organization, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.Organization, user.IsVerified,
	).Scan(&user.CreatedAt)
	if err != nil {
		return translateRegistrationConflict(err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO admin_details (user_id, age, phone, national_id)
		VALUES ($1, $2, $3, $4)
	`, details.UserID, details.Age, details.Phone, details.NationalID)
	if err != nil {
		return translateRegistrationConflict(err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO organizations (id, name, admin_id, org_type, city, state, country)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''))
	`, org.ID, org.Name, org.AdminID, org.OrgType, org.City, org.State, org.Country)
	if err != nil {
		return translateRegistrationConflict(err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}
	return nil
}

func (r *organizationRepository) ListOverviews(ctx context.Context) ([]domain.OrganizationOverview, error) {
	query := `
		SELECT o.id, o.name, o.admin_id, o.org_type,
		       COALESCE(o.city, ''), COALESCE(o.state, ''), COALESCE(o.country, ''), o.created_at,
		       u.name, u.email,
		       (SELECT COUNT(*) FROM users WHERE organization = o.name AND role = 'voter'),
		       (SELECT COUNT(*) FROM candidates WHERE organization = o.name),
		       (SELECT COUNT(*) FROM ballots WHERE organization = o.name)
		FROM organizations o
		JOIN users u ON o.admin_id = u.id
		ORDER BY o.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var overviews []domain.OrganizationOverview
	for rows.Next() {
		var o domain.OrganizationOverview
		if err := rows.Scan(
			&o.ID, &o.Name, &o.AdminID, &o.OrgType,
			&o.City, &o.State, &o.Country, &o.CreatedAt,
			&o.AdminName, &o.AdminEmail,
			&o.VoterCount, &o.CandidateCount, &o.BallotCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		overviews = append(overviews, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organizations: %w", err)
	}
	return overviews, nil
}

func translateRegistrationConflict(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != uniqueViolation {
		return fmt.Errorf("failed to register admin: %w", err)
	}
	switch {
	case strings.Contains(pqErr.Constraint, "users_email"):
		return domain.ErrEmailTaken
	case strings.Contains(pqErr.Constraint, "national_id"):
		return domain.ErrNationalIDTaken
	case strings.Contains(pqErr.Constraint, "organizations_name"):
		return domain.ErrOrganizationTaken
	}
	return fmt.Errorf("failed to register admin: %w", err)
}
