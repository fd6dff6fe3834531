package ports

import (
	"context"

	"github.com/orgvote/orgvote/internal/core/domain"
)

type OrganizationRepository interface {
	// CreateWithAdmin inserts the admin user, its details row and the
	// organization atomically. Conflicts surface as domain.ErrEmailTaken,
	// domain.ErrNationalIDTaken or domain.ErrOrganizationTaken.
	CreateWithAdmin(ctx context.Context, user *domain.User, details *domain.AdminDetails, org *domain.Organization) error
	ListOverviews(ctx context.Context) ([]domain.OrganizationOverview, error)
}
