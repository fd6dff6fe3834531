package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgvote/orgvote/internal/core/domain"
)

// Identity is the verified claim attached to every authenticated request.
// Downstream components trust it unconditionally.
type Identity struct {
	UserID       uuid.UUID
	Email        string
	Role         domain.Role
	Organization string
}

type RegisterAdminInput struct {
	Name             string
	Age              int
	OrgType          domain.OrgType
	OrganizationName string
	City             string
	State            string
	Country          string
	Phone            string
	NationalID       string
	Email            string
	Password         string
}

type RegisterVoterInput struct {
	Email        string
	Password     string
	Name         string
	Organization string
}

type AuthService interface {
	// Login authenticates a user of the expected role. Voter logins
	// additionally require a matching organization and a verified account.
	Login(ctx context.Context, email, password string, role domain.Role, organization string) (string, *domain.User, error)
	// RegisterAdmin creates the admin account, its details row and the
	// organization in one transaction.
	RegisterAdmin(ctx context.Context, input RegisterAdminInput) (*domain.User, error)
	// RegisterVoter creates an unverified voter in the given organization.
	RegisterVoter(ctx context.Context, input RegisterVoterInput) (*domain.User, error)
	// VerifyToken parses and validates an access token into an Identity.
	VerifyToken(tokenString string) (*Identity, error)
	Me(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}
