package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgvote/orgvote/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// SetVoterVerified flips a voter's verification flag; organization scopes
	// the update so an admin can only touch their own voters.
	SetVoterVerified(ctx context.Context, voterID uuid.UUID, organization string, verified bool) error
	ListVoters(ctx context.Context, organization string) ([]domain.VoterOverview, error)
	ListAllVoters(ctx context.Context) ([]domain.VoterOverview, error)
}

type VoterProfileRepository interface {
	// Upsert keeps at most one profile row per voter, last write wins.
	Upsert(ctx context.Context, profile *domain.VoterProfile) error
	GetByVoterID(ctx context.Context, voterID uuid.UUID) (*domain.VoterProfile, error)
}

type SaveProfileInput struct {
	FullName    string
	DateOfBirth string
	Phone       string
	NationalID  string
}

type VoterService interface {
	SaveProfile(ctx context.Context, voterID uuid.UUID, input SaveProfileInput) (*domain.VoterProfile, error)
	ProfileStatus(ctx context.Context, voterID uuid.UUID) (*domain.VoterProfile, error)
	ListVoters(ctx context.Context, organization string) ([]domain.VoterOverview, error)
	SetVerified(ctx context.Context, voterID uuid.UUID, organization string, verified bool) error
}
