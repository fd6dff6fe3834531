package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgvote/orgvote/internal/core/domain"
)

// CandidateOrder selects the ordering of candidate listings.
type CandidateOrder int

const (
	// OrderByName is the voter-facing ballot ordering.
	OrderByName CandidateOrder = iota
	// OrderByVotes is the leaderboard ordering: vote count descending,
	// name ascending on ties so rank display stays deterministic.
	OrderByVotes
	// OrderByCreated is the admin listing ordering, newest first.
	OrderByCreated
)

type CandidateRepository interface {
	Create(ctx context.Context, candidate *domain.Candidate) error
	Update(ctx context.Context, candidate *domain.Candidate) error
	Delete(ctx context.Context, id uuid.UUID, organization string) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error)
	// ListVotable returns verified candidates of the organization with live
	// vote counts, in the requested order.
	ListVotable(ctx context.Context, organization string, order CandidateOrder) ([]domain.Candidate, error)
	// ListByOrganization includes unverified candidates (admin view).
	ListByOrganization(ctx context.Context, organization string) ([]domain.Candidate, error)
	ListAll(ctx context.Context) ([]domain.Candidate, error)
	SetVerified(ctx context.Context, id uuid.UUID, organization string, verified bool) error
	AddFile(ctx context.Context, file *domain.CandidateFile) error
	// FilesForCandidates fetches attachments for a batch of candidates in
	// one query, keyed by candidate id.
	FilesForCandidates(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.CandidateFile, error)
}

type CreateCandidateInput struct {
	Name           string
	Email          string
	Phone          string
	Organization   string
	Agenda         string
	Goals          string
	ShortTermPlans string
	LongTermPlans  string
	ProfileImage   string
}

type UpdateCandidateInput struct {
	Name           string
	Email          string
	Phone          string
	Agenda         string
	Goals          string
	ShortTermPlans string
	LongTermPlans  string
	ProfileImage   string
}

type AttachFileInput struct {
	FileName string
	FilePath string
	FileType string
}

type CandidateService interface {
	Create(ctx context.Context, input CreateCandidateInput) (*domain.Candidate, error)
	Update(ctx context.Context, id uuid.UUID, organization string, input UpdateCandidateInput) (*domain.Candidate, error)
	Delete(ctx context.Context, id uuid.UUID, organization string) error
	Verify(ctx context.Context, id uuid.UUID, organization string) error
	ListVotable(ctx context.Context, organization string) ([]domain.Candidate, error)
	Leaderboard(ctx context.Context, organization string) ([]domain.Candidate, error)
	ListForAdmin(ctx context.Context, organization string) ([]domain.Candidate, error)
	ListAll(ctx context.Context) ([]domain.Candidate, error)
	AttachFile(ctx context.Context, candidateID uuid.UUID, organization string, input AttachFileInput) (*domain.CandidateFile, error)
}
