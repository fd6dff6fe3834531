package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgvote/orgvote/internal/core/domain"
)

type BallotRepository interface {
	// Insert appends a ballot if and only if the referenced candidate is
	// verified and belongs to ballot.Organization. It returns
	// domain.ErrCandidateIneligible when that predicate fails and
	// domain.ErrAlreadyVoted when the (voter, organization) uniqueness
	// constraint rejects the row. The constraint is the authoritative
	// at-most-once guard; callers must not rely on a prior read.
	Insert(ctx context.Context, ballot *domain.Ballot) error
	GetByVoter(ctx context.Context, voterID uuid.UUID, organization string) (*domain.Ballot, error)
	ListRecords(ctx context.Context, organization string) ([]domain.BallotRecord, error)
	ListAllRecords(ctx context.Context) ([]domain.BallotRecord, error)
}

type CastInput struct {
	VoterID      uuid.UUID
	Organization string
	CandidateID  uuid.UUID
}

type VoteService interface {
	// Eligibility reports whether the voter may cast a ballot right now.
	// Pure read; re-run before every cast attempt.
	Eligibility(ctx context.Context, voterID uuid.UUID, organization string) error
	Cast(ctx context.Context, input CastInput) (*domain.Ballot, error)
	Status(ctx context.Context, voterID uuid.UUID, organization string) (*domain.VoteStatus, error)
}
