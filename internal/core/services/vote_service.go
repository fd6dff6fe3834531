package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orgvote/orgvote/internal/core/domain"
	"github.com/orgvote/orgvote/internal/core/ports"
)

type voteService struct {
	userRepo      ports.UserRepository
	profileRepo   ports.VoterProfileRepository
	ballotRepo    ports.BallotRepository
	candidateRepo ports.CandidateRepository
}

func NewVoteService(userRepo ports.UserRepository, profileRepo ports.VoterProfileRepository, ballotRepo ports.BallotRepository, candidateRepo ports.CandidateRepository) ports.VoteService {
	return &voteService{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		ballotRepo:    ballotRepo,
		candidateRepo: candidateRepo,
	}
}

// Eligibility runs the gate checks in a fixed order, short-circuiting on
// the first failure: account verification, then profile existence, then
// an existing ballot. It is advisory only; Cast relies on the ledger's
// uniqueness constraint, not on this read.
func (s *voteService) Eligibility(ctx context.Context, voterID uuid.UUID, organization string) error {
	voter, err := s.userRepo.GetByID(ctx, voterID)
	if err != nil {
		return err
	}
	if voter == nil {
		return domain.ErrVoterNotFound
	}
	if !voter.IsVerified {
		return domain.ErrVoterNotVerified
	}

	profile, err := s.profileRepo.GetByVoterID(ctx, voterID)
	if err != nil {
		return err
	}
	if profile == nil {
		return domain.ErrDetailsMissing
	}

	existing, err := s.ballotRepo.GetByVoter(ctx, voterID, organization)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrAlreadyVoted
	}

	return nil
}

func (s *voteService) Cast(ctx context.Context, input ports.CastInput) (*domain.Ballot, error) {
	// Fast-path rejection for a better error message; the insert below
	// re-verifies everything that matters atomically.
	if err := s.Eligibility(ctx, input.VoterID, input.Organization); err != nil {
		return nil, err
	}

	ballot := &domain.Ballot{
		ID:           uuid.New(),
		VoterID:      input.VoterID,
		CandidateID:  input.CandidateID,
		Organization: input.Organization,
		CastAt:       time.Now(),
	}

	if err := s.ballotRepo.Insert(ctx, ballot); err != nil {
		if errors.Is(err, domain.ErrAlreadyVoted) || errors.Is(err, domain.ErrCandidateIneligible) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to cast ballot: %w", err)
	}

	return ballot, nil
}

func (s *voteService) Status(ctx context.Context, voterID uuid.UUID, organization string) (*domain.VoteStatus, error) {
	ballot, err := s.ballotRepo.GetByVoter(ctx, voterID, organization)
	if err != nil {
		return nil, err
	}
	if ballot == nil {
		return &domain.VoteStatus{HasVoted: false}, nil
	}

	candidate, err := s.candidateRepo.GetByID(ctx, ballot.CandidateID)
	if err != nil && !errors.Is(err, domain.ErrCandidateNotFound) {
		return nil, err
	}

	// The ballot stays valid even if its candidate was deleted later;
	// the status just omits the candidate details in that case.
	return &domain.VoteStatus{
		HasVoted:  true,
		Candidate: candidate,
		CastAt:    &ballot.CastAt,
	}, nil
}
