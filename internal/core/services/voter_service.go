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

type voterService struct {
	userRepo    ports.UserRepository
	profileRepo ports.VoterProfileRepository
}

func NewVoterService(userRepo ports.UserRepository, profileRepo ports.VoterProfileRepository) ports.VoterService {
	return &voterService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func (s *voterService) SaveProfile(ctx context.Context, voterID uuid.UUID, input ports.SaveProfileInput) (*domain.VoterProfile, error) {
	if input.FullName == "" || input.DateOfBirth == "" || input.Phone == "" || input.NationalID == "" {
		return nil, errors.New("all profile fields are required")
	}

	profile := &domain.VoterProfile{
		VoterID:     voterID,
		FullName:    input.FullName,
		DateOfBirth: input.DateOfBirth,
		Phone:       input.Phone,
		NationalID:  input.NationalID,
		CreatedAt:   time.Now(),
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save voter profile: %w", err)
	}

	return profile, nil
}

func (s *voterService) ProfileStatus(ctx context.Context, voterID uuid.UUID) (*domain.VoterProfile, error) {
	return s.profileRepo.GetByVoterID(ctx, voterID)
}

func (s *voterService) ListVoters(ctx context.Context, organization string) ([]domain.VoterOverview, error) {
	if organization == "" {
		return s.userRepo.ListAllVoters(ctx)
	}
	return s.userRepo.ListVoters(ctx, organization)
}

func (s *voterService) SetVerified(ctx context.Context, voterID uuid.UUID, organization string, verified bool) error {
	return s.userRepo.SetVoterVerified(ctx, voterID, organization, verified)
}
