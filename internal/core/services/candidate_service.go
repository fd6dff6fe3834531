package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orgvote/orgvote/internal/core/domain"
	"github.com/orgvote/orgvote/internal/core/ports"
)

// allowedFileExts mirrors the upload policy for candidate materials.
var allowedFileExts = map[string]bool{
	".pdf":  true,
	".ppt":  true,
	".pptx": true,
	".doc":  true,
	".docx": true,
}

type candidateService struct {
	repo ports.CandidateRepository
}

func NewCandidateService(repo ports.CandidateRepository) ports.CandidateService {
	return &candidateService{
		repo: repo,
	}
}

func (s *candidateService) Create(ctx context.Context, input ports.CreateCandidateInput) (*domain.Candidate, error) {
	if input.Name == "" || input.Organization == "" {
		return nil, errors.New("name and organization are required")
	}

	candidate := &domain.Candidate{
		ID:             uuid.New(),
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Organization:   input.Organization,
		Agenda:         input.Agenda,
		Goals:          input.Goals,
		ShortTermPlans: input.ShortTermPlans,
		LongTermPlans:  input.LongTermPlans,
		ProfileImage:   input.ProfileImage,
		IsVerified:     false,
		CreatedAt:      time.Now(),
	}

	if err := s.repo.Create(ctx, candidate); err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}

	return candidate, nil
}

func (s *candidateService) Update(ctx context.Context, id uuid.UUID, organization string, input ports.UpdateCandidateInput) (*domain.Candidate, error) {
	if input.Name == "" {
		return nil, errors.New("name is required")
	}

	candidate, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if candidate.Organization != organization {
		return nil, domain.ErrCandidateNotFound
	}

	candidate.Name = input.Name
	candidate.Email = input.Email
	candidate.Phone = input.Phone
	candidate.Agenda = input.Agenda
	candidate.Goals = input.Goals
	candidate.ShortTermPlans = input.ShortTermPlans
	candidate.LongTermPlans = input.LongTermPlans
	if input.ProfileImage != "" {
		candidate.ProfileImage = input.ProfileImage
	}

	if err := s.repo.Update(ctx, candidate); err != nil {
		return nil, fmt.Errorf("failed to update candidate: %w", err)
	}

	return candidate, nil
}

func (s *candidateService) Delete(ctx context.Context, id uuid.UUID, organization string) error {
	return s.repo.Delete(ctx, id, organization)
}

func (s *candidateService) Verify(ctx context.Context, id uuid.UUID, organization string) error {
	return s.repo.SetVerified(ctx, id, organization, true)
}

func (s *candidateService) ListVotable(ctx context.Context, organization string) ([]domain.Candidate, error) {
	candidates, err := s.repo.ListVotable(ctx, organization, ports.OrderByName)
	if err != nil {
		return nil, err
	}
	return s.attachFiles(ctx, candidates)
}

func (s *candidateService) Leaderboard(ctx context.Context, organization string) ([]domain.Candidate, error) {
	candidates, err := s.repo.ListVotable(ctx, organization, ports.OrderByVotes)
	if err != nil {
		return nil, err
	}
	return s.attachFiles(ctx, candidates)
}

func (s *candidateService) ListForAdmin(ctx context.Context, organization string) ([]domain.Candidate, error) {
	candidates, err := s.repo.ListByOrganization(ctx, organization)
	if err != nil {
		return nil, err
	}
	return s.attachFiles(ctx, candidates)
}

func (s *candidateService) ListAll(ctx context.Context) ([]domain.Candidate, error) {
	candidates, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachFiles(ctx, candidates)
}

func (s *candidateService) AttachFile(ctx context.Context, candidateID uuid.UUID, organization string, input ports.AttachFileInput) (*domain.CandidateFile, error) {
	if !allowedFileExts[strings.ToLower(filepath.Ext(input.FileName))] {
		return nil, domain.ErrFileTypeNotAllowed
	}

	candidate, err := s.repo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if candidate.Organization != organization {
		return nil, domain.ErrCandidateNotFound
	}

	file := &domain.CandidateFile{
		ID:          uuid.New(),
		CandidateID: candidateID,
		FileName:    input.FileName,
		FilePath:    input.FilePath,
		FileType:    input.FileType,
		UploadedAt:  time.Now(),
	}

	if err := s.repo.AddFile(ctx, file); err != nil {
		return nil, fmt.Errorf("failed to attach file: %w", err)
	}

	return file, nil
}

// attachFiles resolves attachments for a whole listing with one batched
// query instead of a fetch per candidate.
func (s *candidateService) attachFiles(ctx context.Context, candidates []domain.Candidate) ([]domain.Candidate, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}

	ids := make([]uuid.UUID, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}

	filesByCandidate, err := s.repo.FilesForCandidates(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate files: %w", err)
	}

	for i := range candidates {
		files := filesByCandidate[candidates[i].ID]
		if files == nil {
			files = []domain.CandidateFile{}
		}
		candidates[i].Files = files
	}

	return candidates, nil
}
