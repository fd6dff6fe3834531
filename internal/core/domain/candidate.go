package domain

import (
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Organization   string          `json:"organization"`
	Agenda         string          `json:"agenda,omitempty"`
	Goals          string          `json:"goals,omitempty"`
	ShortTermPlans string          `json:"short_term_plans,omitempty"`
	LongTermPlans  string          `json:"long_term_plans,omitempty"`
	ProfileImage   string          `json:"profile_image,omitempty"`
	IsVerified     bool            `json:"is_verified"`
	CreatedAt      time.Time       `json:"created_at"`
	VoteCount      int64           `json:"vote_count"`
	Files          []CandidateFile `json:"files"`
}

type CandidateFile struct {
	ID          uuid.UUID `json:"id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	FileName    string    `json:"file_name"`
	FilePath    string    `json:"file_path"`
	FileType    string    `json:"file_type,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
