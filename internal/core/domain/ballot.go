package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ballot is one voter's immutable choice within one organization.
// Rows are append-only; there is no update or delete path.
type Ballot struct {
	ID           uuid.UUID `json:"id"`
	VoterID      uuid.UUID `json:"voter_id"`
	CandidateID  uuid.UUID `json:"candidate_id"`
	Organization string    `json:"organization"`
	CastAt       time.Time `json:"cast_at"`
}

// VoteStatus answers "has this voter already voted here, and for whom".
// Candidate and CastAt are set only when HasVoted is true.
type VoteStatus struct {
	HasVoted  bool       `json:"has_voted"`
	Candidate *Candidate `json:"candidate,omitempty"`
	CastAt    *time.Time `json:"cast_at,omitempty"`
}

// BallotRecord is the oversight view of a ledger row, joined with the
// voter and candidate it references.
type BallotRecord struct {
	ID            uuid.UUID `json:"id"`
	Organization  string    `json:"organization"`
	VoterEmail    string    `json:"voter_email"`
	VoterName     string    `json:"voter_name"`
	CandidateName string    `json:"candidate_name"`
	CastAt        time.Time `json:"cast_at"`
}
