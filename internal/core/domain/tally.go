package domain

import "github.com/google/uuid"

// CandidateTally is one candidate's slice of an organization's ballots.
// Percentage is 0 when the organization has no ballots at all.
type CandidateTally struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	Name        string    `json:"name"`
	VoteCount   int64     `json:"vote_count"`
	Percentage  float64   `json:"percentage"`
}

// Tally is derived from the ballot ledger on demand; nothing here is
// ever read from a stored counter, so sum(PerCandidate.VoteCount) always
// equals TotalBallots.
type Tally struct {
	Organization    string           `json:"organization"`
	TotalVoters     int64            `json:"total_voters"`
	TotalCandidates int64            `json:"total_candidates"`
	TotalBallots    int64            `json:"total_ballots"`
	PerCandidate    []CandidateTally `json:"per_candidate"`
	Leader          *CandidateTally  `json:"leader,omitempty"`
}

// GlobalTally is the super-admin dashboard aggregate across all organizations.
type GlobalTally struct {
	TotalOrganizations int64 `json:"total_organizations"`
	TotalAdmins        int64 `json:"total_admins"`
	TotalVoters        int64 `json:"total_voters"`
	TotalCandidates    int64 `json:"total_candidates"`
	TotalBallots       int64 `json:"total_ballots"`
}
