package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrgType string

const (
	OrgTypeSchool   OrgType = "school"
	OrgTypeSociety  OrgType = "society"
	OrgTypeLocality OrgType = "locality"
	OrgTypeCity     OrgType = "city"
	OrgTypeState    OrgType = "state"
	OrgTypeCountry  OrgType = "country"
)

func (t OrgType) Valid() bool {
	switch t {
	case OrgTypeSchool, OrgTypeSociety, OrgTypeLocality, OrgTypeCity, OrgTypeState, OrgTypeCountry:
		return true
	}
	return false
}

type Organization struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AdminID   uuid.UUID `json:"admin_id"`
	OrgType   OrgType   `json:"org_type"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Country   string    `json:"country,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OrganizationOverview is the super-admin listing row with live counts.
type OrganizationOverview struct {
	Organization
	AdminName      string `json:"admin_name"`
	AdminEmail     string `json:"admin_email"`
	VoterCount     int64  `json:"voter_count"`
	CandidateCount int64  `json:"candidate_count"`
	BallotCount    int64  `json:"ballot_count"`
}
