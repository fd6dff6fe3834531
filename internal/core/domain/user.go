package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleVoter      Role = "voter"
)

// User covers every account the platform knows about: super admins,
// organization admins and voters. Organization is empty for super admins.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Organization string    `json:"organization,omitempty"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
}

// VoterProfile is the personal attestation a voter must file before
// casting a ballot. At most one row per voter; resubmission replaces it.
type VoterProfile struct {
	VoterID     uuid.UUID `json:"voter_id"`
	FullName    string    `json:"full_name"`
	DateOfBirth string    `json:"date_of_birth"`
	Phone       string    `json:"phone"`
	NationalID  string    `json:"national_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// VoterOverview is the admin-facing listing row: the account joined with
// its profile (if filed) and whether a ballot has been cast.
type VoterOverview struct {
	User
	Profile  *VoterProfile `json:"profile,omitempty"`
	HasVoted bool          `json:"has_voted"`
}

// AdminDetails holds the extra attestation collected at admin registration.
type AdminDetails struct {
	UserID     uuid.UUID `json:"user_id"`
	Age        int       `json:"age"`
	Phone      string    `json:"phone"`
	NationalID string    `json:"national_id"`
	CreatedAt  time.Time `json:"created_at"`
}
