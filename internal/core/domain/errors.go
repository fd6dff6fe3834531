package domain

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailTaken          = errors.New("email already registered")
	ErrNationalIDTaken     = errors.New("national id already registered")
	ErrOrganizationTaken   = errors.New("organization name already taken")
	ErrInvalidOrgType      = errors.New("invalid organization type")
	ErrVoterNotFound       = errors.New("voter not found")
	ErrVoterNotVerified    = errors.New("voter account is not verified")
	ErrDetailsMissing      = errors.New("voter details must be provided before voting")
	ErrAlreadyVoted        = errors.New("voter has already cast a ballot in this organization")
	ErrCandidateNotFound   = errors.New("candidate not found")
	ErrCandidateIneligible = errors.New("candidate is not verified or belongs to another organization")
	ErrFileTypeNotAllowed  = errors.New("file type not allowed")
)
