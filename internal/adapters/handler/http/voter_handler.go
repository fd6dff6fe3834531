package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/orgvote/orgvote/internal/core/domain"
	"github.com/orgvote/orgvote/internal/core/ports"
)

// VoterHandler serves the voter-facing surface: the ballot (votable
// candidates), the profile attestation and the vote itself.
type VoterHandler struct {
	votes      ports.VoteService
	voters     ports.VoterService
	candidates ports.CandidateService
}

func NewVoterHandler(votes ports.VoteService, voters ports.VoterService, candidates ports.CandidateService) *VoterHandler {
	return &VoterHandler{
		votes:      votes,
		voters:     voters,
		candidates: candidates,
	}
}

func (h *VoterHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	candidates, err := h.candidates.ListVotable(r.Context(), identity.Organization)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, candidates)
}

type profileRequest struct {
	FullName    string `json:"full_name"`
	DateOfBirth string `json:"date_of_birth"`
	Phone       string `json:"phone"`
	NationalID  string `json:"national_id"`
}

func (h *VoterHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.voters.SaveProfile(r.Context(), identity.UserID, ports.SaveProfileInput{
		FullName:    req.FullName,
		DateOfBirth: req.DateOfBirth,
		Phone:       req.Phone,
		NationalID:  req.NationalID,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *VoterHandler) ProfileStatus(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	profile, err := h.voters.ProfileStatus(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"has_profile": profile != nil,
		"profile":     profile,
	})
}

func (h *VoterHandler) VoteStatus(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	status, err := h.votes.Status(r.Context(), identity.UserID, identity.Organization)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, status)
}

type castRequest struct {
	CandidateID uuid.UUID `json:"candidate_id"`
}

func (h *VoterHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	var req castRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CandidateID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	ballot, err := h.votes.Cast(r.Context(), ports.CastInput{
		VoterID:      identity.UserID,
		Organization: identity.Organization,
		CandidateID:  req.CandidateID,
	})
	if err != nil {
		// Business-rule failures are terminal for the client; only a
		// storage failure is worth a retry.
		switch {
		case errors.Is(err, domain.ErrVoterNotVerified):
			writeError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, domain.ErrDetailsMissing):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrAlreadyVoted):
			h.writeAlreadyVoted(w, r, err)
		case errors.Is(err, domain.ErrCandidateIneligible):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, domain.ErrVoterNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"ballot_id": ballot.ID,
		"cast_at":   ballot.CastAt,
	})
}

// writeAlreadyVoted surfaces the ballot that blocked the cast so the
// client can show who was voted for and when.
func (h *VoterHandler) writeAlreadyVoted(w http.ResponseWriter, r *http.Request, castErr error) {
	identity, _ := IdentityFrom(r.Context())

	status, err := h.votes.Status(r.Context(), identity.UserID, identity.Organization)
	if err != nil || status == nil || !status.HasVoted {
		writeError(w, http.StatusConflict, castErr.Error())
		return
	}

	writeJSON(w, http.StatusConflict, map[string]any{
		"error":     castErr.Error(),
		"candidate": status.Candidate,
		"cast_at":   status.CastAt,
	})
}
