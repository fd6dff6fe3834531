package http

import (
	"net/http"

	"github.com/orgvote/orgvote/internal/core/ports"
)

type SuperAdminHandler struct {
	tallies    ports.TallyService
	voters     ports.VoterService
	candidates ports.CandidateService
	ballots    ports.BallotRepository
	orgs       ports.OrganizationRepository
}

func NewSuperAdminHandler(tallies ports.TallyService, voters ports.VoterService, candidates ports.CandidateService, ballots ports.BallotRepository, orgs ports.OrganizationRepository) *SuperAdminHandler {
	return &SuperAdminHandler{
		tallies:    tallies,
		voters:     voters,
		candidates: candidates,
		ballots:    ballots,
		orgs:       orgs,
	}
}

func (h *SuperAdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	totals, err := h.tallies.GlobalTally(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (h *SuperAdminHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.orgs.ListOverviews(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

func (h *SuperAdminHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.candidates.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

func (h *SuperAdminHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	voters, err := h.voters.ListVoters(r.Context(), "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, voters)
}

func (h *SuperAdminHandler) ListBallots(w http.ResponseWriter, r *http.Request) {
	records, err := h.ballots.ListAllRecords(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}
