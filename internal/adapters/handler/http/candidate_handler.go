package http

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/orgvote/orgvote/internal/core/ports"
)

// CandidateHandler serves the unauthenticated public results view.
type CandidateHandler struct {
	service ports.CandidateService
}

func NewCandidateHandler(service ports.CandidateService) *CandidateHandler {
	return &CandidateHandler{
		service: service,
	}
}

// PublicLeaderboard lists an organization's verified candidates ordered by
// vote count descending, names breaking ties.
func (h *CandidateHandler) PublicLeaderboard(w http.ResponseWriter, r *http.Request) {
	// Organization names may contain spaces; the route param arrives escaped.
	organization, err := url.PathUnescape(chi.URLParam(r, "organization"))
	if err != nil || organization == "" {
		writeError(w, http.StatusBadRequest, "missing organization")
		return
	}

	candidates, err := h.service.Leaderboard(r.Context(), organization)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, candidates)
}
