package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/orgvote/orgvote/internal/core/domain"
	"github.com/orgvote/orgvote/internal/core/ports"
)

// 10 MiB cap on candidate material uploads.
const maxUploadBytes = 10 << 20

type AdminHandler struct {
	tallies    ports.TallyService
	voters     ports.VoterService
	candidates ports.CandidateService
	ballots    ports.BallotRepository
	blobs      ports.BlobStore
}

func NewAdminHandler(tallies ports.TallyService, voters ports.VoterService, candidates ports.CandidateService, ballots ports.BallotRepository, blobs ports.BlobStore) *AdminHandler {
	return &AdminHandler{
		tallies:    tallies,
		voters:     voters,
		candidates: candidates,
		ballots:    ballots,
		blobs:      blobs,
	}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	tally, err := h.tallies.Tally(r.Context(), identity.Organization)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, tally)
}

func (h *AdminHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	voters, err := h.voters.ListVoters(r.Context(), identity.Organization)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, voters)
}

func (h *AdminHandler) ListVotedVoters(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	records, err := h.ballots.ListRecords(r.Context(), identity.Organization)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (h *AdminHandler) VerifyVoter(w http.ResponseWriter, r *http.Request) {
	h.setVoterVerified(w, r, true)
}

func (h *AdminHandler) UnverifyVoter(w http.ResponseWriter, r *http.Request) {
	h.setVoterVerified(w, r, false)
}

func (h *AdminHandler) setVoterVerified(w http.ResponseWriter, r *http.Request, verified bool) {
	identity, _ := IdentityFrom(r.Context())

	voterID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid voter id")
		return
	}

	if err := h.voters.SetVerified(r.Context(), voterID, identity.Organization, verified); err != nil {
		if errors.Is(err, domain.ErrVoterNotFound) {
			writeError(w, http.StatusNotFound, "voter not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"is_verified": verified})
}

func (h *AdminHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	candidates, err := h.candidates.ListForAdmin(r.Context(), identity.Organization)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, candidates)
}

func (h *AdminHandler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	profileImage := ""
	if file, header, err := r.FormFile("profile_image"); err == nil {
		defer file.Close()
		path, err := h.blobs.Save(r.Context(), header.Filename, file)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		profileImage = path
	}

	candidate, err := h.candidates.Create(r.Context(), ports.CreateCandidateInput{
		Name:           r.FormValue("name"),
		Email:          r.FormValue("email"),
		Phone:          r.FormValue("phone"),
		Organization:   identity.Organization,
		Agenda:         r.FormValue("agenda"),
		Goals:          r.FormValue("goals"),
		ShortTermPlans: r.FormValue("short_term_plans"),
		LongTermPlans:  r.FormValue("long_term_plans"),
		ProfileImage:   profileImage,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, candidate)
}

func (h *AdminHandler) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	candidateID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid candidate id")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	profileImage := ""
	if file, header, err := r.FormFile("profile_image"); err == nil {
		defer file.Close()
		path, err := h.blobs.Save(r.Context(), header.Filename, file)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		profileImage = path
	}

	candidate, err := h.candidates.Update(r.Context(), candidateID, identity.Organization, ports.UpdateCandidateInput{
		Name:           r.FormValue("name"),
		Email:          r.FormValue("email"),
		Phone:          r.FormValue("phone"),
		Agenda:         r.FormValue("agenda"),
		Goals:          r.FormValue("goals"),
		ShortTermPlans: r.FormValue("short_term_plans"),
		LongTermPlans:  r.FormValue("long_term_plans"),
		ProfileImage:   profileImage,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCandidateNotFound) {
			writeError(w, http.StatusNotFound, "candidate not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, candidate)
}

func (h *AdminHandler) VerifyCandidate(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	candidateID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid candidate id")
		return
	}

	if err := h.candidates.Verify(r.Context(), candidateID, identity.Organization); err != nil {
		if errors.Is(err, domain.ErrCandidateNotFound) {
			writeError(w, http.StatusNotFound, "candidate not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"is_verified": true})
}

func (h *AdminHandler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	candidateID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid candidate id")
		return
	}

	if err := h.candidates.Delete(r.Context(), candidateID, identity.Organization); err != nil {
		if errors.Is(err, domain.ErrCandidateNotFound) {
			writeError(w, http.StatusNotFound, "candidate not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) UploadCandidateFile(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	candidateID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid candidate id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	path, err := h.blobs.Save(r.Context(), header.Filename, file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	record, err := h.candidates.AttachFile(r.Context(), candidateID, identity.Organization, ports.AttachFileInput{
		FileName: header.Filename,
		FilePath: path,
		FileType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		// The metadata row did not land; drop the orphaned blob.
		_ = h.blobs.Remove(r.Context(), path)
		switch {
		case errors.Is(err, domain.ErrFileTypeNotAllowed):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrCandidateNotFound):
			writeError(w, http.StatusNotFound, "candidate not found")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, record)
}
