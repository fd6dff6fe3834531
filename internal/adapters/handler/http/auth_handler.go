package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/orgvote/orgvote/internal/core/domain"
	"github.com/orgvote/orgvote/internal/core/ports"
)

type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

type loginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Organization string `json:"organization"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (h *AuthHandler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, domain.RoleAdmin)
}

func (h *AuthHandler) LoginSuperAdmin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, domain.RoleSuperAdmin)
}

func (h *AuthHandler) LoginVoter(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, domain.RoleVoter)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, role domain.Role) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if role == domain.RoleVoter && req.Organization == "" {
		writeError(w, http.StatusBadRequest, "organization is required")
		return
	}

	token, user, err := h.service.Login(r.Context(), req.Email, req.Password, role, req.Organization)
	if err != nil {
		if errors.Is(err, domain.ErrVoterNotVerified) {
			writeError(w, http.StatusForbidden, "account not verified yet, wait for admin approval")
			return
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

type registerAdminRequest struct {
	Name             string `json:"name"`
	Age              int    `json:"age"`
	OrgType          string `json:"org_type"`
	OrganizationName string `json:"organization_name"`
	City             string `json:"city"`
	State            string `json:"state"`
	Country          string `json:"country"`
	Phone            string `json:"phone"`
	NationalID       string `json:"national_id"`
	Email            string `json:"email"`
	Password         string `json:"password"`
}

func (h *AuthHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req registerAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.RegisterAdmin(r.Context(), ports.RegisterAdminInput{
		Name:             req.Name,
		Age:              req.Age,
		OrgType:          domain.OrgType(req.OrgType),
		OrganizationName: req.OrganizationName,
		City:             req.City,
		State:            req.State,
		Country:          req.Country,
		Phone:            req.Phone,
		NationalID:       req.NationalID,
		Email:            req.Email,
		Password:         req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken),
			errors.Is(err, domain.ErrNationalIDTaken),
			errors.Is(err, domain.ErrOrganizationTaken):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, domain.ErrInvalidOrgType):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

type registerVoterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	Organization string `json:"organization"`
}

// RegisterVoter is admin-gated: admins may only add voters to their own
// organization.
func (h *AuthHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req registerVoterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if identity.Role != domain.RoleSuperAdmin && identity.Organization != req.Organization {
		writeError(w, http.StatusForbidden, "you can only register voters for your own organization")
		return
	}

	user, err := h.service.RegisterVoter(r.Context(), ports.RegisterVoterInput{
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		Organization: req.Organization,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	user, err := h.service.Me(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, user)
}
