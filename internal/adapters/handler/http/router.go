package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/orgvote/orgvote/internal/core/domain"
	"github.com/orgvote/orgvote/internal/core/ports"
)

type Handlers struct {
	Auth       *AuthHandler
	Voter      *VoterHandler
	Admin      *AdminHandler
	SuperAdmin *SuperAdminHandler
	Candidate  *CandidateHandler
}

// NewHandler wires the route tree. uploadsDir, when non-empty, is served
// statically under /uploads for candidate materials.
func NewHandler(h Handlers, auth ports.AuthService, uploadsDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/admin/login", h.Auth.LoginAdmin)
			r.Post("/admin/register", h.Auth.RegisterAdmin)
			r.Post("/super-admin/login", h.Auth.LoginSuperAdmin)
			r.Post("/voter/login", h.Auth.LoginVoter)

			r.Group(func(r chi.Router) {
				r.Use(Authenticate(auth))
				r.Get("/me", h.Auth.Me)

				r.Group(func(r chi.Router) {
					r.Use(RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin))
					r.Post("/voter/register", h.Auth.RegisterVoter)
				})
			})
		})

		r.Route("/voter", func(r chi.Router) {
			r.Use(Authenticate(auth))
			r.Use(RequireRole(domain.RoleVoter))

			r.Get("/candidates", h.Voter.ListCandidates)
			r.Post("/profile", h.Voter.SaveProfile)
			r.Get("/profile-status", h.Voter.ProfileStatus)
			r.Get("/vote-status", h.Voter.VoteStatus)
			r.Post("/vote", h.Voter.CastVote)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(Authenticate(auth))
			r.Use(RequireRole(domain.RoleAdmin))

			r.Get("/dashboard", h.Admin.Dashboard)
			r.Get("/voters", h.Admin.ListVoters)
			r.Get("/voters/voted", h.Admin.ListVotedVoters)
			r.Put("/voters/{id}/verify", h.Admin.VerifyVoter)
			r.Put("/voters/{id}/unverify", h.Admin.UnverifyVoter)
			r.Get("/candidates", h.Admin.ListCandidates)
			r.Post("/candidates", h.Admin.CreateCandidate)
			r.Put("/candidates/{id}", h.Admin.UpdateCandidate)
			r.Put("/candidates/{id}/verify", h.Admin.VerifyCandidate)
			r.Delete("/candidates/{id}", h.Admin.DeleteCandidate)
			r.Post("/candidates/{id}/files", h.Admin.UploadCandidateFile)
		})

		r.Route("/superadmin", func(r chi.Router) {
			r.Use(Authenticate(auth))
			r.Use(RequireRole(domain.RoleSuperAdmin))

			r.Get("/dashboard", h.SuperAdmin.Dashboard)
			r.Get("/organizations", h.SuperAdmin.ListOrganizations)
			r.Get("/candidates", h.SuperAdmin.ListCandidates)
			r.Get("/voters", h.SuperAdmin.ListVoters)
			r.Get("/votes", h.SuperAdmin.ListBallots)
		})

		r.Get("/candidates/public/{organization}", h.Candidate.PublicLeaderboard)
	})

	if uploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	return r
}
