package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/orgvote/orgvote/internal/core/domain"
	"github.com/orgvote/orgvote/internal/core/ports"
)

type contextKey string

// IdentityKey holds the authenticated ports.Identity in the request context.
const IdentityKey contextKey = "identity"

// Authenticate resolves the access token (Authorization bearer header or
// access_token cookie) into an Identity and stores it in the context.
func Authenticate(auth ports.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				if cookie, err := r.Cookie("access_token"); err == nil {
					token = cookie.Value
				}
			}
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing access token")
				return
			}

			identity, err := auth.VerifyToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, *identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a subtree to the given roles. Must run after Authenticate.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "missing identity")
				return
			}
			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "insufficient role")
		})
	}
}

func IdentityFrom(ctx context.Context) (ports.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(ports.Identity)
	return identity, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
