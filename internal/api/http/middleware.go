package http

import (
	"context"
	"net/http"
	"strings"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/logger"
)

type contextKey string

const profileKey contextKey = "profile"

// TokenVerifier checks a bearer ID token and returns the provider uid.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (string, error)
}

// profileFrom returns the resolved profile of the authenticated caller.
func profileFrom(ctx context.Context) *domain.Profile {
	p, _ := ctx.Value(profileKey).(*domain.Profile)
	return p
}

// authenticate verifies the bearer token and resolves it to a portal
// profile. A valid token without an active profile record is rejected:
// authentication alone is not a valid session.
func (a *API) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		uid, err := a.verifier.Verify(r.Context(), token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}

		profile, err := a.identity.Resolve(r.Context(), uid)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), profileKey, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole gates a subtree to one role. Mismatches get a bare 403, the
// API equivalent of the silent redirect the portal shows.
func requireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := profileFrom(r.Context())
			if p == nil || p.Role != role {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("Request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return h[7:]
	}
	return ""
}
