package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/campusnotes/campusnotes-api/internal/access"
	"github.com/campusnotes/campusnotes-api/internal/common"
	"github.com/campusnotes/campusnotes-api/internal/crypto"
)

// TokenVerifier checks bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*crypto.Claims, error)
}

// Authenticate attaches the caller named by a valid Bearer token. A request
// without one, or with an invalid one, continues as anonymous; Authorize
// decides whether that is enough.
func Authenticate(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				slog.Debug("ignoring invalid bearer token", "path", r.URL.Path, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := access.WithCaller(r.Context(), &access.Caller{
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authorize rejects the request before the handler runs unless policy allows
// op on res. The {id} route parameter is the target of ownership rules.
func Authorize(policy *access.Policy, res access.Resource, op access.Op) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := access.CallerFrom(r.Context())
			if err := policy.Authorize(caller, res, op, chi.URLParam(r, "id")); err != nil {
				writeJSONError(w, common.HTTPStatusFromError(err), denialMessage(err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func denialMessage(err error) string {
	if errors.Is(err, common.ErrUnauthenticated) {
		return "Authentication required"
	}
	return "Access denied"
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
