package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"
)

type identityKey struct{}

func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(*Identity)
	return ident, ok
}

// RequireAuth verifies the bearer token and puts the caller's identity on
// the request context. Any verification failure is a uniform 401.
func RequireAuth(tokens *TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		ident, err := tokens.Verify(token)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next(w, r.WithContext(WithIdentity(r.Context(), ident)))
	}
}

// RequireRole gates a route on the caller's role. Compose it inside
// RequireAuth so the identity is already on the context.
func RequireRole(next http.HandlerFunc, roles ...int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := IdentityFromContext(r.Context())
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		if !slices.Contains(roles, ident.RoleID) {
			writeAuthError(w, http.StatusForbidden, "forbidden")
			return
		}

		next(w, r)
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
