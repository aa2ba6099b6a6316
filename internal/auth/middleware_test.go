package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CarlPerezV/babyjo-back/internal/domain"
)

func TestRequireAuth(t *testing.T) {
	m, err := NewTokenManager("some-secret")
	require.NoError(t, err)

	var seen *Identity
	next := func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}
	handler := RequireAuth(m, next)

	t.Run("valid token reaches the handler with identity", func(t *testing.T) {
		token, err := m.Sign(testUser())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, testUser().ID, seen.UserID)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"missing bearer token"}`, rec.Body.String())
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"invalid token"}`, rec.Body.String())
	})
}

func TestRequireRole(t *testing.T) {
	next := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	adminOnly := RequireRole(next, domain.RoleAdmin)

	t.Run("matching role passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/products", nil)
		req = req.WithContext(WithIdentity(req.Context(), &Identity{UserID: "u1", RoleID: domain.RoleAdmin}))
		rec := httptest.NewRecorder()
		adminOnly(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("other role is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/products", nil)
		req = req.WithContext(WithIdentity(req.Context(), &Identity{UserID: "u1", RoleID: domain.RoleUser}))
		rec := httptest.NewRecorder()
		adminOnly(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"error":"forbidden"}`, rec.Body.String())
	})

	t.Run("no identity on context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/products", nil)
		rec := httptest.NewRecorder()
		adminOnly(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
