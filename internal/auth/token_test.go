package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CarlPerezV/babyjo-back/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:     "7b0d178e-1c5e-4ac6-9c44-93f5a76c84cd",
		Email:  "ana@example.com",
		RoleID: domain.RoleUser,
	}
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("")
	assert.Error(t, err)

	_, err = NewTokenManager("some-secret")
	assert.NoError(t, err)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	m, err := NewTokenManager("some-secret")
	require.NoError(t, err)

	token, err := m.Sign(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ident, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "7b0d178e-1c5e-4ac6-9c44-93f5a76c84cd", ident.UserID)
	assert.Equal(t, "ana@example.com", ident.Email)
	assert.Equal(t, domain.RoleUser, ident.RoleID)
}

func TestVerifyFailuresAreUniform(t *testing.T) {
	m, err := NewTokenManager("some-secret")
	require.NoError(t, err)

	other, err := NewTokenManager("a-different-secret")
	require.NoError(t, err)

	valid, err := m.Sign(testUser())
	require.NoError(t, err)

	expired := signExpired(t, "some-secret")

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"empty":        "",
		"wrong secret": mustSign(t, other),
		"tampered":     valid + "x",
		"expired":      expired,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func mustSign(t *testing.T, m *TokenManager) string {
	t.Helper()
	token, err := m.Sign(testUser())
	require.NoError(t, err)
	return token
}

func signExpired(t *testing.T, secret string) string {
	t.Helper()
	c := claims{
		ID:    testUser().ID,
		Email: testUser().Email,
		Role:  testUser().RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
