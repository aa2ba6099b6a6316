package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/CarlPerezV/babyjo-back/internal/domain"
)

const tokenTTL = time.Hour

// ErrInvalidToken covers every verification failure: missing, malformed,
// expired or wrongly signed tokens are indistinguishable to the caller.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated principal extracted from a verified token.
type Identity struct {
	UserID string
	Email  string
	RoleID int
}

type claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  int    `json:"role"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret []byte
}

// NewTokenManager rejects an empty secret; running auth routes without a
// signing key is a startup error, not something to discover per request.
func NewTokenManager(secret string) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is required")
	}
	return &TokenManager{secret: []byte(secret)}, nil
}

func (m *TokenManager) Sign(user *domain.User) (string, error) {
	now := time.Now()
	c := claims{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

func (m *TokenManager) Verify(token string) (*Identity, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return &Identity{UserID: c.ID, Email: c.Email, RoleID: c.Role}, nil
}
