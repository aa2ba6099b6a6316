package auth

import (
	"context"
	"database/sql"
	"strings"

	"github.com/CarlPerezV/babyjo-back/internal/domain"
)

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, first_name, last_name, email, password_hash, role_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.RoleID, user.CreatedAt)
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `
		SELECT id, first_name, last_name, email, password_hash, role_id, created_at
		FROM users
		WHERE email = $1
	`, NormalizeEmail(email))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, `
		SELECT id, first_name, last_name, email, password_hash, role_id, created_at
		FROM users
		WHERE id = $1
	`, id)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.RoleID, &user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
