package domain

import "time"

const (
	RoleAdmin = 1
	RoleUser  = 2
)

type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RoleID       int       `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
