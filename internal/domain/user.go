// Package domain
package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("a user with that email already registered")
)

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRepository is the user directory. Email uniqueness is enforced by the
// implementation, which reports ErrEmailAlreadyExists on conflict.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID int64) (*User, error)
	Insert(ctx context.Context, email, passwordHash string) (*User, error)
	SetActivated(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}
