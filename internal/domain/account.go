package domain

import (
	"context"
	"errors"
)

var ErrInvalidCurrentPassword = errors.New("invalid current password")

type AccountPasswordRequest struct {
	CurrentPassword      string `json:"current_password" validate:"required,min=8"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,min=8,eqfield=Password"`
}

type Registration struct {
	User            *User  `json:"user"`
	ConfirmationURL string `json:"-"`
}

type AccountService interface {
	Register(ctx context.Context, req RegisterRequest) (*Registration, error)
	Confirm(ctx context.Context, token string) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	ChangePassword(ctx context.Context, user *User, req AccountPasswordRequest) error
}

// EventUserRegistered is published once the user row exists and the
// confirmation link has been minted.
type EventUserRegistered struct {
	UserID          int64
	Email           string
	ConfirmationURL string
}

type EventUserConfirmed struct {
	UserID int64
	Email  string
}
