package domain

import (
	"errors"
	"fmt"
)

type TokenType string

const (
	TokenAccess       TokenType = "access"
	TokenConfirmation TokenType = "confirmation"
)

const TokenTypeBearer = "bearer"

var (
	ErrInvalidToken        = errors.New("Invalid token")
	ErrTokenExpired        = errors.New("Token has expired")
	ErrInvalidTokenType    = errors.New("Token has incorrect type")
	ErrMissingSubject      = errors.New("Token is missing 'sub' field")
	ErrInvalidCredentials  = errors.New("Incorrect email or password")
	ErrAccountNotConfirmed = errors.New("User has not confirmed email")
	ErrUnknownUser         = errors.New("Could not find user for this token")
)

// TokenTypeError reports a token whose type claim is missing or differs from
// the one the caller expected. It matches ErrInvalidTokenType.
type TokenTypeError struct {
	Expected TokenType
}

func (e *TokenTypeError) Error() string {
	return fmt.Sprintf("Token has incorrect type, expected '%s'", e.Expected)
}

func (e *TokenTypeError) Is(target error) bool {
	return target == ErrInvalidTokenType
}

var unauthorizedErrors = []error{
	ErrInvalidToken,
	ErrTokenExpired,
	ErrInvalidTokenType,
	ErrMissingSubject,
	ErrInvalidCredentials,
	ErrAccountNotConfirmed,
	ErrUnknownUser,
}

// IsUnauthorized reports whether err is one of the authentication rejections.
func IsUnauthorized(err error) bool {
	for _, target := range unauthorizedErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
