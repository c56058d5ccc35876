// Package auth is the authentication core: password hashing, signed
// tokens and the user lookups built on them.
package auth

import (
	"context"
	"time"

	"social/internal/domain"
)

type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, hashed string) (bool, error)
}

type TokenIssuer interface {
	Issue(subject string, typ domain.TokenType, ttl time.Duration) (string, error)
	ResolveSubjectForType(token string, expected domain.TokenType) (string, error)
}

// Authenticator is what the HTTP and websocket layers need from the core.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	CurrentUserFromAccessToken(ctx context.Context, token string) (*domain.User, error)
	IssueAccessToken(email string) (string, error)
	IssueConfirmationToken(email string) (string, error)
	RedeemConfirmationToken(token string) (string, error)
}
