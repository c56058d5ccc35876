package auth

import (
	"context"
	"errors"
	"time"

	"social/internal/domain"
	"social/internal/logger"
)

type Service struct {
	users  domain.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	log    logger.Logger

	accessTTL       time.Duration
	confirmationTTL time.Duration
}

type Option func(*Service)

func WithTTLs(access, confirmation time.Duration) Option {
	return func(s *Service) {
		if access != 0 {
			s.accessTTL = access
		}
		if confirmation != 0 {
			s.confirmationTTL = confirmation
		}
	}
}

func NewService(users domain.UserRepository, hasher PasswordHasher, tokens TokenIssuer, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		users:           users,
		hasher:          hasher,
		tokens:          tokens,
		log:             log,
		accessTTL:       DefaultAccessTokenTTL,
		confirmationTTL: DefaultConfirmationTokenTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticate never tells the caller which half of the credentials was wrong.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	s.log.Debug("authenticating user", "email", logger.MaskEmail(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(ctx, password, user.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrAccountNotConfirmed
	}

	return user, nil
}

func (s *Service) CurrentUserFromAccessToken(ctx context.Context, token string) (*domain.User, error) {
	email, err := s.tokens.ResolveSubjectForType(token, domain.TokenAccess)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnknownUser
		}
		return nil, err
	}

	return user, nil
}

func (s *Service) IssueAccessToken(email string) (string, error) {
	s.log.Debug("creating access token", "email", logger.MaskEmail(email))
	return s.tokens.Issue(email, domain.TokenAccess, s.accessTTL)
}

func (s *Service) IssueConfirmationToken(email string) (string, error) {
	s.log.Debug("creating confirmation token", "email", logger.MaskEmail(email))
	return s.tokens.Issue(email, domain.TokenConfirmation, s.confirmationTTL)
}

// RedeemConfirmationToken only validates; flipping the activation flag is
// the caller's job.
func (s *Service) RedeemConfirmationToken(token string) (string, error) {
	return s.tokens.ResolveSubjectForType(token, domain.TokenConfirmation)
}
