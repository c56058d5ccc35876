// Package account
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"social/internal/core/auth"
	"social/internal/domain"
	"social/internal/event"
	"social/internal/logger"
)

type Service struct {
	users   domain.UserRepository
	auth    auth.Authenticator
	hasher  auth.PasswordHasher
	bus     *event.Bus
	log     logger.Logger
	baseURL string
}

func NewService(
	users domain.UserRepository,
	authenticator auth.Authenticator,
	hasher auth.PasswordHasher,
	bus *event.Bus,
	log logger.Logger,
	publicBaseURL string,
) domain.AccountService {
	return &Service{
		users:   users,
		auth:    authenticator,
		hasher:  hasher,
		bus:     bus,
		log:     log,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Registration, error) {
	_, err := s.users.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Insert(ctx, req.Email, hashed)
	if err != nil {
		return nil, err
	}

	token, err := s.auth.IssueConfirmationToken(user.Email)
	if err != nil {
		return nil, err
	}
	confirmationURL := s.baseURL + "/confirm/" + token

	s.log.Info("user registered", "user_id", user.ID, "email", logger.MaskEmail(user.Email))

	if s.bus != nil {
		s.bus.Publish(domain.TopicUserRegistered, domain.EventUserRegistered{
			UserID:          user.ID,
			Email:           user.Email,
			ConfirmationURL: confirmationURL,
		})
	}

	return &domain.Registration{User: user, ConfirmationURL: confirmationURL}, nil
}

// Confirm activates the account named by a confirmation token. Confirming an
// already active account succeeds again.
func (s *Service) Confirm(ctx context.Context, token string) (*domain.User, error) {
	email, err := s.auth.RedeemConfirmationToken(token)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetActivated(ctx, email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnknownUser
		}
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(domain.TopicUserConfirmed, domain.EventUserConfirmed{
			UserID: user.ID,
			Email:  user.Email,
		})
	}

	return user, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.TokenResponse, error) {
	user, err := s.auth.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.auth.IssueAccessToken(user.Email)
	if err != nil {
		return nil, err
	}

	return &domain.TokenResponse{
		AccessToken: token,
		TokenType:   domain.TokenTypeBearer,
	}, nil
}

func (s *Service) ChangePassword(ctx context.Context, current *domain.User, req domain.AccountPasswordRequest) error {
	user, err := s.users.GetByID(ctx, current.ID)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(ctx, req.CurrentPassword, user.Password)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidCurrentPassword
	}

	hashed, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, user.ID, hashed)
}
