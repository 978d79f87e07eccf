// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/listling/listling/internal/mailer"
	"github.com/listling/listling/internal/metrics"
	"github.com/listling/listling/internal/model"
	"github.com/listling/listling/internal/repository"
)

// ErrInvalidEmail indicates a missing or malformed email address.
var ErrInvalidEmail = errors.New("invalid email address")

// Login email content.
const (
	loginEmailSubject = "Your login link for Listling"
	loginEmailBody    = "Use this link to log in:\n\n%s"
)

// AuthService issues login tokens and resolves them into identities.
type AuthService struct {
	users   repository.UserStore
	tokens  repository.TokenStore
	mailer  mailer.Mailer
	baseURL string
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	users repository.UserStore,
	tokens repository.TokenStore,
	m mailer.Mailer,
	baseURL string,
	recorder metrics.Recorder,
	logger *slog.Logger,
) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:   users,
		tokens:  tokens,
		mailer:  m,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		metrics: recorder,
		logger:  logger,
	}
}

// SendLoginLink creates a one-time login token bound to email and mails the
// callback link. A malformed address returns ErrInvalidEmail and creates
// nothing. A mailer failure is logged but not surfaced: the caller reports
// the same success either way, so the response never reveals whether a
// mailbox is reachable.
func (s *AuthService) SendLoginLink(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !validEmail(email) {
		s.metrics.IncLoginEmailRejected()
		return ErrInvalidEmail
	}

	token := &model.Token{
		Value:     uuid.New().String(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.tokens.CreateToken(ctx, token); err != nil {
		return fmt.Errorf("failed to issue login token: %w", err)
	}

	link := s.baseURL + "/login?token=" + url.QueryEscape(token.Value)

	start := time.Now()
	err := s.mailer.Send(ctx, email, loginEmailSubject, fmt.Sprintf(loginEmailBody, link))
	s.metrics.ObserveMailDuration(time.Since(start))
	if err != nil {
		s.logger.Warn("login email delivery failed",
			slog.String("error", err.Error()),
		)
	}

	s.metrics.IncLoginEmailSent()
	return nil
}

// Authenticate resolves a presented token value into an identity. The token
// is consumed atomically, so each link works exactly once. An unknown or
// already-consumed token is not an error: both return values are nil and
// the caller continues anonymously. On first login the user record is
// provisioned by an atomic get-or-insert keyed by email.
func (s *AuthService) Authenticate(ctx context.Context, tokenValue string) (*model.User, error) {
	if tokenValue == "" {
		s.metrics.IncLoginTokenUnknown()
		return nil, nil
	}

	email, err := s.tokens.ConsumeToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			s.metrics.IncLoginTokenUnknown()
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve login token: %w", err)
	}

	user, err := s.users.GetOrCreateUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	s.metrics.IncLoginSucceeded()
	s.logger.Info("user authenticated", slog.String("user_id", user.ID))
	return user, nil
}

// GetUser re-hydrates an identity from a persisted session reference.
// Returns nil without error if the email no longer resolves to a user.
func (s *AuthService) GetUser(ctx context.Context, email string) (*model.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
