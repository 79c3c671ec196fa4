// Package account joins the identity client and the local session
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/dealboard/internal/auth"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/session"
)

const minPasswordLength = 8

// Identity is the slice of the identity client the service needs
type Identity interface {
	SignIn(ctx context.Context, email, password string) (*auth.Session, error)
	SignUp(ctx context.Context, email, password string, profile auth.Profile) (*models.User, *auth.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*models.User, error)
	UpdatePassword(ctx context.Context, accessToken, password string) (*models.User, error)
	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error
	ExchangeRecoveryToken(ctx context.Context, tokenHash string) (*auth.Session, error)
}

// Sessions is the slice of the session manager the service needs
type Sessions interface {
	Save(ctx context.Context, user models.User, accessToken, refreshToken string) (*session.Session, error)
	Load(ctx context.Context) (*session.Session, error)
	Clear(ctx context.Context) error
}

// Service defines account operations
type Service interface {
	SignIn(ctx context.Context, email, password string) (*session.Session, error)
	SignUp(ctx context.Context, req SignUpRequest) (*SignUpResult, error)
	SignOut(ctx context.Context) error
	Current(ctx context.Context) (*session.Session, error)
	Refresh(ctx context.Context) (*session.Session, error)
	ChangePassword(ctx context.Context, password, confirm string) error
	RequestPasswordReset(ctx context.Context, email string) error
	CompletePasswordReset(ctx context.Context, tokenHash, password, confirm string) (*session.Session, error)
}

// SignUpRequest carries the registration form
type SignUpRequest struct {
	Email    string
	Password string
	Confirm  string
	FullName string
	Company  string
}

// SignUpResult says whether the user must confirm their email first
type SignUpResult struct {
	User              models.User
	Session           *session.Session // nil until the email is confirmed
	NeedsConfirmation bool
}

type service struct {
	identity   Identity
	sessions   Sessions
	redirectTo string
	logger     *slog.Logger
}

// NewService creates the account service. identity may be nil when the
// identity service is not configured; every remote call then fails with
// ErrIdentityDisabled while Current still reads the local session.
func NewService(identity Identity, sessions Sessions, redirectTo string, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{identity: identity, sessions: sessions, redirectTo: redirectTo, logger: logger}
}

func (s *service) requireIdentity() error {
	if s.identity == nil {
		return ErrIdentityDisabled
	}
	return nil
}

// SignIn authenticates and stores the session locally
func (s *service) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	if err := s.requireIdentity(); err != nil {
		return nil, err
	}
	remote, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.sessions.Save(ctx, remote.User, remote.AccessToken, remote.RefreshToken)
}

// SignUp registers and, when the provider allows it, signs in right away
func (s *service) SignUp(ctx context.Context, req SignUpRequest) (*SignUpResult, error) {
	if err := s.requireIdentity(); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password, req.Confirm); err != nil {
		return nil, err
	}

	user, remote, err := s.identity.SignUp(ctx, req.Email, req.Password, auth.Profile{
		FullName: req.FullName,
		Company:  req.Company,
	})
	if err != nil {
		return nil, err
	}

	result := &SignUpResult{User: *user, NeedsConfirmation: remote == nil}
	if remote != nil {
		local, err := s.sessions.Save(ctx, remote.User, remote.AccessToken, remote.RefreshToken)
		if err != nil {
			return nil, err
		}
		result.Session = local
	}
	return result, nil
}

// SignOut revokes the remote token when possible and always clears the local session
func (s *service) SignOut(ctx context.Context) error {
	current, err := s.sessions.Load(ctx)
	switch {
	case err == nil:
		if s.identity != nil && current.AccessToken != "" {
			if err := s.identity.SignOut(ctx, current.AccessToken); err != nil {
				// the local session goes away regardless
				s.logger.Warn("remote sign-out failed", "error", err)
			}
		}
	case errors.Is(err, session.ErrNoSession):
		return ErrNotSignedIn
	}
	return s.sessions.Clear(ctx)
}

// Current returns the verified local session
func (s *service) Current(ctx context.Context) (*session.Session, error) {
	current, err := s.sessions.Load(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return nil, ErrNotSignedIn
	}
	return current, err
}

// Refresh re-reads the user from the provider and re-signs the local session
func (s *service) Refresh(ctx context.Context) (*session.Session, error) {
	if err := s.requireIdentity(); err != nil {
		return nil, err
	}
	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.identity.GetUser(ctx, current.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("refreshing user: %w", err)
	}
	return s.sessions.Save(ctx, *user, current.AccessToken, current.RefreshToken)
}

// ChangePassword updates the password of the signed-in user
func (s *service) ChangePassword(ctx context.Context, password, confirm string) error {
	if err := s.requireIdentity(); err != nil {
		return err
	}
	if err := validatePassword(password, confirm); err != nil {
		return err
	}
	current, err := s.Current(ctx)
	if err != nil {
		return err
	}
	_, err = s.identity.UpdatePassword(ctx, current.AccessToken, password)
	return err
}

// RequestPasswordReset emails a recovery link
func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	if err := s.requireIdentity(); err != nil {
		return err
	}
	return s.identity.ResetPasswordForEmail(ctx, email, s.redirectTo)
}

// CompletePasswordReset trades the link token for a session and sets the new password
func (s *service) CompletePasswordReset(ctx context.Context, tokenHash, password, confirm string) (*session.Session, error) {
	if err := s.requireIdentity(); err != nil {
		return nil, err
	}
	if err := validatePassword(password, confirm); err != nil {
		return nil, err
	}

	remote, err := s.identity.ExchangeRecoveryToken(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	user, err := s.identity.UpdatePassword(ctx, remote.AccessToken, password)
	if err != nil {
		return nil, err
	}

	s.logger.Info("password reset completed", "user_id", user.ID)
	return s.sessions.Save(ctx, *user, remote.AccessToken, remote.RefreshToken)
}

func validatePassword(password, confirm string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}
