package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mmynk/shophub/internal/auth"
	"github.com/mmynk/shophub/internal/metrics"
	"github.com/mmynk/shophub/internal/models"
	"github.com/mmynk/shophub/internal/storage"
)

// SessionService holds the current authenticated user, if any.
// Login and logout update both the in-memory session and the persisted one.
type SessionService struct {
	mu            sync.Mutex
	current       *models.SessionUser
	store         storage.Store
	authenticator auth.Authenticator
	tokens        *auth.SessionTokens
	logger        *slog.Logger
	metrics       *metrics.Metrics
	delay         time.Duration
}

// NewSessionService creates a session manager.
// delay simulates latency before Login and Signup resolve; zero disables it.
func NewSessionService(store storage.Store, authenticator auth.Authenticator, tokens *auth.SessionTokens, logger *slog.Logger, m *metrics.Metrics, delay time.Duration) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		store:         store,
		authenticator: authenticator,
		tokens:        tokens,
		logger:        logger,
		metrics:       m,
		delay:         delay,
	}
}

// Login verifies the credentials and makes the user the current session.
//
// Returns auth.ValidationErrors when a field is empty, auth.ErrUserNotFound for an
// unknown email and auth.ErrInvalidPassword for a wrong password. The returned
// user never carries the password hash.
func (s *SessionService) Login(ctx context.Context, email, password string) (*models.SessionUser, error) {
	email = strings.TrimSpace(email)
	s.logger.Info("Login request", "email", email)

	if err := auth.ValidateLogin(auth.LoginInput{Email: email, Password: password}); err != nil {
		s.metrics.Auth("login", "invalid_input")
		return nil, err
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Warn("Login failed", "email", email, "error", err)
		s.metrics.Auth("login", authResult(err))
		return nil, err
	}

	sessionUser := user.Public()
	token, err := s.tokens.Generate(sessionUser)
	if err != nil {
		s.logger.Error("Failed to generate session token", "user_id", user.ID, "error", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(ctx, storage.KeySession, token); err != nil {
		s.logger.Error("Failed to persist session", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	s.current = sessionUser

	s.metrics.Auth("login", "ok")
	s.logger.Info("User logged in successfully", "user_id", user.ID, "email", user.Email)
	return copyUser(sessionUser), nil
}

// Logout clears the current session in memory and in storage.
// The in-memory session is always cleared; only a storage failure is returned.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := ""
	if s.current != nil {
		userID = s.current.ID
	}
	s.current = nil

	if err := s.store.Remove(ctx, storage.KeySession); err != nil {
		s.logger.Error("Failed to remove persisted session", "user_id", userID, "error", err)
		return fmt.Errorf("failed to remove session: %w", err)
	}

	s.logger.Info("User logged out", "user_id", userID)
	return nil
}

// RestoreSession loads the persisted session, if any, at process start.
// A tampered, expired or unreadable value is discarded and leaves the session
// empty. It reports whether a session was restored and never fails.
func (s *SessionService) RestoreSession(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil

	raw, ok, err := s.store.Get(ctx, storage.KeySession)
	if err != nil {
		s.logger.Warn("Failed to read persisted session", "error", err)
		return false
	}
	if !ok {
		return false
	}

	user, err := s.tokens.Validate(raw)
	if err != nil {
		s.metrics.Corrupt(storage.KeySession)
		if rmErr := storage.Discard(ctx, s.store, s.logger, storage.KeySession, err); rmErr != nil {
			s.logger.Warn("Failed to discard session", "error", rmErr)
		}
		return false
	}

	s.current = user
	s.logger.Info("Session restored", "user_id", user.ID)
	return true
}

// Signup validates the form and registers a new account.
// It does not log the user in.
func (s *SessionService) Signup(ctx context.Context, in auth.SignupInput) (*models.SessionUser, error) {
	s.logger.Info("Signup request", "email", in.Email)

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	user, err := s.authenticator.Register(ctx, in)
	if err != nil {
		s.logger.Warn("Signup failed", "email", in.Email, "error", err)
		s.metrics.Auth("signup", authResult(err))
		return nil, err
	}

	s.metrics.Auth("signup", "ok")
	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	return user.Public(), nil
}

// CurrentUser returns a copy of the session user, or nil when unauthenticated.
func (s *SessionService) CurrentUser() *models.SessionUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyUser(s.current)
}

// IsAuthenticated reports whether a session is active.
func (s *SessionService) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

func (s *SessionService) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func copyUser(u *models.SessionUser) *models.SessionUser {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func authResult(err error) string {
	var verrs auth.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return "invalid_input"
	case errors.Is(err, auth.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, auth.ErrInvalidPassword):
		return "invalid_password"
	case errors.Is(err, auth.ErrEmailExists):
		return "duplicate_email"
	default:
		return "error"
	}
}
