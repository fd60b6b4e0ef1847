package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndzhokv/userd/internal/logger"
	"github.com/ndzhokv/userd/internal/model"
)

const (
	// DefaultExpiryWindow is the sliding idle window after which a session
	// token stops authenticating.
	DefaultExpiryWindow = 7 * 24 * time.Hour

	sessionTokenLength = 32
)

// Session issues, verifies, revokes, and sweeps opaque session tokens.
// Verification refreshes the token's last-used timestamp, so the expiry
// window slides with activity instead of counting from creation.
type Session struct {
	store        model.SessionTokenStore
	userStore    model.UserStore
	hasher       model.CredentialHasher
	generator    model.TokenGenerator
	expiryWindow time.Duration
	logger       *logger.Logger
}

// NewSession constructs the session manager. A zero expiryWindow falls back
// to DefaultExpiryWindow.
func NewSession(
	store model.SessionTokenStore,
	userStore model.UserStore,
	hasher model.CredentialHasher,
	generator model.TokenGenerator,
	expiryWindow time.Duration,
	logger *logger.Logger,
) *Session {
	if expiryWindow <= 0 {
		expiryWindow = DefaultExpiryWindow
	}
	return &Session{
		store:        store,
		userStore:    userStore,
		hasher:       hasher,
		generator:    generator,
		expiryWindow: expiryWindow,
		logger:       logger,
	}
}

// Login verifies credentials and issues a session token. Unknown email and
// password mismatch are indistinguishable to the caller.
func (s *Session) Login(ctx context.Context, email, password string) (string, model.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return "", model.User{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return "", model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	match, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return "", model.User{}, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		return "", model.User{}, model.ErrInvalidCredentials
	}

	if user.Inactive {
		return "", model.User{}, model.ErrAccountInactive
	}

	token, err := s.Issue(ctx, user.ID)
	if err != nil {
		return "", model.User{}, err
	}

	s.logger.Info("Session service: user logged in", "user_id", user.ID)

	return token, user, nil
}

// Issue creates a fresh token for userID. A store-level collision is retried
// once with a newly generated token; a second collision is fatal.
func (s *Session) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	for attempt := 0; attempt < 2; attempt++ {
		token, err := s.generator.Generate(sessionTokenLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate session token: %w", err)
		}

		err = s.store.Create(ctx, model.SessionToken{
			Token:      token,
			UserID:     userID,
			LastUsedAt: time.Now(),
		})
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, model.ErrDuplicateToken) {
			return "", fmt.Errorf("failed to persist session token: %w", err)
		}

		s.logger.Error("Session service: token collision on issue",
			"user_id", userID,
			"attempt", attempt+1)
	}

	return "", fmt.Errorf("failed to issue session token: %w", model.ErrDuplicateToken)
}

// Verify resolves a token to its owning user ID and refreshes the sliding
// window. Absent and stale tokens both fail with ErrInvalidSession; a stale
// row is left in place for the sweeper.
func (s *Session) Verify(ctx context.Context, token string) (uuid.UUID, error) {
	st, err := s.store.GetByToken(ctx, token)
	if errors.Is(err, model.ErrNotFound) {
		return uuid.Nil, model.ErrInvalidSession
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get session token: %w", err)
	}

	now := time.Now()
	if now.Sub(st.LastUsedAt) >= s.expiryWindow {
		return uuid.Nil, model.ErrInvalidSession
	}

	err = s.store.UpdateLastUsedAt(ctx, token, now)
	if errors.Is(err, model.ErrNotFound) {
		// Revoked between lookup and refresh.
		return uuid.Nil, model.ErrInvalidSession
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to refresh session token: %w", err)
	}

	return st.UserID, nil
}

// Revoke deletes a token. Revoking an absent token is a successful no-op.
func (s *Session) Revoke(ctx context.Context, token string) error {
	if err := s.store.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke session token: %w", err)
	}
	return nil
}

// RevokeAllForUser deletes every token owned by userID.
func (s *Session) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.DeleteAllByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke user sessions: %w", err)
	}

	s.logger.Info("Session service: revoked all sessions", "user_id", userID)

	return nil
}

// Sweep evicts every token idle past the expiry window as of now and returns
// the number of evicted rows. It is timer-free so it can be driven directly
// in tests; RunSweeper owns the schedule.
func (s *Session) Sweep(ctx context.Context, now time.Time) (int64, error) {
	deleted, err := s.store.DeleteOlderThan(ctx, now.Add(-s.expiryWindow))
	if err != nil {
		return 0, fmt.Errorf("failed to sweep stale session tokens: %w", err)
	}
	return deleted, nil
}
