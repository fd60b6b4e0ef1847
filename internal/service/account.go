package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/ndzhokv/userd/internal/dbx"
	"github.com/ndzhokv/userd/internal/logger"
	"github.com/ndzhokv/userd/internal/model"
)

const (
	activationTokenLength = 16
	resetTokenLength      = 16
	imageKeyLength        = 32
)

// UserStoreFactory binds a user store to a database handle. Passing a
// transaction makes every store call part of that transaction.
type UserStoreFactory func(db dbx.DBTX) model.UserStore

// SessionRevoker invalidates sessions. Completing a password reset revokes
// every session of the affected user before reporting success.
type SessionRevoker interface {
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}

// Account orchestrates account provisioning: registration with email
// activation, password reset, and user CRUD with profile images.
type Account struct {
	db        *sql.DB
	users     UserStoreFactory
	sessions  SessionRevoker
	email     model.EmailGateway
	storage   model.Storage
	hasher    model.CredentialHasher
	generator model.TokenGenerator
	logger    *logger.Logger
}

func NewAccount(
	db *sql.DB,
	users UserStoreFactory,
	sessions SessionRevoker,
	email model.EmailGateway,
	storage model.Storage,
	hasher model.CredentialHasher,
	generator model.TokenGenerator,
	logger *logger.Logger,
) *Account {
	return &Account{
		db:        db,
		users:     users,
		sessions:  sessions,
		email:     email,
		storage:   storage,
		hasher:    hasher,
		generator: generator,
		logger:    logger,
	}
}

// CreateAccount registers an inactive user and dispatches the activation
// email inside one transaction. When the dispatch fails the insert is rolled
// back, so a user never exists without a way to receive their token.
func (a *Account) CreateAccount(ctx context.Context, username, email, password string) error {
	a.logger.Debug("Account service: creating account", "email", email)

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	activationToken, err := a.generator.Generate(activationTokenLength)
	if err != nil {
		return fmt.Errorf("failed to generate activation token: %w", err)
	}

	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user := model.User{
			ID:              uuid.New(),
			Username:        username,
			Email:           email,
			PasswordHash:    hash,
			Inactive:        true,
			ActivationToken: &activationToken,
		}

		if _, err := a.users(tx).Create(ctx, user); err != nil {
			return err
		}

		if err := a.email.SendActivation(ctx, email, activationToken); err != nil {
			a.logger.Error("Account service: activation email failed",
				"email", email,
				"error", err.Error())
			return fmt.Errorf("%w: %w", model.ErrEmailDelivery, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) || errors.Is(err, model.ErrEmailDelivery) {
			return err
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	a.logger.Info("Account service: account created", "email", email)

	return nil
}

// Activate consumes an activation token. Unknown and already-used tokens are
// indistinguishable to the caller.
func (a *Account) Activate(ctx context.Context, token string) error {
	users := a.users(a.db)

	user, err := users.GetByActivationToken(ctx, token)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrInvalidToken
	}
	if err != nil {
		return fmt.Errorf("failed to get user by activation token: %w", err)
	}

	user.Inactive = false
	user.ActivationToken = nil
	if err := users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}

	a.logger.Info("Account service: account activated", "user_id", user.ID)

	return nil
}

// RequestPasswordReset stores a reset token on the account and mails it. The
// token survives a failed dispatch so the caller can retry delivery without
// requesting a new one.
func (a *Account) RequestPasswordReset(ctx context.Context, email string) error {
	users := a.users(a.db)

	user, err := users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrUnknownEmail
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	resetToken, err := a.generator.Generate(resetTokenLength)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	user.PasswordResetToken = &resetToken
	if err := users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := a.email.SendPasswordReset(ctx, user.Email, resetToken); err != nil {
		a.logger.Error("Account service: reset email failed",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("%w: %w", model.ErrEmailDelivery, err)
	}

	a.logger.Info("Account service: password reset requested", "user_id", user.ID)

	return nil
}

// CompletePasswordReset sets a new password and invalidates every existing
// session of the account. Proving mailbox ownership also completes any
// pending activation.
func (a *Account) CompletePasswordReset(ctx context.Context, resetToken, newPassword string) error {
	users := a.users(a.db)

	user, err := users.GetByPasswordResetToken(ctx, resetToken)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrUnauthorizedReset
	}
	if err != nil {
		return fmt.Errorf("failed to get user by reset token: %w", err)
	}

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hash
	user.PasswordResetToken = nil
	user.ActivationToken = nil
	user.Inactive = false
	if err := users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := a.sessions.RevokeAllForUser(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to revoke sessions after reset: %w", err)
	}

	a.logger.Info("Account service: password reset completed", "user_id", user.ID)

	return nil
}

// GetUser returns an active user by ID.
func (a *Account) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := a.users(a.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	if user.Inactive {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

// ListUsers returns a page of active users, excluding excludeID when set.
func (a *Account) ListUsers(ctx context.Context, page, size int, excludeID uuid.UUID) (model.UserPage, error) {
	users, err := a.users(a.db).List(ctx, page, size, excludeID)
	if err != nil {
		return model.UserPage{}, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser renames a user and optionally replaces the profile image. The
// previous image object is deleted before the new one is stored.
func (a *Account) UpdateUser(ctx context.Context, id uuid.UUID, username string, image []byte) (model.User, error) {
	users := a.users(a.db)

	user, err := users.GetByID(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	user.Username = username

	if len(image) > 0 {
		if user.Image != nil {
			if err := a.storage.Delete(ctx, *user.Image); err != nil {
				return model.User{}, fmt.Errorf("failed to delete previous image: %w", err)
			}
		}

		key, err := a.generator.Generate(imageKeyLength)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to generate image key: %w", err)
		}

		if err := a.storage.Upload(ctx, key, bytes.NewReader(image)); err != nil {
			return model.User{}, fmt.Errorf("failed to store image: %w", err)
		}
		user.Image = &key
	}

	if err := users.Update(ctx, user); err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// GetUserImage streams a stored profile image by its object key. The key is
// the value handed out in the user's image field.
func (a *Account) GetUserImage(ctx context.Context, key string) (io.ReadCloser, error) {
	exists, err := a.storage.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check image: %w", err)
	}
	if !exists {
		return nil, model.ErrNotFound
	}

	rc, err := a.storage.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}

	return rc, nil
}

// DeleteUser removes the account, its sessions, and its stored image.
func (a *Account) DeleteUser(ctx context.Context, id uuid.UUID) error {
	users := a.users(a.db)

	user, err := users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := a.sessions.RevokeAllForUser(ctx, id); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	if err := users.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if user.Image != nil {
		if err := a.storage.Delete(ctx, *user.Image); err != nil {
			return fmt.Errorf("failed to delete profile image: %w", err)
		}
	}

	a.logger.Info("Account service: account deleted", "user_id", id)

	return nil
}
