// Package handler contains the fiber endpoints for authentication and user
// management.
package handler

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ndzhokv/userd/internal/logger"
	"github.com/ndzhokv/userd/internal/model"
)

// SessionService defines the session operations the auth endpoints need.
type SessionService interface {
	Login(ctx context.Context, email, password string) (string, model.User, error)
	Revoke(ctx context.Context, token string) error
}

// Auth handles login, logout, and password reset endpoints.
type Auth struct {
	sessions SessionService
	accounts AccountService
	logger   *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(sessions SessionService, accounts AccountService, logger *logger.Logger) *Auth {
	return &Auth{
		sessions: sessions,
		accounts: accounts,
		logger:   logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a session token along with the
// user's public identity.
func (h *Auth) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "malformed request body")
	}

	token, user, err := h.sessions.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"image":    user.Image,
		"token":    token,
	})
}

// Logout revokes the presented bearer token. Revoking an absent token
// succeeds.
func (h *Auth) Logout(c *fiber.Ctx) error {
	authorization := c.Get(fiber.HeaderAuthorization)
	if authorization != "" {
		token := strings.TrimPrefix(authorization, "Bearer ")
		if err := h.sessions.Revoke(c.UserContext(), token); err != nil {
			return handleError(c, err)
		}
	}

	return c.SendStatus(fiber.StatusOK)
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

// RequestPasswordReset mails a reset token to the account's address.
func (h *Auth) RequestPasswordReset(c *fiber.Ctx) error {
	var req passwordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "malformed request body")
	}

	if err := h.accounts.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{"message": "check your email for resetting your password"})
}

type passwordUpdateRequest struct {
	PasswordResetToken string `json:"passwordResetToken"`
	Password           string `json:"password"`
}

// CompletePasswordReset consumes a reset token and sets the new password.
// Every existing session of the account is invalidated.
func (h *Auth) CompletePasswordReset(c *fiber.Ctx) error {
	var req passwordUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "malformed request body")
	}

	if err := h.accounts.CompletePasswordReset(c.UserContext(), req.PasswordResetToken, req.Password); err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{"message": "password updated"})
}
