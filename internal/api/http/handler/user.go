package handler

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ndzhokv/userd/internal/logger"
	"github.com/ndzhokv/userd/internal/model"
)

// AccountService defines the provisioning operations the user endpoints
// need.
type AccountService interface {
	CreateAccount(ctx context.Context, username, email, password string) error
	Activate(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	CompletePasswordReset(ctx context.Context, resetToken, newPassword string) error
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	GetUserImage(ctx context.Context, key string) (io.ReadCloser, error)
	ListUsers(ctx context.Context, page, size int, excludeID uuid.UUID) (model.UserPage, error)
	UpdateUser(ctx context.Context, id uuid.UUID, username string, image []byte) (model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// User handles registration, activation, and user CRUD endpoints.
type User struct {
	accounts       AccountService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(accounts AccountService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		accounts:       accounts,
		contextManager: contextManager,
		logger:         logger,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Image    *string   `json:"image"`
}

func toUserResponse(user model.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Image:    user.Image,
	}
}

// Register creates an inactive account and dispatches the activation email.
func (h *User) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "malformed request body")
	}

	if err := h.accounts.CreateAccount(c.UserContext(), req.Username, req.Email, req.Password); err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{"message": "user created"})
}

// Activate consumes the activation token from the URL.
func (h *User) Activate(c *fiber.Ctx) error {
	if err := h.accounts.Activate(c.UserContext(), c.Params("token")); err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{"message": "account activated"})
}

// List returns a page of active users. The authenticated caller, if any, is
// excluded from the listing.
func (h *User) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	if page < 0 {
		page = 0
	}
	size := c.QueryInt("size", defaultPageSize)
	if size < 1 || size > maxPageSize {
		size = defaultPageSize
	}

	excludeID, _ := h.contextManager.GetUserIDFromContext(c.UserContext())

	users, err := h.accounts.ListUsers(c.UserContext(), page, size, excludeID)
	if err != nil {
		return handleError(c, err)
	}

	content := make([]userResponse, 0, len(users.Content))
	for _, user := range users.Content {
		content = append(content, toUserResponse(user))
	}

	return c.JSON(fiber.Map{
		"content":    content,
		"page":       users.Page,
		"size":       users.Size,
		"totalPages": users.TotalPages,
	})
}

// Get returns a single active user.
func (h *User) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusNotFound, "not found")
	}

	user, err := h.accounts.GetUser(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(toUserResponse(user))
}

// Image serves a stored profile image by the key returned in user responses.
func (h *User) Image(c *fiber.Ctx) error {
	rc, err := h.accounts.GetUserImage(c.UserContext(), c.Params("key"))
	if err != nil {
		return handleError(c, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		h.logger.Error("User handler: failed to read image", "error", err.Error())
		return respondError(c, fiber.StatusInternalServerError, "internal server error")
	}

	c.Set(fiber.HeaderContentType, http.DetectContentType(data))
	return c.Send(data)
}

type updateRequest struct {
	Username string `json:"username"`
	Image    string `json:"image"`
}

// Update renames the account and optionally replaces the profile image,
// which arrives base64-encoded. Only the owner may update.
func (h *User) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusForbidden, "you are not authorized to update this user")
	}

	authenticatedID, ok := h.contextManager.GetUserIDFromContext(c.UserContext())
	if !ok || authenticatedID != id {
		return respondError(c, fiber.StatusForbidden, "you are not authorized to update this user")
	}

	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "malformed request body")
	}

	var image []byte
	if req.Image != "" {
		image, err = base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "malformed image payload")
		}
	}

	user, err := h.accounts.UpdateUser(c.UserContext(), id, req.Username, image)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(toUserResponse(user))
}

// Delete removes the account. Only the owner may delete.
func (h *User) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusForbidden, "you are not authorized to delete this user")
	}

	authenticatedID, ok := h.contextManager.GetUserIDFromContext(c.UserContext())
	if !ok || authenticatedID != id {
		return respondError(c, fiber.StatusForbidden, "you are not authorized to delete this user")
	}

	if err := h.accounts.DeleteUser(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
