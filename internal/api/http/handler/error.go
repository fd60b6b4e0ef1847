package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ndzhokv/userd/internal/model"
)

// handleError maps service errors onto HTTP responses. Anything unrecognized
// is reported as an internal error without leaking detail.
func handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials), errors.Is(err, model.ErrInvalidSession):
		return respondError(c, fiber.StatusUnauthorized, "incorrect credentials")
	case errors.Is(err, model.ErrAccountInactive):
		return respondError(c, fiber.StatusForbidden, "account is inactive")
	case errors.Is(err, model.ErrUnauthorizedReset):
		return respondError(c, fiber.StatusForbidden, "you are not authorized to update your password")
	case errors.Is(err, model.ErrInvalidToken):
		return respondError(c, fiber.StatusBadRequest, "account is either active or the token is invalid")
	case errors.Is(err, model.ErrEmailTaken):
		return respondError(c, fiber.StatusBadRequest, "email is already in use")
	case errors.Is(err, model.ErrUnknownEmail), errors.Is(err, model.ErrNotFound):
		return respondError(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, model.ErrEmailDelivery):
		return respondError(c, fiber.StatusBadGateway, "email delivery failed")
	default:
		return respondError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"path":    c.OriginalURL(),
		"message": message,
	})
}
