package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ndzhokv/userd/internal/logger"
	"github.com/ndzhokv/userd/internal/model"
)

// SessionVerifier resolves user IDs from bearer session tokens.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate resolves bearer tokens and injects the user ID into the
// request context. A missing or invalid token leaves the request anonymous;
// handlers that require ownership enforce it themselves.
type Authenticate struct {
	sessions       SessionVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessions SessionVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{sessions: sessions, contextManager: contextManager, logger: logger}
}

// Handle parses the Authorization header and, when the token verifies,
// stores the owning user ID on the request context. Verification also
// refreshes the token's sliding expiry window.
func (m *Authenticate) Handle(c *fiber.Ctx) error {
	authorization := c.Get(fiber.HeaderAuthorization)
	if authorization != "" {
		token := strings.TrimPrefix(authorization, "Bearer ")

		userID, err := m.sessions.Verify(c.UserContext(), token)
		if err == nil {
			c.SetUserContext(m.contextManager.SetUserIDToContext(c.UserContext(), userID))
		} else {
			m.logger.Debug("Authenticate middleware: token rejected", "error", err.Error())
		}
	}

	return c.Next()
}
