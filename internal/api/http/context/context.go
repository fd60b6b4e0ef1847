// Package context stores the authenticated user ID on request contexts.
package context

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

// userIDKey is the context key used to store the authenticated user ID.
const userIDKey ctxKey = iota

// ContextManager stores and retrieves the authenticated user ID on a request
// context.
type ContextManager struct{}

// NewContextManager creates a new context manager instance.
func NewContextManager() *ContextManager {
	return &ContextManager{}
}

// SetUserIDToContext returns a context carrying userID.
func (m *ContextManager) SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext retrieves the user ID set by the authentication
// middleware. The boolean is false for anonymous requests.
func (m *ContextManager) GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}
