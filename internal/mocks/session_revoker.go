package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// SessionRevoker is a mock implementation of service.SessionRevoker.
type SessionRevoker struct {
	mock.Mock
}

func (m *SessionRevoker) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
