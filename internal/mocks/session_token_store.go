package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ndzhokv/userd/internal/model"
)

// SessionTokenStore is a mock implementation of model.SessionTokenStore.
type SessionTokenStore struct {
	mock.Mock
}

func (m *SessionTokenStore) Create(ctx context.Context, token model.SessionToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *SessionTokenStore) GetByToken(ctx context.Context, token string) (model.SessionToken, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.SessionToken), args.Error(1)
}

func (m *SessionTokenStore) UpdateLastUsedAt(ctx context.Context, token string, lastUsedAt time.Time) error {
	args := m.Called(ctx, token, lastUsedAt)
	return args.Error(0)
}

func (m *SessionTokenStore) DeleteByToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *SessionTokenStore) DeleteAllByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *SessionTokenStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
