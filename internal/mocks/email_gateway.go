package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// EmailGateway is a mock implementation of model.EmailGateway.
type EmailGateway struct {
	mock.Mock
}

func (m *EmailGateway) SendActivation(ctx context.Context, email, token string) error {
	args := m.Called(ctx, email, token)
	return args.Error(0)
}

func (m *EmailGateway) SendPasswordReset(ctx context.Context, email, token string) error {
	args := m.Called(ctx, email, token)
	return args.Error(0)
}
