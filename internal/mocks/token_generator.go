package mocks

import "github.com/stretchr/testify/mock"

// TokenGenerator is a mock implementation of model.TokenGenerator.
type TokenGenerator struct {
	mock.Mock
}

func (m *TokenGenerator) Generate(length int) (string, error) {
	args := m.Called(length)
	return args.String(0), args.Error(1)
}
