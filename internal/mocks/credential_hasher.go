package mocks

import "github.com/stretchr/testify/mock"

// CredentialHasher is a mock implementation of model.CredentialHasher.
type CredentialHasher struct {
	mock.Mock
}

func (m *CredentialHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *CredentialHasher) Verify(plaintext, hash string) (bool, error) {
	args := m.Called(plaintext, hash)
	return args.Bool(0), args.Error(1)
}
