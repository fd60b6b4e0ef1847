package model

// TokenGenerator produces opaque random strings for session, activation, and
// password reset tokens.
type TokenGenerator interface {
	Generate(length int) (string, error)
}
