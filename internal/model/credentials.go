package model

// CredentialHasher hashes and verifies stored passwords.
type CredentialHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) (bool, error)
}
