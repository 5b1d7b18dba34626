package model

// PasswordHasher hashes and verifies passwords. Verify treats malformed digests
// as a mismatch.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}
