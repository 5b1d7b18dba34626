package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/contacts-server/internal/model"
)

var _ model.PasswordHasher = (*BCrypt)(nil)

// BCrypt hashes passwords with bcrypt at a fixed cost.
type BCrypt struct {
	cost int
}

// NewBCrypt creates a bcrypt hasher. Costs outside bcrypt's accepted range fall
// back to bcrypt.DefaultCost.
func NewBCrypt(cost int) *BCrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BCrypt{cost: cost}
}

// Hash returns a salted bcrypt digest of plaintext.
func (h *BCrypt) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A malformed digest is a mismatch.
func (h *BCrypt) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
