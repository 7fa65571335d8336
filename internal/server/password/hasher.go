// Package password provides one-way salted password hashing for the server.
package password

import (
	"fmt"

	"github.com/vpopov/authgate/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the fixed bcrypt work factor used in production. It is part
// of the deployed configuration, not negotiated per request.
const DefaultCost = 10

// Hasher hashes and verifies passwords.
type Hasher interface {
	// Hash produces a salted digest of the plaintext. Each call uses a
	// fresh random salt, so the same plaintext yields different digests.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. The comparison is
	// constant-time; any mismatch, malformed digest, or unknown algorithm
	// version yields false, never an error.
	Verify(plaintext, digest string) bool
}

// BcryptHasher implements Hasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher constructs a BcryptHasher with the given cost. Costs
// outside bcrypt's supported range fall back to DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrHashing, err)
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
