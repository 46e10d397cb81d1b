// Package auth gates write access to presentations. Edit secrets are stored
// only as bcrypt hashes and are verified on every mutating call.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// SecretHasher hashes and verifies edit secrets.
type SecretHasher struct {
	Cost int
}

// NewSecretHasher returns a hasher with the given work factor. Values
// outside bcrypt's accepted range fall back to DefaultCost.
func NewSecretHasher(cost int) *SecretHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &SecretHasher{Cost: cost}
}

// Hash returns the one-way hash of secret.
func (h *SecretHasher) Hash(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), h.Cost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(b), nil
}

// Verify reports whether secret matches hashed. The comparison is done by
// bcrypt itself; a malformed hash simply does not verify.
func (h *SecretHasher) Verify(secret, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret)) == nil
}
