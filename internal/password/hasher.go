package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost matches the work factor the service has always used for stored
// hashes; raising it only affects newly written passwords.
const Cost = 8

// Hasher provides one-way password hashing and verification.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher. A non-positive cost falls back to Cost.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = Cost
	}
	return &Hasher{cost: cost}
}

// Hash derives a salted bcrypt hash from plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
