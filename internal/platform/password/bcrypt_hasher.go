// Package password provides salted one-way password hashing.
package password

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"user_backend/internal/feature/user/domain"
)

// BcryptHasher hashes and verifies passwords with bcrypt.
// It holds no mutable state and is safe for concurrent use.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost.
// Costs outside bcrypt's accepted range fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns a bcrypt token for raw. bcrypt draws a fresh salt on every
// call, so hashing the same input twice yields different tokens.
func (h *BcryptHasher) Hash(raw *string) (string, error) {
	if raw == nil {
		return "", domain.InvalidInput("Password cannot be null")
	}
	hashed, err := bcrypt.GenerateFromPassword(prehash(*raw), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether raw matches token.
// A nil raw never matches; a nil token is a caller error.
func (h *BcryptHasher) Verify(raw, token *string) (bool, error) {
	if raw == nil {
		return false, nil
	}
	if token == nil {
		return false, domain.InvalidInput("Encrypted password cannot be null")
	}
	return bcrypt.CompareHashAndPassword([]byte(*token), prehash(*raw)) == nil, nil
}

// prehash digests raw to 44 bytes, under bcrypt's 72-byte input limit.
func prehash(raw string) []byte {
	sum := sha256.Sum256([]byte(raw))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
