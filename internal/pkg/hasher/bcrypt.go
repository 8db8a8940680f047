// Package hasher provides the bcrypt-backed password hasher used for
// credential storage.
package hasher

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt hashes passwords with a random per-call salt, so two hashes of the
// same plaintext differ while Verify still matches either of them.
type Bcrypt struct {
	cost int
}

// NewBcrypt returns a Bcrypt hasher. Costs outside bcrypt's valid range fall
// back to the library default.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash returns the bcrypt hash of plaintext.
func (b *Bcrypt) Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports false on a mismatch. A non-nil error means the comparison
// itself failed, typically a malformed stored hash, and callers must treat
// it as an operational error rather than a wrong password.
func (b *Bcrypt) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
