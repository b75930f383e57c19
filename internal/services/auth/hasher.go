package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher produces and verifies one-way salted password digests
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches digest; a malformed digest
	// is treated as a mismatch, never an error
	Verify(plaintext, digest string) bool
}

// BcryptHasher implements PasswordHasher using bcrypt. Each call to Hash
// salts independently, so hashing the same password twice yields
// different digests.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given work factor.
// A cost below bcrypt's minimum falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

var _ PasswordHasher = (*BcryptHasher)(nil)

// Hash produces a salted bcrypt digest of plaintext
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify compares plaintext against a stored digest in constant time
func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
