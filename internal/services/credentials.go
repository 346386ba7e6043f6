package services

import (
	"golang.org/x/crypto/bcrypt"
)

// CredentialStore hashes and verifies passwords with bcrypt. Hashes are
// salted, so hashing the same password twice yields different digests.
type CredentialStore struct {
	cost int
}

// NewCredentialStore creates a CredentialStore. Costs outside bcrypt's range
// fall back to bcrypt.DefaultCost.
func NewCredentialStore(cost int) *CredentialStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &CredentialStore{cost: cost}
}

// Hash returns the bcrypt digest of password.
func (s *CredentialStore) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches digest.
func (s *CredentialStore) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
