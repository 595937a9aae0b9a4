package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes passwords with bcrypt after keying them with a
// server-side pepper through HMAC-SHA256. The HMAC step also keeps the bcrypt
// input at 32 bytes, so long passwords are not silently truncated.
type PasswordHasher struct {
	pepper []byte
	cost   int

	absentOnce   sync.Once
	absentDigest []byte
}

// NewPasswordHasher creates a hasher. A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewPasswordHasher(pepper string, cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{pepper: []byte(pepper), cost: cost}
}

// Hash returns the bcrypt digest of the peppered password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(h.applyPepper(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether password matches the stored digest.
// A malformed digest never matches.
func (h *PasswordHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), h.applyPepper(password)) == nil
}

// VerifyAbsent runs a full compare against a throwaway digest of the same
// cost and always reports false. Callers use it when no account matched, so
// that path costs as much as a wrong password.
func (h *PasswordHasher) VerifyAbsent(password string) bool {
	h.absentOnce.Do(func() {
		digest, err := bcrypt.GenerateFromPassword(h.applyPepper("absent-account"), h.cost)
		if err == nil {
			h.absentDigest = digest
		}
	})
	_ = bcrypt.CompareHashAndPassword(h.absentDigest, h.applyPepper(password))
	return false
}

func (h *PasswordHasher) applyPepper(password string) []byte {
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(password)) // never fails for sha256
	return mac.Sum(nil)
}
