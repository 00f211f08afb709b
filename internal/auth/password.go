package auth

import (
	"fmt"
	"strings"

	"github.com/blossomhq/blossom/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost mirrors bcrypt's own default. Higher is slower but
// harder to brute-force.
const DefaultBcryptCost = 10

// Password bounds enforced by ValidatePassword.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 50
)

// PasswordValidation carries every rule a password violated, not just the
// first, so clients can show the full list.
type PasswordValidation struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Hasher hashes and verifies passwords with bcrypt.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher. A cost outside bcrypt's supported range
// falls back to the default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &Hasher{cost: cost}
}

// Hash hashes a plaintext password. Passwords shorter than the minimum are
// rejected before any hashing happens.
func (h *Hasher) Hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters long", model.ErrValidation, MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Check reports whether password matches hash. Missing arguments are a
// mismatch, never an error.
func (h *Hasher) Check(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword checks strength rules and returns all violations.
func ValidatePassword(password string) PasswordValidation {
	var errs []string

	if password == "" {
		errs = append(errs, "Password is required")
	} else {
		if len(password) < MinPasswordLength {
			errs = append(errs, fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
		}
		if len(password) > MaxPasswordLength {
			errs = append(errs, fmt.Sprintf("Password must not exceed %d characters", MaxPasswordLength))
		}
		if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
			errs = append(errs, "Password must contain at least one uppercase letter")
		}
		if !strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) {
			errs = append(errs, "Password must contain at least one number")
		}
	}

	return PasswordValidation{IsValid: len(errs) == 0, Errors: errs}
}

// PasswordTips returns static guidance for choosing a password.
func PasswordTips() []string {
	return []string{
		"Like a cherry blossom, make it beautiful but strong",
		"At least 6 petals (characters) long",
		"Mix different types of petals (letters, numbers)",
		"Avoid common patterns that are easy to guess",
	}
}
