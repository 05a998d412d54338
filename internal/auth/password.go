// Package auth provides password hashing, session tokens, and the
// middleware that guards authenticated routes.
//
// WHY BCRYPT?
// bcrypt is a password hashing function designed to be slow — that
// slowness is the security feature that makes brute-forcing stolen
// hashes expensive. It also generates and embeds a random salt per
// hash, so identical passwords produce different stored values.
//
// Never store passwords in plain text or with fast hashes (MD5,
// SHA-256); those fall to GPU rigs in minutes.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor for production use; roughly
// 250ms per hash on current server hardware. Tests inject
// bcrypt.MinCost instead so suites don't crawl.
const DefaultCost = 12

// ErrInvalidPassword is returned by Verify when the password does not
// match the stored hash. Callers should surface it as a generic
// credentials failure, never as "wrong password for this user".
var ErrInvalidPassword = errors.New("auth: invalid password")

// PasswordService hashes and verifies passwords. It is a struct (not
// free functions) so the cost can be injected — the config wires
// DefaultCost in production and the minimum in tests.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the given bcrypt
// cost. Costs below bcrypt's minimum are raised to the default.
func NewPasswordService(cost int) *PasswordService {
	if cost < bcrypt.MinCost {
		cost = DefaultCost
	}
	return &PasswordService{cost: cost}
}

// Hash hashes a plaintext password. The output is self-contained (salt
// and cost are embedded) and goes straight into the users table.
//
// Rejects plaintext over 72 bytes — bcrypt silently truncates beyond
// that, and silent truncation of passwords is worse than an error.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks a plaintext password against a stored hash. Returns
// ErrInvalidPassword on mismatch; any other error is an operational
// fault (corrupt hash, unsupported version).
//
// bcrypt.CompareHashAndPassword is constant-time internally, so this
// is safe against timing attacks.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
