package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the bcrypt cost used when BCRYPT_COST is not set
	DefaultCost = 10
)

var (
	// ErrHashing is returned when a password digest cannot be produced
	ErrHashing = errors.New("password hashing failed")
	// ErrMalformedHash is returned when a stored digest is not a bcrypt hash
	ErrMalformedHash = errors.New("malformed password hash")
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomRead                 = rand.Read
)

// Hasher hashes and verifies passwords with a fixed bcrypt cost
type Hasher struct {
	cost int
}

// NewHasher creates a hasher. A zero cost is kept as-is so Hash can report
// the missing configuration instead of silently picking a default.
func NewHasher(cost int) *Hasher {
	return &Hasher{cost: cost}
}

// Cost returns the configured bcrypt cost
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash hashes a password using bcrypt
func (h *Hasher) Hash(password string) (string, error) {
	if h == nil || h.cost == 0 {
		return "", fmt.Errorf("%w: bcrypt cost is not configured", ErrHashing)
	}
	bytes, err := bcryptGenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashing, err)
	}
	return string(bytes), nil
}

// Verify compares a password with a digest. A mismatch is not an error.
func (h *Hasher) Verify(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}

// GenerateRandomToken generates a random token of specified length
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
