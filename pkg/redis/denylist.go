package redis

import (
	"context"
	"errors"
	"time"
)

const denylistPrefix = "auth:denied-jti:"

// TokenDenylist remembers access-token ids revoked by logout until they expire
type TokenDenylist struct {
	prefix string
}

var (
	setDenylistValue    = Set
	existsDenylistValue = Exists
)

// NewTokenDenylist creates a denylist backed by the package Redis client
func NewTokenDenylist() *TokenDenylist {
	return &TokenDenylist{prefix: denylistPrefix}
}

// Revoke denies tokenID for ttl. Non-positive ttl means the token already
// expired and nothing is stored.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("token id is required")
	}
	if ttl <= 0 {
		return nil
	}
	return setDenylistValue(ctx, d.prefix+tokenID, "1", ttl)
}

// IsRevoked reports whether tokenID was revoked
func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	return existsDenylistValue(ctx, d.prefix+tokenID)
}
