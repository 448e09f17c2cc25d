package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenDenylist_RevokeAndExpire(t *testing.T) {
	srv := useMiniredis(t)
	ctx := context.Background()
	d := NewTokenDenylist()

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, srv.Exists(denylistPrefix+"jti-1"))

	srv.FastForward(2 * time.Minute)
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenDenylist_EdgeCases(t *testing.T) {
	srv := useMiniredis(t)
	ctx := context.Background()
	d := NewTokenDenylist()

	assert.Error(t, d.Revoke(ctx, "", time.Minute))

	require.NoError(t, d.Revoke(ctx, "expired", 0))
	assert.False(t, srv.Exists(denylistPrefix+"expired"))

	revoked, err := d.IsRevoked(ctx, "")
	require.NoError(t, err)
	assert.False(t, revoked)
}
