package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/hefica/hefica-backend/pkg/database"
)

func newTestDenylist(t *testing.T) (*SessionDenylist, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewSessionDenylist(&database.Redis{Client: client}), mr
}

func TestSessionDenylist_RevokeAndCheck(t *testing.T) {
	denylist, _ := newTestDenylist(t)
	ctx := context.Background()

	revoked, err := denylist.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "token-a", time.Hour))

	revoked, err = denylist.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = denylist.IsRevoked(ctx, "token-b")
	require.NoError(t, err)
	require.False(t, revoked, "revocation must not leak to other tokens")
}

func TestSessionDenylist_EntryExpires(t *testing.T) {
	denylist, mr := newTestDenylist(t)
	ctx := context.Background()

	require.NoError(t, denylist.Revoke(ctx, "token-a", time.Minute))

	mr.FastForward(2 * time.Minute)

	revoked, err := denylist.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	require.False(t, revoked, "denylist entry should expire with the session")
}

func TestSessionDenylist_KeysAreHashed(t *testing.T) {
	denylist, mr := newTestDenylist(t)
	ctx := context.Background()

	require.NoError(t, denylist.Revoke(ctx, "super-secret-token", time.Hour))

	for _, key := range mr.Keys() {
		require.NotContains(t, key, "super-secret-token")
	}
}
