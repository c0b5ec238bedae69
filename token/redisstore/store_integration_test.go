//go:build integration

package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-rider-auth/scope"
	"github.com/jrsteele09/go-rider-auth/token"
	"github.com/jrsteele09/go-rider-auth/token/redisstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	addr, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(addr)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	client := startRedis(t)
	store := redisstore.New(client)

	m, err := token.NewManager(store)
	require.NoError(t, err)

	tok := token.New("abc123", time.Now().Add(time.Hour), scope.NewSet(scope.Profile, scope.RideWidgets))
	require.NoError(t, m.Set(ctx, tok, ""))

	fields, err := client.HGetAll(ctx, "riderauth:token:"+token.DefaultKey).Result()
	require.NoError(t, err)
	require.Equal(t, "abc123", fields["defaultAccessToken_token"])
	require.Equal(t, "PROFILE RIDE_WIDGETS", fields["defaultAccessToken_scopes"])

	got, err := m.Get(ctx, "")
	require.NoError(t, err)
	require.True(t, tok.Equal(got))

	t.Run("partial hash reads as absent", func(t *testing.T) {
		require.NoError(t, client.HSet(ctx, "riderauth:token:torn", "torn_token", "x").Err())
		got, err := m.Get(ctx, "torn")
		require.NoError(t, err)
		require.Nil(t, got)
	})

	require.NoError(t, m.Remove(ctx, ""))
	got, err = m.Get(ctx, "")
	require.NoError(t, err)
	require.Nil(t, got)
}
