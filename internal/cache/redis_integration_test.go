//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestCache(t *testing.T) *RedisCache {
	ctx := context.Background()

	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		redisC.Terminate(ctx)
	})

	host, err := redisC.Host(ctx)
	require.NoError(t, err)

	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: host + ":" + port.Port()})
	t.Cleanup(func() {
		client.Close()
	})

	return NewRedisCache(client, "test:")
}

func TestRedisCache(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	c := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	_, err := c.Get(ctx, "absent")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))
	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	require.NoError(t, c.Set(ctx, "short", []byte("gone"), 50*time.Millisecond))
	time.Sleep(200 * time.Millisecond)
	_, err = c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrMiss)
}
