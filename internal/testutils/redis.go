// Package testutils provides shared fixtures for tests: the reference data
// fixture and in-memory Redis helpers.
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/deck-api/internal/redis"
)

// CreateTestRedisClient creates a Redis client backed by miniredis. The
// server is closed when the test finishes.
func CreateTestRedisClient(t *testing.T) (redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")
	t.Cleanup(mr.Close)

	client, err := redis.New([]string{mr.Addr()}, &redis.Options{MaxRetries: -1})
	require.NoError(t, err, "failed to create redis client")
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}
