//go:build integration

package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRedisAddr string

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start Redis resource: %s", err)
	}
	testRedisAddr = resource.GetHostPort("6379/tcp")

	if err := pool.Retry(func() error {
		s, errRetry := NewRedisStore(context.Background(), testRedisAddr, "", 0, logger.NewNop())
		if errRetry != nil {
			return errRetry
		}
		return s.Close()
	}); err != nil {
		log.Fatalf("Could not connect to Redis: %s", err)
	}

	code := m.Run()

	if err := pool.Purge(resource); err != nil {
		fmt.Fprintf(os.Stderr, "Could not purge Redis resource: %s\n", err)
	}
	os.Exit(code)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Config{Driver: "redis", RedisAddress: testRedisAddr}, logger.NewNop())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, KeyToken, "abc"))
	v, ok, err := s.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	require.NoError(t, s.Delete(ctx, KeyToken, KeyUser))
	_, ok, err = s.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
}
