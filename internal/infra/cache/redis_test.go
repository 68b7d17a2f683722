package cache_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slogsolutions/Audit-Management-Platform/config"
	"github.com/slogsolutions/Audit-Management-Platform/internal/infra/cache"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := cache.NewRedisClient(config.RedisConfig{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	mr.CheckGet(t, "k", "v")
}

func TestNewRedisClient_Errors(t *testing.T) {
	_, err := cache.NewRedisClient(config.RedisConfig{URL: "not a url"})
	assert.ErrorContains(t, err, "failed to parse redis url")

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err = cache.NewRedisClient(config.RedisConfig{URL: "redis://" + addr})
	assert.ErrorContains(t, err, "failed to connect to redis")
}
