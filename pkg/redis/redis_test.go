package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedTown struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func setupCache(t *testing.T) (*miniredis.Miniredis, *Cache) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return mr, NewCache(rdb, "near_address", time.Hour)
}

func TestCache_Miss(t *testing.T) {
	_, cache := setupCache(t)

	var dest []cachedTown
	found, err := cache.GetJSON(context.Background(), "11290", &dest)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, dest)
}

func TestCache_SetAndGet(t *testing.T) {
	mr, cache := setupCache(t)
	ctx := context.Background()

	towns := []cachedTown{
		{Code: "1129011100", Name: "성북구 삼선동1가"},
		{Code: "1129011200", Name: "성북구 삼선동2가"},
	}
	require.NoError(t, cache.SetJSON(ctx, "11290", towns))

	assert.True(t, mr.Exists("near_address:11290"))
	assert.Equal(t, time.Hour, mr.TTL("near_address:11290"))

	var got []cachedTown
	found, err := cache.GetJSON(ctx, "11290", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, towns, got)
}

func TestCache_Expiry(t *testing.T) {
	mr, cache := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetJSON(ctx, "11290", []cachedTown{{Code: "1129011100"}}))
	mr.FastForward(2 * time.Hour)

	var got []cachedTown
	found, err := cache.GetJSON(ctx, "11290", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
