package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomrent/models"
	"roomrent/repositories"
)

func TestRedisRoomCacheRoundTripAndInvalidate(t *testing.T) {
	_, rdb := newTestRedis(t)
	cache := NewRedisRoomCache(rdb, time.Minute)
	ctx := context.Background()

	min := decimal.NewFromInt(500)
	filter := repositories.RoomFilter{MinPrice: &min}
	rooms := []models.Room{{ID: 1, Title: "Loft", City: "Pokhara", MonthlyRent: decimal.NewFromInt(800)}}

	_, key, ok := cache.GetPublicRooms(ctx, filter)
	assert.False(t, ok)
	assert.Equal(t, "rooms:public:v0:500:-:-", key)

	cache.SetPublicRooms(ctx, key, rooms)
	got, _, ok := cache.GetPublicRooms(ctx, filter)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Loft", got[0].Title)
	assert.True(t, got[0].MonthlyRent.Equal(decimal.NewFromInt(800)))

	_, _, ok = cache.GetPublicRooms(ctx, repositories.RoomFilter{})
	assert.False(t, ok, "other filters have their own entry")

	require.NoError(t, cache.Invalidate(ctx))
	_, key, ok = cache.GetPublicRooms(ctx, filter)
	assert.False(t, ok)
	assert.Equal(t, "rooms:public:v1:500:-:-", key)
}

func TestRedisRoomCacheFillAfterInvalidateStaysHidden(t *testing.T) {
	_, rdb := newTestRedis(t)
	cache := NewRedisRoomCache(rdb, time.Minute)
	ctx := context.Background()

	_, key, ok := cache.GetPublicRooms(ctx, repositories.RoomFilter{})
	require.False(t, ok)

	// a booking is confirmed while the listing is being loaded
	require.NoError(t, cache.Invalidate(ctx))
	cache.SetPublicRooms(ctx, key, []models.Room{{ID: 1, IsAvailable: true}})

	_, _, ok = cache.GetPublicRooms(ctx, repositories.RoomFilter{})
	assert.False(t, ok, "listing loaded before the invalidation must not be served")
}

func TestRedisRoomCacheIgnoresEmptyKey(t *testing.T) {
	mr, rdb := newTestRedis(t)
	cache := NewRedisRoomCache(rdb, time.Minute)

	cache.SetPublicRooms(context.Background(), "", []models.Room{{ID: 1}})
	assert.Empty(t, mr.Keys())
}

func TestFilterKey(t *testing.T) {
	min := decimal.RequireFromString("100.5")
	beds := 2

	assert.Equal(t, "-:-:-", filterKey(repositories.RoomFilter{}))
	assert.Equal(t, "100.5:-:2", filterKey(repositories.RoomFilter{MinPrice: &min, Bedrooms: &beds}))
}

func TestNewRoomCacheWithoutRedis(t *testing.T) {
	cache := NewRoomCache(nil, time.Minute)

	_, key, ok := cache.GetPublicRooms(context.Background(), repositories.RoomFilter{})
	assert.False(t, ok)
	cache.SetPublicRooms(context.Background(), key, []models.Room{{ID: 1}})
	_, _, ok = cache.GetPublicRooms(context.Background(), repositories.RoomFilter{})
	assert.False(t, ok)
	assert.NoError(t, cache.Invalidate(context.Background()))
}
