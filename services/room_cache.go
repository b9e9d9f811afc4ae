package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"roomrent/models"
	"roomrent/repositories"
)

// RoomCache caches public room listings per filter.
// GetPublicRooms returns the key a miss should be filled under; the key pins the
// cache version seen by the lookup, so a fill racing Invalidate lands in the old
// namespace. Invalidate drops every cached listing at once.
type RoomCache interface {
	GetPublicRooms(ctx context.Context, filter repositories.RoomFilter) (rooms []models.Room, key string, ok bool)
	SetPublicRooms(ctx context.Context, key string, rooms []models.Room)
	Invalidate(ctx context.Context) error
}

const roomCacheVersionKey = "rooms:public:version"

// RedisRoomCache namespaces entries under a version counter; bumping the
// counter orphans old entries, which then expire on their TTL.
type RedisRoomCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRoomCache(rdb *redis.Client, ttl time.Duration) *RedisRoomCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisRoomCache{rdb: rdb, ttl: ttl}
}

func (c *RedisRoomCache) key(ctx context.Context, filter repositories.RoomFilter) (string, error) {
	version, err := c.rdb.Get(ctx, roomCacheVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("rooms:public:v%d:%s", version, filterKey(filter)), nil
}

func (c *RedisRoomCache) GetPublicRooms(ctx context.Context, filter repositories.RoomFilter) ([]models.Room, string, bool) {
	key, err := c.key(ctx, filter)
	if err != nil {
		return nil, "", false
	}
	var rooms []models.Room
	found, err := GetFromRedis(ctx, c.rdb, key, &rooms)
	if err != nil || !found {
		return nil, key, false
	}
	return rooms, key, true
}

// SetPublicRooms stores rooms under a key returned by GetPublicRooms; an empty key is ignored
func (c *RedisRoomCache) SetPublicRooms(ctx context.Context, key string, rooms []models.Room) {
	if key == "" {
		return
	}
	if err := SetToRedis(ctx, c.rdb, key, rooms, c.ttl); err != nil {
		log.Printf("Error caching room listing %s: %v", key, err)
	}
}

func (c *RedisRoomCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, roomCacheVersionKey).Err()
}

// NopRoomCache never hits
type NopRoomCache struct{}

func (NopRoomCache) GetPublicRooms(context.Context, repositories.RoomFilter) ([]models.Room, string, bool) {
	return nil, "", false
}

func (NopRoomCache) SetPublicRooms(context.Context, string, []models.Room) {}

func (NopRoomCache) Invalidate(context.Context) error { return nil }

// NewRoomCache picks the Redis cache when a client is available
func NewRoomCache(rdb *redis.Client, ttl time.Duration) RoomCache {
	if rdb == nil {
		return NopRoomCache{}
	}
	return NewRedisRoomCache(rdb, ttl)
}

func filterKey(f repositories.RoomFilter) string {
	min, max, beds := "-", "-", "-"
	if f.MinPrice != nil {
		min = f.MinPrice.String()
	}
	if f.MaxPrice != nil {
		max = f.MaxPrice.String()
	}
	if f.Bedrooms != nil {
		beds = fmt.Sprint(*f.Bedrooms)
	}
	return min + ":" + max + ":" + beds
}
