package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"roomrent/errors"
	"roomrent/services/logger"
)

// RoomLocker serialises booking writes per room.
// The returned unlock func must be called once the write has committed or failed.
type RoomLocker interface {
	Lock(ctx context.Context, roomID uint) (unlock func(), err error)
}

const (
	defaultLockTTL   = 10 * time.Second
	lockRetryBackoff = 25 * time.Millisecond
)

func roomLockKey(roomID uint) string {
	return fmt.Sprintf("lock:room:%d", roomID)
}

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisRoomLocker holds a SET NX PX key per room so every instance sees the same lock
type RedisRoomLocker struct {
	rdb *redis.Client
	ttl time.Duration
	// wait bounds how long Lock retries before giving up
	wait   time.Duration
	logger logger.Logger
}

func NewRedisRoomLocker(rdb *redis.Client, ttl time.Duration, log logger.Logger) *RedisRoomLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &RedisRoomLocker{rdb: rdb, ttl: ttl, wait: ttl, logger: log}
}

func (l *RedisRoomLocker) Lock(ctx context.Context, roomID uint) (func(), error) {
	key := roomLockKey(roomID)
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, errors.NewAppError(errors.ErrCodeDBError, "room lock unavailable", err)
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}
		if time.Now().After(deadline) {
			return nil, roomBusy(roomID)
		}

		select {
		case <-ctx.Done():
			return nil, roomBusy(roomID)
		case <-time.After(lockRetryBackoff):
		}
	}
}

// release deletes the key while it still holds token. It runs even if the
// request context is already gone; a failed release leaves the key to expire.
func (l *RedisRoomLocker) release(key, token string) {
	err := releaseScript.Run(context.Background(), l.rdb, []string{key}, token).Err()
	if err != nil && err != redis.Nil {
		l.logger.Error("release %s: %v (held until ttl %s)", key, err, l.ttl)
	}
}

// LocalRoomLocker is the single-process fallback used when Redis is not configured.
// A room's slot lives only while someone holds or waits for it.
type LocalRoomLocker struct {
	mu    sync.Mutex
	rooms map[uint]*roomSlot
}

type roomSlot struct {
	ch chan struct{}
	// refs counts holders and waiters; guarded by LocalRoomLocker.mu
	refs int
}

func NewLocalRoomLocker() *LocalRoomLocker {
	return &LocalRoomLocker{rooms: make(map[uint]*roomSlot)}
}

func (l *LocalRoomLocker) acquire(roomID uint) *roomSlot {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot, ok := l.rooms[roomID]
	if !ok {
		slot = &roomSlot{ch: make(chan struct{}, 1)}
		l.rooms[roomID] = slot
	}
	slot.refs++
	return slot
}

func (l *LocalRoomLocker) drop(roomID uint, slot *roomSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot.refs--
	if slot.refs == 0 {
		delete(l.rooms, roomID)
	}
}

func (l *LocalRoomLocker) Lock(ctx context.Context, roomID uint) (func(), error) {
	slot := l.acquire(roomID)
	select {
	case slot.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-slot.ch
				l.drop(roomID, slot)
			})
		}, nil
	case <-ctx.Done():
		l.drop(roomID, slot)
		return nil, roomBusy(roomID)
	}
}

// held reports how many rooms currently have a slot
func (l *LocalRoomLocker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.rooms)
}

// NewRoomLocker picks the Redis locker when a client is available
func NewRoomLocker(rdb *redis.Client, ttl time.Duration, log logger.Logger) RoomLocker {
	if rdb == nil {
		return NewLocalRoomLocker()
	}
	return NewRedisRoomLocker(rdb, ttl, log)
}

func roomBusy(roomID uint) error {
	return errors.Conflict("room is being updated by another request, try again").
		WithDetail("roomId", roomID)
}
