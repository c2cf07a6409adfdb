package spin

import (
	"context"
	"time"

	"librarium/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const spinLockPrefix = "spin:lock:"

// Locker serializes spins of the same user across instances.
type Locker interface {
	Acquire(ctx context.Context, userID string) (release func(), err error)
}

type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl}
}

// Deletes the key only if we still own it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

func (l *RedisLocker) Acquire(ctx context.Context, userID string) (func(), error) {
	key := spinLockPrefix + userID
	token := uuid.New().String()
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, utils.StorageError("acquire spin lock", err)
	}
	if !ok {
		return nil, ErrSpinInProgress
	}
	return func() {
		// The request context may already be done.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil && err != redis.Nil {
			utils.GetLogger().Warn("spin lock release failed", zap.String("userID", userID), zap.Error(err))
		}
	}, nil
}
