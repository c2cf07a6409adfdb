package wheel

import (
	"context"
	"encoding/json"
	"time"

	"librarium/models"

	"github.com/go-redis/redis/v8"
)

const wheelCachePrefix = "wheel:settings:"

// WheelCache holds recently read wheels. A miss returns (nil, nil).
type WheelCache interface {
	Get(ctx context.Context, id string) (*models.WheelSettings, error)
	Set(ctx context.Context, wheel *models.WheelSettings) error
	Invalidate(ctx context.Context, id string) error
}

type RedisWheelCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisWheelCache(client *redis.Client, ttl time.Duration) *RedisWheelCache {
	return &RedisWheelCache{client: client, ttl: ttl}
}

func (c *RedisWheelCache) Get(ctx context.Context, id string) (*models.WheelSettings, error) {
	data, err := c.client.Get(ctx, wheelCachePrefix+id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var w models.WheelSettings
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *RedisWheelCache) Set(ctx context.Context, wheel *models.WheelSettings) error {
	b, err := json.Marshal(wheel)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, wheelCachePrefix+wheel.ID, b, c.ttl).Err()
}

func (c *RedisWheelCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, wheelCachePrefix+id).Err()
}
