package car

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const listCacheKey = "cache:cars"

// Cache holds the full catalog listing. A miss is reported as (nil, nil).
type Cache interface {
	GetList(ctx context.Context) ([]*Car, error)
	SetList(ctx context.Context, cars []*Car) error
	Invalidate(ctx context.Context) error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) GetList(ctx context.Context) ([]*Car, error) {
	data, err := c.client.Get(ctx, listCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	cars := []*Car{}
	if err := json.Unmarshal(data, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

func (c *RedisCache) SetList(ctx context.Context, cars []*Car) error {
	if cars == nil {
		cars = []*Car{}
	}
	payload, err := json.Marshal(cars)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listCacheKey, payload, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, listCacheKey).Err()
}
