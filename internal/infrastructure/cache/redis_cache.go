package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type RedisBalanceCache struct {
	client *redis.Client
}

// NewRedisBalanceCache connects to Redis for read-path balance caching.
func NewRedisBalanceCache(addr string, password string, db int) *RedisBalanceCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisBalanceCache{client: client}
}

func (c *RedisBalanceCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisBalanceCache) Close() error {
	return c.client.Close()
}

func balanceKey(methodID uuid.UUID) string {
	return "balance:" + methodID.String()
}

func (c *RedisBalanceCache) Get(ctx context.Context, methodID uuid.UUID) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, balanceKey(methodID)).Result()
	if err == redis.Nil {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}

	balance, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false, err
	}
	return balance, true, nil
}

func (c *RedisBalanceCache) Set(ctx context.Context, methodID uuid.UUID, balance decimal.Decimal, ttl time.Duration) error {
	return c.client.Set(ctx, balanceKey(methodID), balance.String(), ttl).Err()
}

func (c *RedisBalanceCache) Invalidate(ctx context.Context, methodID uuid.UUID) error {
	return c.client.Del(ctx, balanceKey(methodID)).Err()
}
