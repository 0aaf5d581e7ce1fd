package cache

import (
	"context"
	"errors"
	"time"

	"event-api/core/config"
	"event-api/core/constants"
	"event-api/core/logger"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
	AddToTokenBlacklist(ctx context.Context, token string, ttl time.Duration) error
	IncrementLoginAttempt(ctx context.Context, key string) error
	IsLoginBlocked(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// InitCache connects to Redis and pings it once.
func InitCache(ctx context.Context, cfg config.RedisConfig) (*RedisCache, error) {
	c := NewRedisCache(NewRedisClient(cfg))
	if err := c.Ping(ctx); err != nil {
		logger.Error("Cache:InitCache:Ping", "error", err, "addr", cfg.Addr)
		return nil, err
	}
	logger.Info("Redis connection successfully opened", "addr", cfg.Addr)
	return c, nil
}

func (c *RedisCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := c.client.Exists(ctx, constants.RedisKeyTokenBlacklist+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AddToTokenBlacklist keeps the token blacklisted until it would have expired anyway.
func (c *RedisCache) AddToTokenBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, constants.RedisKeyTokenBlacklist+token, 1, ttl).Err()
}

func (c *RedisCache) IncrementLoginAttempt(ctx context.Context, key string) error {
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, constants.BlockDuration)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *RedisCache) IsLoginBlocked(ctx context.Context, key string) (bool, error) {
	count, err := c.client.Get(ctx, key).Int()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count >= constants.MaxLoginAttempts, nil
}

func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
