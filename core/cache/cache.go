package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tutortrack/core/config"
	"tutortrack/core/constants"
	"tutortrack/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is the redis-backed cache contract used across modules
type Cache interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error

	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	GetJSON(ctx context.Context, key string, dest any) (bool, error)

	AddToTokenBlacklist(ctx context.Context, token string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)

	IncrementLoginAttempt(ctx context.Context, key string) (int64, error)
	IsLoginBlocked(ctx context.Context, key string) (bool, error)

	SetOAuthState(ctx context.Context, state string, ttl time.Duration) error
	ConsumeOAuthState(ctx context.Context, state string) (bool, error)

	// EventsVersion is a per-owner stamp used to key cached occurrence
	// expansions; bumping it invalidates every cached window at once
	EventsVersion(ctx context.Context, ownerID string) (int64, error)
	BumpEventsVersion(ctx context.Context, ownerID string) error

	Client() *redis.Client
}

type redisCache struct {
	client *redis.Client
}

// InitRedis connects to redis and returns the Cache implementation
func InitRedis(cfg *config.Config) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Cache:InitRedis:Ping", err)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis initialized successfully", "addr", cfg.RedisAddr(), "db", cfg.Redis.DB)
	return &redisCache{client: client}, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (c *redisCache) Del(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.client.Expire(ctx, key, ttl).Err()
}

func (c *redisCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *redisCache) AddToTokenBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	return c.client.Set(ctx, constants.RedisKeyTokenBlacklist+token, "1", ttl).Err()
}

func (c *redisCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := c.client.Exists(ctx, constants.RedisKeyTokenBlacklist+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *redisCache) IncrementLoginAttempt(ctx context.Context, key string) (int64, error) {
	fullKey := constants.RedisKeyLoginAttempt + key
	n, err := c.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		c.client.Expire(ctx, fullKey, constants.BlockDuration)
	}
	return n, nil
}

func (c *redisCache) IsLoginBlocked(ctx context.Context, key string) (bool, error) {
	val, err := c.client.Get(ctx, constants.RedisKeyLoginAttempt+key).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val >= constants.MaxLoginAttempts, nil
}

func (c *redisCache) SetOAuthState(ctx context.Context, state string, ttl time.Duration) error {
	return c.client.Set(ctx, constants.RedisKeyOAuthState+state, "1", ttl).Err()
}

func (c *redisCache) ConsumeOAuthState(ctx context.Context, state string) (bool, error) {
	n, err := c.client.Del(ctx, constants.RedisKeyOAuthState+state).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *redisCache) EventsVersion(ctx context.Context, ownerID string) (int64, error) {
	val, err := c.client.Get(ctx, constants.RedisKeyEventsVersion+ownerID).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}

func (c *redisCache) BumpEventsVersion(ctx context.Context, ownerID string) error {
	return c.client.Incr(ctx, constants.RedisKeyEventsVersion+ownerID).Err()
}

func (c *redisCache) Client() *redis.Client {
	return c.client
}
