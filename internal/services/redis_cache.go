package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisDialTimeout = 3 * time.Second
	redisIOTimeout   = 2 * time.Second
	redisKeyPrefix   = "lookout:dd:"
)

// NewRedisClient parses a Redis URL and checks the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	opts.DialTimeout = redisDialTimeout
	opts.ReadTimeout = redisIOTimeout
	opts.WriteTimeout = redisIOTimeout

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisIOTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Printf("Connected to redis at %s", opts.Addr)
	return client, nil
}

// RedisDocumentCache shares fetched Data Dragon documents between service
// instances. Entries expire after ttl.
type RedisDocumentCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDocumentCache(client *redis.Client, ttl time.Duration) *RedisDocumentCache {
	return &RedisDocumentCache{client: client, ttl: ttl}
}

func (c *RedisDocumentCache) Name() string { return "redis" }

func (c *RedisDocumentCache) Fetch(ctx context.Context, docPath string) ([]byte, error) {
	data, err := c.client.Get(ctx, redisKeyPrefix+docPath).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, docPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached document: %w", err)
	}
	return data, nil
}

func (c *RedisDocumentCache) Store(ctx context.Context, docPath string, data []byte) error {
	if err := c.client.Set(ctx, redisKeyPrefix+docPath, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache document: %w", err)
	}
	return nil
}
