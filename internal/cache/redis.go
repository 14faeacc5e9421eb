package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/client-registry/internal/models"
)

const (
	keyPrefix = "clients:"

	// generations outlive entries so a slow reader cannot see a reset
	// counter.
	generationTTL = 24 * time.Hour
)

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

// Dial parses a redis:// URL and checks the server is reachable.
func Dial(ctx context.Context, url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect redis: %w", err)
	}

	return NewRedisCache(rdb, ttl), nil
}

func Key(id uint) string {
	return fmt.Sprintf("%s%d", keyPrefix, id)
}

// GenerationKey holds the invalidation counter for id.
func GenerationKey(id uint) string {
	return Key(id) + ":gen"
}

func (c *RedisCache) Get(ctx context.Context, id uint) (*models.Client, bool, error) {
	raw, err := c.rdb.Get(ctx, Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var client models.Client
	if err := json.Unmarshal(raw, &client); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry %s: %w", Key(id), err)
	}
	return &client, true, nil
}

func (c *RedisCache) Generation(ctx context.Context, id uint) (int64, error) {
	gen, err := c.rdb.Get(ctx, GenerationKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Set writes client only while its id is still at generation. A skipped
// write is not an error.
func (c *RedisCache) Set(ctx context.Context, client *models.Client, generation int64) error {
	raw, err := json.Marshal(client)
	if err != nil {
		return err
	}

	genKey := GenerationKey(client.ID)

	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if errors.Is(err, redis.Nil) {
			current, err = 0, nil
		}
		if err != nil {
			return err
		}
		if current != generation {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, Key(client.ID), raw, c.ttl)
			return nil
		})
		return err
	}, genKey)

	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *RedisCache) Invalidate(ctx context.Context, id uint) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey(id))
		pipe.Expire(ctx, GenerationKey(id), generationTTL)
		pipe.Del(ctx, Key(id))
		return nil
	})
	return err
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

var _ ClientCache = (*RedisCache)(nil)
