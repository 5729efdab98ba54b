package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/page-comments-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps keys in redis under "<namespace>:<key>" and relies on
// redis expiry for TTLs
type RedisStore struct {
	client    redis.UniversalClient
	namespace string
}

// NewRedisClient opens a redis client from configuration
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewRedisStore creates a namespaced store on top of an existing client
func NewRedisStore(client redis.UniversalClient, namespace string) *RedisStore {
	return &RedisStore{client: client, namespace: namespace}
}

func (s *RedisStore) key(key string) string {
	return s.namespace + ":" + key
}

// Get returns the value stored under key, if it has not expired
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", s.key(key), err)
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value and TTL
func (s *RedisStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("redis put %s: ttl must be positive", s.key(key))
	}
	if err := s.client.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis put %s: %w", s.key(key), err)
	}
	return nil
}

// Ping checks the redis connection
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
