package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/grayvally/invoicer-api/internal/domain"
	"github.com/grayvally/invoicer-api/internal/domain/repository"
	"github.com/grayvally/invoicer-api/pkg/config"
)

// Ensure RedisStore implements repository.KVStore
var _ repository.KVStore = (*RedisStore)(nil)

// RedisStore persists entries in Redis. Entries carry no TTL; the draft cache
// lives until an explicit reset, same as every other backend.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects and pings the server.
func NewRedisStore(ctx context.Context, cfg config.StorageConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to Redis at %s: %w", cfg.RedisAddr, err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis remove: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
