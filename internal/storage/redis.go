package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "lostpets:"

type RedisStore struct {
	client *redis.Client
	logger *logger.Logger
}

func NewRedisStore(ctx context.Context, addr, password string, db int, log *logger.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	log.Info("Redis local storage ready", zap.String("address", addr), zap.Int("db", db))
	return &RedisStore{client: client, logger: log.Named("RedisStore")}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Error("failed to read key", zap.String("key", key), zap.Error(err))
		return "", false, err
	}
	return value, true, nil
}

// Set stores without expiry: the token lives until logout or rejection.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, redisKeyPrefix+key, value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = redisKeyPrefix + k
	}
	return s.client.Del(ctx, prefixed...).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
