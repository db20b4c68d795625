// Package storage is the durable local state of the client: a tiny
// string key/value store holding the bearer token and the cached profile.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
)

const (
	KeyToken = "token"
	KeyUser  = "user"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

type Store interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

type Config struct {
	Driver        string
	SQLitePath    string
	RedisAddress  string
	RedisPassword string
	RedisDB       int
}

// Open picks the backend named by cfg.Driver.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return NewSQLiteStore(ctx, cfg.SQLitePath, log)
	case "redis":
		return NewRedisStore(ctx, cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
