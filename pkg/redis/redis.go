package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Alijeyrad/reqtrace/config"
)

var ErrEmptyAddr = errors.New("redis addr is empty")

// NewRedisFromCentral creates a new Redis client from central config
func NewRedisFromCentral(cfg config.RedisConfig) (*goredis.Client, error) {
	c := FromCentralConfig(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), c.DialTimeout)
	defer cancel()
	return NewRedis(ctx, c)
}

// NewRedis connects and pings; the client is closed again if the ping fails.
func NewRedis(ctx context.Context, cfg Config) (*goredis.Client, error) {
	if cfg.Addr == "" {
		return nil, ErrEmptyAddr
	}

	rdb := goredis.NewClient(cfg.Options())

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s failed: %w", cfg.Addr, err)
	}

	return rdb, nil
}
