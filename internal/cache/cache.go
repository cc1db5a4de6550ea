package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"philcali.me/movies/internal/config"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type RedisCache struct {
	Client *redis.Client
	Prefix string
}

func (rc *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := rc.Client.Get(ctx, rc.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (rc *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return rc.Client.Set(ctx, rc.Prefix+key, value, ttl).Err()
}

// MemoryCache is an in-process LRU. Entries share the TTL given at construction.
type MemoryCache struct {
	lru *expirable.LRU[string, []byte]
}

func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = 128
	}
	return &MemoryCache{
		lru: expirable.NewLRU[string, []byte](size, nil, ttl),
	}
}

func (mc *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok := mc.lru.Get(key)
	return value, ok, nil
}

func (mc *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	mc.lru.Add(key, value)
	return nil
}

// New connects to Redis when an address is configured, and falls back to
// an in-process cache when it is not or when Redis cannot be reached.
func New(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) Cache {
	if cfg.RedisAddr == "" {
		return NewMemoryCache(cfg.Size, cfg.TTL)
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, using in-memory cache", "addr", cfg.RedisAddr, "error", err)
		_ = rdb.Close()
		return NewMemoryCache(cfg.Size, cfg.TTL)
	}
	logger.Info("redis connected", "addr", cfg.RedisAddr)
	return &RedisCache{
		Client: rdb,
		Prefix: "movies:",
	}
}
