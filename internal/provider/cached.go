package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"philcali.me/movies/internal/cache"
	"philcali.me/movies/internal/data"
)

// CachedProvider memoizes searches and lookups. Random discovery is never cached.
type CachedProvider struct {
	Provider MovieProvider
	Cache    cache.Cache
	TTL      time.Duration
	Logger   *slog.Logger
}

func NewCachedProvider(provider MovieProvider, c cache.Cache, ttl time.Duration, logger *slog.Logger) *CachedProvider {
	return &CachedProvider{
		Provider: provider,
		Cache:    c,
		TTL:      ttl,
		Logger:   logger,
	}
}

func _deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func _searchKey(input SearchInput) string {
	return fmt.Sprintf("search:%s:%d:%s:%s", strings.ToLower(strings.TrimSpace(input.Text)), input.Page, _deref(input.Type), _deref(input.Year))
}

func _cached[T interface{}](ctx context.Context, cp *CachedProvider, key string, fetch func() (T, error)) (T, error) {
	if body, ok, err := cp.Cache.Get(ctx, key); err != nil {
		cp.Logger.Warn("cache read failed", "key", key, "error", err)
	} else if ok {
		var thing T
		if err := json.Unmarshal(body, &thing); err == nil {
			cp.Logger.Debug("cache hit", "key", key)
			return thing, nil
		}
	}
	thing, err := fetch()
	if err != nil {
		return thing, err
	}
	if body, err := json.Marshal(thing); err == nil {
		if err := cp.Cache.Set(ctx, key, body, cp.TTL); err != nil {
			cp.Logger.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return thing, nil
}

func (cp *CachedProvider) Search(ctx context.Context, input SearchInput) (data.QueryResults[Movie], error) {
	return _cached(ctx, cp, _searchKey(input), func() (data.QueryResults[Movie], error) {
		return cp.Provider.Search(ctx, input)
	})
}

func (cp *CachedProvider) Lookup(ctx context.Context, imdbId string) (MovieDetails, error) {
	return _cached(ctx, cp, "lookup:"+imdbId, func() (MovieDetails, error) {
		return cp.Provider.Lookup(ctx, imdbId)
	})
}

func (cp *CachedProvider) Random(ctx context.Context) (data.QueryResults[Movie], error) {
	return cp.Provider.Random(ctx)
}
