package settings

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/foureyedgems/admin-api/internal/platform/constants"
)

// Cache is a Redis read-through layer for the settings document.
//
// Cache failures are never surfaced to callers; the database remains the
// source of truth and a cold or broken cache only costs latency.
type Cache struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

func NewCache(client *redis.Client, logger *slog.Logger) *Cache {
	return &Cache{
		client: client,
		logger: logger,
		ttl:    constants.RedisSettingsTTL,
	}
}

// Get returns the cached document, or found=false on miss or cache error.
func (cache *Cache) Get(context context.Context) ([]byte, bool) {
	if cache == nil || cache.client == nil {
		return nil, false
	}

	data, err := cache.client.Get(context, constants.RedisPrefixSettings).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		cache.logger.WarnContext(context, "settings_cache_read_failed", slog.Any("error", err))
		return nil, false
	}
	return data, true
}

// Set stores the document with the configured TTL.
func (cache *Cache) Set(context context.Context, data []byte) {
	if cache == nil || cache.client == nil {
		return
	}

	if err := cache.client.Set(context, constants.RedisPrefixSettings, data, cache.ttl).Err(); err != nil {
		cache.logger.WarnContext(context, "settings_cache_write_failed", slog.Any("error", err))
	}
}

// Invalidate drops the cached document. Called after every write.
func (cache *Cache) Invalidate(context context.Context) {
	if cache == nil || cache.client == nil {
		return
	}

	if err := cache.client.Del(context, constants.RedisPrefixSettings).Err(); err != nil {
		cache.logger.WarnContext(context, "settings_cache_invalidate_failed", slog.Any("error", err))
	}
}
