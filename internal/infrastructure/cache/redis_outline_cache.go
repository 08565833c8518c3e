package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/workplan/backend/internal/domain/workpackage"
)

// Constants for Redis cache configuration
const (
	defaultScanBatchSize = 100
	defaultOutlineTTL    = 5 * time.Minute
)

// RedisConfig holds connection settings for a Redis cache backend
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisOutlineCache implements workpackage.OutlineCache using Redis.
// Cached payloads are outline projections keyed by visibility state, so
// all keys of a project are dropped together on invalidation.
type RedisOutlineCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	defaultTTL time.Duration
	logger     *zap.Logger
}

// RedisOutlineCacheOption is a functional option for configuring the cache
type RedisOutlineCacheOption func(*RedisOutlineCache)

// WithDefaultTTL sets the TTL used when Set is called with a zero TTL
func WithDefaultTTL(ttl time.Duration) RedisOutlineCacheOption {
	return func(c *RedisOutlineCache) {
		c.defaultTTL = ttl
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisOutlineCacheOption {
	return func(c *RedisOutlineCache) {
		c.logger = logger
	}
}

// NewRedisOutlineCache creates a new Redis-based outline cache
func NewRedisOutlineCache(cfg RedisConfig, opts ...RedisOutlineCacheOption) (*RedisOutlineCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisOutlineCache{
		client:     client,
		ownsClient: true, // We created this client, so we own it
		defaultTTL: defaultOutlineTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisOutlineCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisOutlineCacheWithClient(client *redis.Client, opts ...RedisOutlineCacheOption) *RedisOutlineCache {
	cache := &RedisOutlineCache{
		client:     client,
		ownsClient: false, // Client is shared, don't close it
		defaultTTL: defaultOutlineTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// outlineCacheKey generates the cache key for a project's outline projection
func (c *RedisOutlineCache) outlineCacheKey(projectID uuid.UUID, key string) string {
	return fmt.Sprintf("outline:%s:%s", projectID.String(), key)
}

// projectPattern matches every cached outline projection of a project
func (c *RedisOutlineCache) projectPattern(projectID uuid.UUID) string {
	return fmt.Sprintf("outline:%s:*", projectID.String())
}

// Get retrieves a cached outline projection. A miss returns (nil, nil).
func (c *RedisOutlineCache) Get(ctx context.Context, projectID uuid.UUID, key string) ([]byte, error) {
	cacheKey := c.outlineCacheKey(projectID, key)

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss for outline",
			zap.String("project_id", projectID.String()),
			zap.String("key", key))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get outline from cache",
			zap.String("project_id", projectID.String()),
			zap.String("key", key),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get outline from cache: %w", err)
	}

	c.logger.Debug("Cache hit for outline",
		zap.String("project_id", projectID.String()),
		zap.String("key", key))
	return data, nil
}

// Set stores an outline projection in cache
func (c *RedisOutlineCache) Set(ctx context.Context, projectID uuid.UUID, key string, payload []byte, ttl time.Duration) error {
	if len(payload) == 0 {
		return nil
	}

	if ttl == 0 {
		ttl = c.defaultTTL
	}

	cacheKey := c.outlineCacheKey(projectID, key)

	if err := c.client.Set(ctx, cacheKey, payload, ttl).Err(); err != nil {
		c.logger.Error("Failed to set outline in cache",
			zap.String("project_id", projectID.String()),
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("failed to set outline in cache: %w", err)
	}

	c.logger.Debug("Cached outline",
		zap.String("project_id", projectID.String()),
		zap.String("key", key),
		zap.Duration("ttl", ttl))
	return nil
}

// Invalidate removes all cached outline projections for a project.
// Uses SCAN to avoid blocking Redis with the KEYS command.
func (c *RedisOutlineCache) Invalidate(ctx context.Context, projectID uuid.UUID) error {
	var cursor uint64
	var deletedCount int64

	for {
		var keys []string
		var err error
		keys, cursor, err = c.client.Scan(ctx, cursor, c.projectPattern(projectID), defaultScanBatchSize).Result()
		if err != nil {
			c.logger.Error("Failed to scan outline cache keys",
				zap.String("project_id", projectID.String()),
				zap.Error(err))
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			deleted, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				c.logger.Error("Failed to delete outline cache keys",
					zap.String("project_id", projectID.String()),
					zap.Error(err))
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deletedCount += deleted
		}

		if cursor == 0 {
			break
		}
	}

	c.logger.Debug("Invalidated outline cache",
		zap.String("project_id", projectID.String()),
		zap.Int64("deleted_count", deletedCount))
	return nil
}

// Close releases any resources held by the cache
func (c *RedisOutlineCache) Close() error {
	// Only close client if we own it
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisOutlineCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisOutlineCache implements OutlineCache
var _ workpackage.OutlineCache = (*RedisOutlineCache)(nil)
