package cache

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/workplan/backend/internal/domain/workpackage"
	"github.com/workplan/backend/internal/infrastructure/config"
)

// OutlineCacheFactory creates outline caches based on configuration
type OutlineCacheFactory struct {
	redisConfig           config.RedisConfig
	defaultTTL            time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// OutlineCacheFactoryOption is a functional option for configuring the factory
type OutlineCacheFactoryOption func(*OutlineCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) OutlineCacheFactoryOption {
	return func(f *OutlineCacheFactory) {
		f.logger = logger
	}
}

// WithTTL sets the default TTL for created caches
func WithTTL(ttl time.Duration) OutlineCacheFactoryOption {
	return func(f *OutlineCacheFactory) {
		f.defaultTTL = ttl
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true (allow fallback).
func WithInMemoryFallback(allow bool) OutlineCacheFactoryOption {
	return func(f *OutlineCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewOutlineCacheFactory creates a new factory
func NewOutlineCacheFactory(cfg config.RedisConfig, opts ...OutlineCacheFactoryOption) *OutlineCacheFactory {
	f := &OutlineCacheFactory{
		redisConfig:           cfg,
		defaultTTL:            defaultOutlineTTL,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-based outline cache
func (f *OutlineCacheFactory) CreateRedisCache() (workpackage.OutlineCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	cache, err := NewRedisOutlineCache(redisCfg,
		WithDefaultTTL(f.defaultTTL),
		WithCacheLogger(f.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis outline cache: %w", err)
	}

	return cache, nil
}

// CreateInMemoryCache creates an in-memory outline cache.
// WARNING: In-memory caches do not share state across process instances,
// which can serve stale outlines in distributed deployments.
func (f *OutlineCacheFactory) CreateInMemoryCache() workpackage.OutlineCache {
	return NewInMemoryOutlineCache()
}

// CreateCache creates an outline cache based on whether Redis is available.
// It tries Redis first and falls back to in-memory when Redis is not
// reachable and AllowInMemoryFallback is true.
func (f *OutlineCacheFactory) CreateCache() (workpackage.OutlineCache, error) {
	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis outline cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for outline cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory outline cache. "+
		"This may serve stale outlines in distributed deployments.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
