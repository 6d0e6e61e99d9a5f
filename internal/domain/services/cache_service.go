package services

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/config"
	"github.com/JoshCLWren/TrailGuard/pkg/logger"
	"github.com/JoshCLWren/TrailGuard/pkg/metrics"
)

const defaultCacheTTL = 30 * time.Second

// InterfaceCacheService is a JSON value cache shared by the read paths.
type InterfaceCacheService interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Backend() string
	Close() error
}

// NewCacheService builds the configured cache. An unreachable Redis falls
// back to the in-process cache.
func NewCacheService(cfg *config.Config) InterfaceCacheService {
	if cfg.CacheType == "redis" {
		redisCache, err := NewRedisCacheService(cfg)
		if err == nil {
			logger.Info("cache backend: redis at %s", cfg.GetRedisAddr())
			return redisCache
		}
		logger.Warning("redis at %s unreachable (%v), using local cache", cfg.GetRedisAddr(), err)
	}
	return NewLocalCacheService(cfg.CacheTTL)
}

// LocalCacheService keeps encoded values in process memory so readers
// never share mutable state with writers.
type LocalCacheService struct {
	cache *gocache.Cache
}

// NewLocalCacheService creates a cache whose entries expire after ttl.
func NewLocalCacheService(ttl time.Duration) *LocalCacheService {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &LocalCacheService{cache: gocache.New(ttl, 2*ttl)}
}

// 1 Get decodes key into dest and reports whether it was present
func (s *LocalCacheService) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, found := s.cache.Get(key)
	metrics.CacheLookup(s.Backend(), found)
	if !found {
		return false, nil
	}
	return true, json.Unmarshal(raw.([]byte), dest)
}

// 2 Set stores value as JSON; ttl <= 0 uses the default expiration
func (s *LocalCacheService) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	s.cache.Set(key, encoded, ttl)
	return nil
}

// 3 Delete removes keys
func (s *LocalCacheService) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		s.cache.Delete(key)
	}
	return nil
}

func (s *LocalCacheService) Backend() string {
	return "local"
}

func (s *LocalCacheService) Close() error {
	s.cache.Flush()
	return nil
}
