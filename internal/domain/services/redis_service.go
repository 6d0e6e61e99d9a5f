package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/config"
	"github.com/JoshCLWren/TrailGuard/pkg/metrics"
)

// RedisCacheService stores JSON values in Redis.
type RedisCacheService struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisCacheService connects to the configured Redis and pings it.
func NewRedisCacheService(cfg *config.Config) (*RedisCacheService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisCacheService{Client: client, TTL: cfg.CacheTTL}, nil
}

// 1 Get decodes key into dest and reports whether it was present
func (s *RedisCacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := s.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheLookup(s.Backend(), false)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	metrics.CacheLookup(s.Backend(), true)
	return true, json.Unmarshal(val, dest)
}

// 2 Set stores value as JSON; ttl <= 0 uses the configured default
func (s *RedisCacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = s.TTL
	}
	if ttl <= 0 {
		// redis treats 0 as no expiry
		ttl = defaultCacheTTL
	}
	return s.Client.Set(ctx, key, jsonValue, ttl).Err()
}

// 3 Delete removes keys
func (s *RedisCacheService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.Client.Del(ctx, keys...).Err()
}

func (s *RedisCacheService) Backend() string {
	return "redis"
}

func (s *RedisCacheService) Close() error {
	return s.Client.Close()
}
