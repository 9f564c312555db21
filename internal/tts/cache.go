package tts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"lead-call-relay/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Cache stores audio URLs by key.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisCache is a Cache on top of a go-redis client.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisCache(rdb *redis.Client, prefix string) *RedisCache {
	return &RedisCache{rdb: rdb, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, c.prefix+key, value, ttl).Err()
}

// CachedSynthesizer remembers audio URLs for identical (voice, text) pairs.
// Cache failures are logged and skipped; only successful syntheses are stored.
type CachedSynthesizer struct {
	next  Synthesizer
	cache Cache
	voice string
	ttl   time.Duration
}

func NewCachedSynthesizer(next Synthesizer, cache Cache, voice string, ttl time.Duration) *CachedSynthesizer {
	return &CachedSynthesizer{next: next, cache: cache, voice: voice, ttl: ttl}
}

func (s *CachedSynthesizer) AudioURL(ctx context.Context, text string) (string, bool) {
	log := logger.From(ctx)
	key := CacheKey(s.voice, text)

	v, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn("tts cache read failed", "err", err)
	} else if hit && v != "" {
		log.Debug("tts cache hit")
		return v, true
	}

	u, ok := s.next.AudioURL(ctx, text)
	if !ok {
		return "", false
	}
	if err := s.cache.Set(ctx, key, u, s.ttl); err != nil {
		log.Warn("tts cache write failed", "err", err)
	}
	return u, true
}

// CacheKey is hex(sha256(voice + NUL + text)).
func CacheKey(voice, text string) string {
	h := sha256.New()
	h.Write([]byte(voice))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
