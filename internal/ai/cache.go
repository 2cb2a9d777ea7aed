package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const cacheKeyPrefix = "sharestuff:advice:"

// CachedAdvisor memoizes another Advisor in Redis. Fallback copy is never
// cached so a transient model outage does not stick for a whole TTL.
type CachedAdvisor struct {
	next   Advisor
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewCachedAdvisor(next Advisor, client *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedAdvisor {
	return &CachedAdvisor{next: next, client: client, ttl: ttl, log: log}
}

func (c *CachedAdvisor) StorageSummary(ctx context.Context, title string, amenities []string) string {
	key := cacheKey(KindStorageSummary, append([]string{title}, amenities...)...)
	return c.cached(ctx, key, func() string { return c.next.StorageSummary(ctx, title, amenities) })
}

func (c *CachedAdvisor) ItemSafetyAdvice(ctx context.Context, description string) string {
	key := cacheKey(KindItemSafety, strings.ToLower(strings.TrimSpace(description)))
	return c.cached(ctx, key, func() string { return c.next.ItemSafetyAdvice(ctx, description) })
}

func (c *CachedAdvisor) cached(ctx context.Context, key string, compute func() string) string {
	if c.client == nil {
		return compute()
	}
	hit, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		return hit
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("advice cache read failed")
	}

	text := compute()
	if IsFallback(text) {
		return text
	}
	if err := c.client.Set(ctx, key, text, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("advice cache write failed")
	}
	return text
}

func cacheKey(kind string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return cacheKeyPrefix + kind + ":" + hex.EncodeToString(h.Sum(nil))
}
