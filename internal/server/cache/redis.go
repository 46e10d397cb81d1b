package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophslides/internal/logging"
	"github.com/dmitrijs2005/gophslides/internal/server/models"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix        = "gophslides:presentation:"
	generationSuffix = ":gen"

	// generationTTL keeps counters of idle presentations from piling up.
	// It only has to outlive a single read.
	generationTTL = 24 * time.Hour
)

// setIfGeneration stores ARGV[2] under KEYS[2] only while KEYS[1] still
// holds ARGV[1]. A missing counter counts as 0. ARGV[3] is the TTL in ms,
// 0 meaning no expiry.
const setIfGeneration = `
local gen = redis.call('GET', KEYS[1]) or '0'
if gen ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`

// RedisCache keeps presentation views in Redis as JSON with a fixed TTL.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
	log    logging.Logger
}

func NewRedisCache(client redis.Cmdable, ttl time.Duration, log logging.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, log: log.With("module", "cache")}
}

func key(publicID string) string {
	return keyPrefix + publicID
}

func generationKey(publicID string) string {
	return keyPrefix + publicID + generationSuffix
}

func (c *RedisCache) Get(ctx context.Context, publicID string) (*models.Presentation, bool) {
	data, err := c.client.Get(ctx, key(publicID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn(ctx, "cache get failed", "public_id", publicID, "error", err)
		}
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		c.log.Warn(ctx, "cache entry is corrupted", "public_id", publicID, "error", err)
		return nil, false
	}
	return e.toModel(), true
}

func (c *RedisCache) Generation(ctx context.Context, publicID string) (int64, bool) {
	gen, err := c.client.Get(ctx, generationKey(publicID)).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		return 0, true
	case err != nil:
		c.log.Warn(ctx, "cache generation read failed", "public_id", publicID, "error", err)
		return 0, false
	}
	return gen, true
}

func (c *RedisCache) Set(ctx context.Context, p *models.Presentation, gen int64) {
	data, err := json.Marshal(toEntry(p))
	if err != nil {
		c.log.Warn(ctx, "cache encode failed", "public_id", p.PublicID, "error", err)
		return
	}

	keys := []string{generationKey(p.PublicID), key(p.PublicID)}
	stored, err := c.client.Eval(ctx, setIfGeneration, keys, gen, string(data), c.ttl.Milliseconds()).Int64()
	if err != nil {
		c.log.Warn(ctx, "cache set failed", "public_id", p.PublicID, "error", err)
		return
	}
	if stored == 0 {
		c.log.Debug(ctx, "cache set skipped, presentation changed meanwhile", "public_id", p.PublicID)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, publicID string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(publicID))
		pipe.Expire(ctx, generationKey(publicID), generationTTL)
		pipe.Del(ctx, key(publicID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate %s: %w", publicID, err)
	}
	return nil
}
