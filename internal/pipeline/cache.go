// internal/pipeline/cache.go
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"brandsignal/internal/common/database"
	"brandsignal/internal/common/logger"
	"brandsignal/internal/models"
)

// ReportCache caches aggregate reports in Redis, keyed by the brand plus a
// digest of the request inputs. A cache failure is never surfaced to the
// caller: reads miss, writes are dropped, and the pipeline proceeds.
type ReportCache struct {
	redis  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func NewReportCache(redisClient *database.RedisClient, ttl time.Duration, log logger.Logger) *ReportCache {
	return &ReportCache{
		redis:  redisClient,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "report_cache"}),
	}
}

// CacheKey digests the brand name, competitor set, and prompts into a stable
// key. Competitors are sorted so callers get the same key regardless of
// argument order.
func CacheKey(brandName string, competitors []string, prompts []string) string {
	sortedCompetitors := append([]string(nil), competitors...)
	sort.Strings(sortedCompetitors)

	h := sha256.New()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(brandName))))
	h.Write([]byte{0})
	for _, c := range sortedCompetitors {
		h.Write([]byte(strings.ToLower(strings.TrimSpace(c))))
		h.Write([]byte{0})
	}
	for _, p := range prompts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}

	return "brandsignal:report:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// Get returns the cached report for key, or (nil, false) on miss or error.
func (c *ReportCache) Get(ctx context.Context, key string) (*models.AggregateReport, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}

	raw, err := c.redis.Get(ctx, key)
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("report cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false
	}

	var report models.AggregateReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		c.logger.Warn("report cache entry corrupt, dropping", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		_ = c.redis.Del(ctx, key)
		return nil, false
	}

	return &report, true
}

// Set stores the report under key for the cache TTL. Errors are logged and
// swallowed.
func (c *ReportCache) Set(ctx context.Context, key string, report *models.AggregateReport) {
	if c == nil || c.redis == nil || report == nil {
		return
	}

	raw, err := json.Marshal(report)
	if err != nil {
		c.logger.Warn("report cache encode failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}

	if err := c.redis.Set(ctx, key, string(raw), c.ttl); err != nil {
		c.logger.Warn("report cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
