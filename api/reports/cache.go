package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = time.Minute

// Cache keeps rendered report details in redis for a short TTL. Reports are
// read far more often than answers change, and a stale view is bounded by
// the TTL, so every operation here degrades to a miss on error.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache connects to REDIS_URL. Returns nil when the URL is unset or
// malformed; callers treat a nil cache as always missing.
func NewCache() *Cache {
	redisUrl := os.Getenv("REDIS_URL")
	if redisUrl == "" {
		return nil
	}

	opt, err := redis.ParseURL(redisUrl)
	if err != nil {
		log.Printf("error parsing redis url for report cache: %v", err)
		return nil
	}

	ttl := defaultCacheTTL
	if raw := os.Getenv("REPORT_CACHE_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	return &Cache{rdb: redis.NewClient(opt), ttl: ttl}
}

func cacheKey(respondentID, questionnaireID uuid.UUID) string {
	return fmt.Sprintf("report:%s:%s", respondentID, questionnaireID)
}

func (c *Cache) Get(ctx context.Context, respondentID, questionnaireID uuid.UUID) (ReportDetail, bool) {
	if c == nil {
		return ReportDetail{}, false
	}

	data, err := c.rdb.Get(ctx, cacheKey(respondentID, questionnaireID)).Bytes()
	if err != nil {
		return ReportDetail{}, false
	}

	var detail ReportDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return ReportDetail{}, false
	}

	return detail, true
}

func (c *Cache) Set(ctx context.Context, detail ReportDetail) {
	if c == nil {
		return
	}

	data, err := json.Marshal(detail)
	if err != nil {
		log.Printf("error marshalling report detail for cache: %v", err)
		return
	}

	key := cacheKey(detail.Respondent.ID, detail.Questionnaire.ID)
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("error caching report detail: %v", err)
	}
}
