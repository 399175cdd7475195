package dailyquiz

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/incharge-incontrol/backend/internal/models"
)

// ActiveQuizSource yields the single ACTIVE quiz for a UTC-day window.
type ActiveQuizSource interface {
	GetActiveForDate(ctx context.Context, dayStart, dayEnd time.Time) (*models.Quiz, error)
}

// Cache is a read-through Redis cache over an ActiveQuizSource. The active
// quiz of the day is the hot read path (every user hits it), so hits are
// served from Redis with a jittered TTL and misses collapse into a single
// backing lookup via singleflight. Lookups that find no quiz are not cached.
type Cache struct {
	client *redis.Client
	source ActiveQuizSource
	ttl    time.Duration
	sf     singleflight.Group
	logger *zap.Logger
}

// NewCache creates an active-quiz cache.
func NewCache(client *redis.Client, source ActiveQuizSource, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{client: client, source: source, ttl: ttl, logger: logger}
}

// GetActiveForDate implements ActiveQuizSource with caching.
func (c *Cache) GetActiveForDate(ctx context.Context, dayStart, dayEnd time.Time) (*models.Quiz, error) {
	key := c.key(dayStart)

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var quiz models.Quiz
		if err := json.Unmarshal(raw, &quiz); err == nil {
			return &quiz, nil
		}
		// Unreadable entry; drop it and fall through to the source.
		_ = c.client.Del(ctx, key).Err()
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
			var quiz models.Quiz
			if err := json.Unmarshal(raw, &quiz); err == nil {
				return &quiz, nil
			}
		}

		quiz, err := c.source.GetActiveForDate(ctx, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}

		if raw, err := json.Marshal(quiz); err == nil {
			if err := c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err(); err != nil {
				c.logger.Warn("cache active quiz", zap.Error(err))
			}
		}
		return quiz, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Quiz), nil
}

// Invalidate drops the cached entries for the given dates. Called on every
// lifecycle write so a same-day activation or deletion is visible immediately.
func (c *Cache) Invalidate(ctx context.Context, dates ...time.Time) {
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, c.key(d))
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("invalidate active quiz cache", zap.Error(err))
	}
}

func (c *Cache) key(day time.Time) string {
	return "quiz:active:" + day.UTC().Format("2006-01-02")
}

func (c *Cache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(rand.Int63n(jitterMax+1))
}
