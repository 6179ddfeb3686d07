// File: internal/service/revenue_cache.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"canteen/internal/cache"
	"canteen/internal/metrics"
	"canteen/internal/model"
	"canteen/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const invalidateTimeout = 2 * time.Second

var (
	jsonMarshal   = json.Marshal
	jsonUnmarshal = json.Unmarshal
)

// RevenueCache 將營收報表快取於 Redis，鍵值包含今天日期
// 快取失敗只記錄 log，不影響回應
type RevenueCache struct {
	cache cache.Cache
	pool  worker.Pool
	ttl   time.Duration
}

// NewRevenueCache returns nil when c is nil so callers can pass it through
// unconditionally. A nil pool disables the invalidation retry.
func NewRevenueCache(c cache.Cache, pool worker.Pool, ttl time.Duration) *RevenueCache {
	if c == nil {
		return nil
	}
	return &RevenueCache{cache: c, pool: pool, ttl: ttl}
}

func revenueKey(date string) string {
	return cache.Key("revenue", date)
}

func (rc *RevenueCache) Get(ctx context.Context) (*model.RevenueReport, bool) {
	if rc == nil {
		return nil, false
	}
	raw, err := rc.cache.Get(ctx, revenueKey(Today())).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordRevenueCache("miss")
		} else {
			metrics.RecordRevenueCache("error")
			logrus.WithError(err).Warn("revenue cache get failed")
		}
		return nil, false
	}
	var r model.RevenueReport
	if err := jsonUnmarshal(raw, &r); err != nil {
		metrics.RecordRevenueCache("error")
		logrus.WithError(err).Warn("revenue cache payload corrupt")
		return nil, false
	}
	metrics.RecordRevenueCache("hit")
	return &r, true
}

func (rc *RevenueCache) Put(ctx context.Context, r *model.RevenueReport) {
	if rc == nil || r == nil {
		return
	}
	b, err := jsonMarshal(r)
	if err != nil {
		logrus.WithError(err).Warn("revenue cache marshal failed")
		return
	}
	if err := rc.cache.Set(ctx, revenueKey(r.Date), b, rc.ttl).Err(); err != nil {
		logrus.WithError(err).Warn("revenue cache set failed")
	}
}

// Invalidate drops today's report before the caller responds, so the next
// report read sees the committed write. A failed delete is retried once on
// the worker pool; until then the TTL bounds staleness.
func (rc *RevenueCache) Invalidate(ctx context.Context) {
	if rc == nil {
		return
	}
	key := revenueKey(Today())
	if err := rc.del(ctx, key); err == nil || rc.pool == nil {
		return
	}
	rc.pool.Submit(func() {
		// 請求已結束，retry 用獨立的 context
		_ = rc.del(context.Background(), key)
	})
}

func (rc *RevenueCache) del(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, invalidateTimeout)
	defer cancel()
	err := rc.cache.Del(ctx, key).Err()
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("revenue cache invalidate failed")
	}
	return err
}
