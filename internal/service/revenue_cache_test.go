package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"canteen/internal/cache"
	"canteen/internal/database"
	"canteen/internal/model"
	"canteen/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// memCache 以 map 模擬 Redis
func memCache() (*cache.FakeCache, map[string]string) {
	data := map[string]string{}
	return &cache.FakeCache{
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			v, ok := data[key]
			if !ok {
				return redis.NewStringResult("", redis.Nil)
			}
			return redis.NewStringResult(v, nil)
		},
		SetFn: func(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
			switch v := value.(type) {
			case []byte:
				data[key] = string(v)
			case string:
				data[key] = v
			}
			return redis.NewStatusResult("OK", nil)
		},
		DelFn: func(_ context.Context, keys ...string) *redis.IntCmd {
			n := 0
			for _, k := range keys {
				if _, ok := data[k]; ok {
					delete(data, k)
					n++
				}
			}
			return redis.NewIntResult(int64(n), nil)
		},
	}, data
}

type recordPool struct {
	tasks []worker.Task
}

func (p *recordPool) Submit(t worker.Task) { p.tasks = append(p.tasks, t) }

func (p *recordPool) Stop() {
	for _, t := range p.tasks {
		t()
	}
	p.tasks = nil
}

func TestNewRevenueCacheNil(t *testing.T) {
	rc := NewRevenueCache(nil, nil, time.Minute)
	require.Nil(t, rc)
	_, ok := rc.Get(context.Background())
	require.False(t, ok)
	rc.Put(context.Background(), &model.RevenueReport{})
	rc.Invalidate(context.Background())
}

func TestBuildRevenueReportCached(t *testing.T) {
	l := installLedger(t)
	fixedClock(t, "2024-01-01")
	ctx := context.Background()
	db := &database.FakeDB{}
	c, data := memCache()
	pool := &recordPool{}
	rc := NewRevenueCache(c, pool, time.Minute)

	user := l.addUser("amy")
	meal := l.addMeal("A", 5)
	l.addOrder(user, meal, "2024-01-01", 2)

	r, err := BuildRevenueReport(ctx, db, rc)
	require.NoError(t, err)
	require.Equal(t, 10.0, r.TotalRevenueToday)
	require.Contains(t, data, "canteen:revenue:2024-01-01")

	// 快取命中時不讀資料庫
	revenueForDate = func(context.Context, database.Querier, string) (float64, error) {
		return 0, errors.New("should not be called")
	}
	r, err = BuildRevenueReport(ctx, db, rc)
	require.NoError(t, err)
	require.Equal(t, 10.0, r.TotalRevenueToday)
	require.Len(t, r.RevenueData, 1)

	rc.Invalidate(ctx)
	require.NotContains(t, data, "canteen:revenue:2024-01-01")
	require.Empty(t, pool.tasks)

	_, err = BuildRevenueReport(ctx, db, rc)
	require.Error(t, err)
}

func TestRevenueCacheFailuresFallThrough(t *testing.T) {
	installLedger(t)
	fixedClock(t, "2024-01-01")
	c := &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult("", errors.New("conn refused"))
		},
		SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			return redis.NewStatusResult("", errors.New("conn refused"))
		},
		DelFn: func(context.Context, ...string) *redis.IntCmd {
			return redis.NewIntResult(0, errors.New("conn refused"))
		},
	}
	rc := NewRevenueCache(c, nil, time.Minute)

	r, err := BuildRevenueReport(context.Background(), &database.FakeDB{}, rc)
	require.NoError(t, err)
	require.Equal(t, "2024-01-01", r.Date)
	rc.Invalidate(context.Background())
}

func TestInvalidateBeforeResponding(t *testing.T) {
	l := installLedger(t)
	fixedClock(t, "2024-01-01")
	ctx := context.Background()
	db := &database.FakeDB{}
	c, _ := memCache()

	// 單一 worker 被長工作佔住，排隊的工作都不會執行
	pool := worker.NewPool(1)
	release := make(chan struct{})
	pool.Submit(func() { <-release })
	pool.Submit(func() {})
	t.Cleanup(func() {
		close(release)
		pool.Stop()
	})
	rc := NewRevenueCache(c, pool, time.Minute)

	user := l.addUser("amy")
	meal := l.addMeal("A", 5)

	r, err := BuildRevenueReport(ctx, db, rc)
	require.NoError(t, err)
	require.Zero(t, r.TotalRevenueToday)

	_, err = PlaceOrder(ctx, db, user, PlaceOrderInput{MealOptionID: meal, Quantity: 3})
	require.NoError(t, err)
	rc.Invalidate(ctx)

	r, err = BuildRevenueReport(ctx, db, rc)
	require.NoError(t, err)
	require.Equal(t, 15.0, r.TotalRevenueToday)
	require.Len(t, r.RevenueData, 1)
}

func TestInvalidateRetriesOnPool(t *testing.T) {
	t.Cleanup(restoreGlobals)
	fixedClock(t, "2024-01-01")
	c, data := memCache()
	memDel := c.DelFn
	fails := 1
	c.DelFn = func(ctx context.Context, keys ...string) *redis.IntCmd {
		if fails > 0 {
			fails--
			return redis.NewIntResult(0, errors.New("i/o timeout"))
		}
		return memDel(ctx, keys...)
	}
	pool := &recordPool{}
	rc := NewRevenueCache(c, pool, time.Minute)

	data["canteen:revenue:2024-01-01"] = "{}"
	rc.Invalidate(context.Background())
	require.Contains(t, data, "canteen:revenue:2024-01-01")
	require.Len(t, pool.tasks, 1)

	pool.Stop()
	require.NotContains(t, data, "canteen:revenue:2024-01-01")
}

func TestRevenueCacheCorruptPayload(t *testing.T) {
	t.Cleanup(restoreGlobals)
	fixedClock(t, "2024-01-01")
	c, data := memCache()
	data["canteen:revenue:2024-01-01"] = "{not json"
	rc := NewRevenueCache(c, nil, time.Minute)
	_, ok := rc.Get(context.Background())
	require.False(t, ok)

	jsonMarshal = func(any) ([]byte, error) { return nil, errors.New("marshal") }
	delete(data, "canteen:revenue:2024-01-01")
	rc.Put(context.Background(), &model.RevenueReport{Date: "2024-01-01"})
	require.Empty(t, data)

	data["canteen:revenue:2024-01-01"] = "{}"
	rc.Invalidate(context.Background())
	require.Empty(t, data)
}
