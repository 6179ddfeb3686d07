package cache

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Namespace 所有 key 的共同前綴，避免與同一個 Redis 上的其他服務衝突
const Namespace = "canteen"

// Key 組出 "canteen:<part>:<part>..." 形式的 key
func Key(parts ...string) string {
	return Namespace + ":" + strings.Join(parts, ":")
}

// Cache 服務用到的 Redis 指令子集；*redis.Client 直接滿足此介面
// ttl <= 0 表示不設過期
type Cache interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// FakeCache 以函式欄位模擬 Cache；未設定的 Get/Set/Del 會 panic，
// 方便測試發現非預期的快取存取
type FakeCache struct {
	PingFn  func(ctx context.Context) *redis.StatusCmd
	GetFn   func(ctx context.Context, key string) *redis.StringCmd
	SetFn   func(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd
	DelFn   func(ctx context.Context, keys ...string) *redis.IntCmd
	CloseFn func() error
}

// Ping 未設定時回 PONG
func (f *FakeCache) Ping(ctx context.Context) *redis.StatusCmd {
	if f.PingFn != nil {
		return f.PingFn(ctx)
	}
	return redis.NewStatusResult("PONG", nil)
}

func (f *FakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.GetFn != nil {
		return f.GetFn(ctx, key)
	}
	panic("cache: unexpected Get " + key)
}

func (f *FakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	if f.SetFn != nil {
		return f.SetFn(ctx, key, value, ttl)
	}
	panic("cache: unexpected Set " + key)
}

func (f *FakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.DelFn != nil {
		return f.DelFn(ctx, keys...)
	}
	panic("cache: unexpected Del " + strings.Join(keys, ","))
}

// Close 未設定時為 no-op
func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}
