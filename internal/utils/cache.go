package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Policy 单个 key 的重新验证策略
type Policy struct {
	// RefreshInterval 数据新鲜期，0 时使用缓存默认 TTL
	RefreshInterval time.Duration
	// MaxStale 过期后仍可先返回旧数据的时长，超过则同步重新获取
	MaxStale time.Duration
	// 服务端没有聚焦事件，只保留字段
	RevalidateOnFocus bool
	// 为 true 时后台刷新失败的 key 下次访问再次刷新，否则等下一个周期
	RevalidateOnReconnect bool
}

// CacheItem 包装缓存数据和过期时间
type CacheItem struct {
	Data       any
	FetchedAt  time.Time
	FreshUntil time.Time
	StaleUntil time.Time
}

// Scheduler 负责执行后台重新验证，key 相同的任务应去重
type Scheduler interface {
	Schedule(key string, fn func())
}

// CacheObserver 记录 hit / stale / miss
type CacheObserver interface {
	ObserveCache(result string)
}

const (
	CacheHit   = "hit"
	CacheStale = "stale"
	CacheMiss  = "miss"
)

// SWRCache 按请求 key 缓存，过期后先返回旧数据再后台刷新 (stale-while-revalidate)。
// 同一 key 的并发获取会合并成一次。
type SWRCache struct {
	lruCache  *lru.Cache[string, CacheItem]
	group     singleflight.Group
	ttl       time.Duration
	maxStale  time.Duration
	now       func() time.Time
	scheduler Scheduler
	observer  CacheObserver
}

type CacheOption func(*SWRCache)

func WithScheduler(s Scheduler) CacheOption {
	return func(c *SWRCache) { c.scheduler = s }
}

func WithCacheObserver(o CacheObserver) CacheOption {
	return func(c *SWRCache) { c.observer = o }
}

func WithClock(now func() time.Time) CacheOption {
	return func(c *SWRCache) { c.now = now }
}

// NewSWRCache size 为 LRU 容量，ttl / maxStale 为策略未指定时的默认值
func NewSWRCache(size int, ttl, maxStale time.Duration, opts ...CacheOption) (*SWRCache, error) {
	l, err := lru.New[string, CacheItem](size)
	if err != nil {
		return nil, fmt.Errorf("create LRU cache: %w", err)
	}
	c := &SWRCache{
		lruCache: l,
		ttl:      ttl,
		maxStale: maxStale,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *SWRCache) freshFor(p Policy) time.Duration {
	if p.RefreshInterval > 0 {
		return p.RefreshInterval
	}
	return c.ttl
}

func (c *SWRCache) staleFor(p Policy) time.Duration {
	if p.MaxStale > 0 {
		return p.MaxStale
	}
	return c.maxStale
}

// Set 直接写入数据 (SWR 的 mutate(key, data))
func (c *SWRCache) Set(key string, data any, p Policy) {
	now := c.now()
	fresh := now.Add(c.freshFor(p))
	c.lruCache.Add(key, CacheItem{
		Data:       data,
		FetchedAt:  now,
		FreshUntil: fresh,
		StaleUntil: fresh.Add(c.staleFor(p)),
	})
}

// Get 返回未超出 stale 窗口的数据
func (c *SWRCache) Get(key string) (any, bool) {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil, false
	}
	if !c.now().Before(val.StaleUntil) {
		c.lruCache.Remove(key)
		return nil, false
	}
	return val.Data, true
}

// Delete 删除指定缓存，下次访问同步获取
func (c *SWRCache) Delete(key string) {
	c.lruCache.Remove(key)
}

func (c *SWRCache) Len() int {
	return c.lruCache.Len()
}

// Fetch 按策略返回缓存数据，必要时调用 producer。producer 的错误不会被缓存。
func (c *SWRCache) Fetch(ctx context.Context, key string, p Policy, producer func(context.Context) (any, error)) (any, error) {
	if val, ok := c.lruCache.Get(key); ok {
		now := c.now()
		if now.Before(val.FreshUntil) {
			c.observe(CacheHit)
			return val.Data, nil
		}
		if now.Before(val.StaleUntil) {
			c.observe(CacheStale)
			c.revalidate(ctx, key, p, producer)
			return val.Data, nil
		}
		c.lruCache.Remove(key)
	}

	c.observe(CacheMiss)
	return c.load(ctx, key, p, producer)
}

func (c *SWRCache) load(ctx context.Context, key string, p Policy, producer func(context.Context) (any, error)) (any, error) {
	v, err, _ := c.group.Do(key, func() (any, error) {
		data, err := producer(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.Set(key, data, p)
		return data, nil
	})
	return v, err
}

func (c *SWRCache) revalidate(ctx context.Context, key string, p Policy, producer func(context.Context) (any, error)) {
	run := func() {
		if _, err := c.load(ctx, key, p, producer); err != nil {
			log.Printf("[Cache] 后台刷新 %s 失败: %v", key, err)
			if !p.RevalidateOnReconnect {
				c.backoff(key, p)
			}
		}
	}
	if c.scheduler != nil {
		c.scheduler.Schedule(key, run)
		return
	}
	go run()
}

// backoff 把失败的 key 标记为新鲜一个周期，旧数据保留，stale 窗口不变
func (c *SWRCache) backoff(key string, p Policy) {
	val, ok := c.lruCache.Peek(key)
	if !ok {
		return
	}
	val.FreshUntil = c.now().Add(c.freshFor(p))
	if val.FreshUntil.After(val.StaleUntil) {
		val.FreshUntil = val.StaleUntil
	}
	c.lruCache.Add(key, val)
}

func (c *SWRCache) observe(result string) {
	if c.observer != nil {
		c.observer.ObserveCache(result)
	}
}

// Fetch 是 SWRCache.Fetch 的泛型包装
func Fetch[T any](ctx context.Context, c *SWRCache, key string, p Policy, producer func(context.Context) (T, error)) (T, error) {
	v, err := c.Fetch(ctx, key, p, func(ctx context.Context) (any, error) {
		return producer(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache key %s holds %T", key, v)
	}
	return typed, nil
}
