// Package hnapi 是 Hacker News Firebase API 的只读客户端，唯一接触网络的组件。
package hnapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hnreader/internal/models"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"
	DefaultFanOut  = 10
)

// 列表接口
const (
	ListTop  = "topstories"
	ListNew  = "newstories"
	ListAsk  = "askstories"
	ListShow = "showstories"
	ListJob  = "jobstories"
	ListBest = "beststories"
)

// Observer 接收每次请求的结果，code 为 0 表示传输层失败
type Observer interface {
	ObserveRequest(resource string, code int, elapsed time.Duration)
}

// StatusError 上游返回非 2xx
type StatusError struct {
	StatusCode int
	StatusText string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Hacker News API error: %d %s", e.StatusCode, e.StatusText)
}

type Client struct {
	baseURL  string
	http     *http.Client
	fanOut   int
	observer Observer
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithFanOut 批量请求时同时在途的最大请求数
func WithFanOut(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.fanOut = n
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// New 创建客户端，baseURL 为空时使用官方地址
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		fanOut:  DefaultFanOut,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// fetch 发起一次 GET 并解码 JSON，不重试
func (c *Client) fetch(ctx context.Context, resource, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+".json", nil)
	if err != nil {
		return fmt.Errorf("create request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(resource, 0, time.Since(start))
		return err
	}
	defer resp.Body.Close()
	c.observe(resource, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) observe(resource string, code int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(resource, code, elapsed)
	}
}

// StoryIDs 获取某个列表的 id，顺序由上游决定
func (c *Client) StoryIDs(ctx context.Context, list string) ([]int, error) {
	var ids []int
	if err := c.fetch(ctx, list, "/"+list, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

func (c *Client) TopStoryIDs(ctx context.Context) ([]int, error) {
	return c.StoryIDs(ctx, ListTop)
}

func (c *Client) NewStoryIDs(ctx context.Context) ([]int, error) {
	return c.StoryIDs(ctx, ListNew)
}

func (c *Client) AskStoryIDs(ctx context.Context) ([]int, error) {
	return c.StoryIDs(ctx, ListAsk)
}

func (c *Client) ShowStoryIDs(ctx context.Context) ([]int, error) {
	return c.StoryIDs(ctx, ListShow)
}

func (c *Client) JobStoryIDs(ctx context.Context) ([]int, error) {
	return c.StoryIDs(ctx, ListJob)
}

func (c *Client) BestStoryIDs(ctx context.Context) ([]int, error) {
	return c.StoryIDs(ctx, ListBest)
}

// Item 获取单条记录，上游返回 null 时结果为 nil
func (c *Client) Item(ctx context.Context, id int) (*models.Item, error) {
	var item *models.Item
	if err := c.fetch(ctx, "item", fmt.Sprintf("/item/%d", id), &item); err != nil {
		return nil, err
	}
	return item, nil
}

// Items 并发获取多条记录，结果与 ids 顺序一致。
// 单个请求失败只会让对应位置为 nil，整体仅在 ctx 取消时返回错误。
func (c *Client) Items(ctx context.Context, ids []int) ([]*models.Item, error) {
	return fanOut(ctx, c.fanOut, ids, c.Item, func(id int, err error) {
		log.Printf("[HN] 获取 item %d 失败: %v", id, err)
	})
}

// User id 来自用户输入，必须转义后再拼进路径
func (c *Client) User(ctx context.Context, id string) (*models.UserRecord, error) {
	var user *models.UserRecord
	if err := c.fetch(ctx, "user", "/user/"+url.PathEscape(id), &user); err != nil {
		return nil, err
	}
	return user, nil
}

// Users 与 Items 相同的并发与失败策略
func (c *Client) Users(ctx context.Context, ids []string) ([]*models.UserRecord, error) {
	return fanOut(ctx, c.fanOut, ids, c.User, func(id string, err error) {
		log.Printf("[HN] 获取 user %s 失败: %v", id, err)
	})
}

func fanOut[K any, V any](ctx context.Context, limit int, keys []K, get func(context.Context, K) (*V, error), onErr func(K, error)) ([]*V, error) {
	results := make([]*V, len(keys))
	if len(keys) == 0 {
		return results, nil
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, key := range keys {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			v, err := get(ctx, key)
			if err != nil {
				onErr(key, err)
				return nil
			}
			results[i] = v
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
