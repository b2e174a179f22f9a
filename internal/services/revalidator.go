package services

import (
	"context"
	"log"
	"sync"
)

// revalidateJob 后台刷新任务
type revalidateJob struct {
	key string
	fn  func()
}

// Revalidator 异步执行缓存刷新，同一 key 在队列中只保留一个
type Revalidator struct {
	queue   chan revalidateJob
	pending map[string]bool
	mu      sync.Mutex
	workers int
	wg      sync.WaitGroup
}

// NewRevalidator queueSize 为缓冲队列长度，workers 为并发 worker 数
func NewRevalidator(queueSize, workers int) *Revalidator {
	if queueSize <= 0 {
		queueSize = 100
	}
	if workers <= 0 {
		workers = 1
	}
	return &Revalidator{
		queue:   make(chan revalidateJob, queueSize),
		pending: make(map[string]bool),
		workers: workers,
	}
}

// Start 启动后台 worker，ctx 取消后退出
func (r *Revalidator) Start(ctx context.Context) {
	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(ctx)
	}
}

// Wait 等待所有 worker 退出
func (r *Revalidator) Wait() {
	r.wg.Wait()
}

// Schedule 将刷新任务加入队列（非阻塞）
func (r *Revalidator) Schedule(key string, fn func()) {
	r.mu.Lock()
	if r.pending[key] {
		r.mu.Unlock()
		return
	}
	r.pending[key] = true
	r.mu.Unlock()

	select {
	case r.queue <- revalidateJob{key: key, fn: fn}:
	default:
		r.done(key)
		log.Printf("[Cache] 刷新队列已满，跳过 %s", key)
	}
}

// Pending 当前排队或执行中的 key 数量
func (r *Revalidator) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

func (r *Revalidator) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-r.queue:
			r.run(job)
		}
	}
}

func (r *Revalidator) run(job revalidateJob) {
	defer r.done(job.key)
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[Cache] 刷新 %s panic: %v", job.key, rec)
		}
	}()
	job.fn()
}

func (r *Revalidator) done(key string) {
	r.mu.Lock()
	delete(r.pending, key)
	r.mu.Unlock()
}
