// Package writequeue serializes write operations that share a key
// Package writequeue 串行化同一键上的写操作
// Used to keep SQLite writes on the same table in order and avoid "database is locked"
// 用于保证同一张表的 SQLite 写入按顺序执行，避免 "database is locked"
package writequeue

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrWriteQueueFull 队列已满
	ErrWriteQueueFull = errors.New("write queue is full")
	// ErrWriteQueueClosed 队列管理器已关闭
	ErrWriteQueueClosed = errors.New("write queue is closed")
	// ErrWriteTimeout 写操作超时
	ErrWriteTimeout = errors.New("write operation timeout")
)

// Config write queue configuration
// Config 写队列配置
type Config struct {
	// QueueCapacity per-key queue capacity, default 100
	// QueueCapacity 每个键的队列容量，默认 100
	QueueCapacity int
	// WriteTimeout how long a caller waits for its operation, default 30 seconds
	// WriteTimeout 调用方等待写操作完成的最长时间，默认 30 秒
	WriteTimeout time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		QueueCapacity: 100,
		WriteTimeout:  30 * time.Second,
	}
}

type writeOp struct {
	ctx    context.Context
	fn     func() error
	result chan error
}

type keyQueue struct {
	key string
	ch  chan writeOp
}

// Manager owns one worker goroutine per key
// Manager 为每个键维护一个 worker
type Manager struct {
	config Config
	logger *zap.Logger

	mu     sync.Mutex
	queues map[string]*keyQueue
	closed bool

	wg sync.WaitGroup
}

// New creates write queue manager, nil cfg uses DefaultConfig, nil logger uses zap.NewNop
// New 创建写队列管理器
func New(cfg *Config, logger *zap.Logger) *Manager {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.QueueCapacity > 0 {
			c.QueueCapacity = cfg.QueueCapacity
		}
		if cfg.WriteTimeout > 0 {
			c.WriteTimeout = cfg.WriteTimeout
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		config: c,
		logger: logger,
		queues: make(map[string]*keyQueue),
	}
}

// Execute runs fn on the worker of key and waits for its result
// Execute 在 key 对应的 worker 上执行 fn 并等待结果
func (m *Manager) Execute(ctx context.Context, key string, fn func() error) error {
	op := writeOp{ctx: ctx, fn: fn, result: make(chan error, 1)}
	if err := m.enqueue(key, op); err != nil {
		return err
	}

	timer := time.NewTimer(m.config.WriteTimeout)
	defer timer.Stop()

	select {
	case err := <-op.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrWriteTimeout
	}
}

// enqueue sends under the lock so Shutdown never closes a channel mid-send
func (m *Manager) enqueue(key string, op writeOp) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrWriteQueueClosed
	}
	q, ok := m.queues[key]
	if !ok {
		q = &keyQueue{key: key, ch: make(chan writeOp, m.config.QueueCapacity)}
		m.queues[key] = q
		m.wg.Add(1)
		go m.worker(q)
		m.logger.Debug("write queue created", zap.String("key", key))
	}

	select {
	case q.ch <- op:
		return nil
	default:
		m.logger.Warn("write queue full",
			zap.String("key", key),
			zap.Int("capacity", m.config.QueueCapacity))
		return ErrWriteQueueFull
	}
}

func (m *Manager) worker(q *keyQueue) {
	defer m.wg.Done()
	for op := range q.ch {
		m.run(q.key, op)
	}
}

func (m *Manager) run(key string, op writeOp) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("write operation panic", zap.String("key", key), zap.Any("panic", r))
			op.result <- errors.New("write operation panic")
		}
	}()

	// caller already gave up
	if op.ctx.Err() != nil {
		op.result <- op.ctx.Err()
		return
	}
	op.result <- op.fn()
}

// Shutdown stops accepting operations and waits until queued ones finish or ctx ends
// Shutdown 停止接收新操作并等待队列排空
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	for _, q := range m.queues {
		close(q.ch)
	}
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// QueueCount number of keys with a live worker
// QueueCount 当前活跃队列数
func (m *Manager) QueueCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queues)
}
