// Package task background tasks of the daemon
// Package task 守护进程的后台任务
package task

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Run(ctx context.Context) error // 执行任务
	LoopInterval() time.Duration   // 执行间隔
	IsStartupRun() bool            // 是否立即执行一次
}

// Scheduler 任务调度器
type Scheduler struct {
	logger *zap.Logger
	tasks  []Task
	wg     sync.WaitGroup
}

// NewScheduler 创建任务调度器
func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		logger: logger,
		tasks:  make([]Task, 0),
	}
}

// AddTask 添加任务
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start 启动所有任务，ctx 取消后任务循环退出
func (s *Scheduler) Start(ctx context.Context) {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return
	}

	s.logger.Info("tasks starting", zap.Int("count", len(s.tasks)))

	for _, task := range s.tasks {
		s.wg.Add(1)
		go s.startTask(ctx, task)
	}
}

// Wait 等待所有任务循环退出
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// startTask 启动单个任务
func (s *Scheduler) startTask(ctx context.Context, task Task) {
	defer s.wg.Done()

	if task.IsStartupRun() {
		s.runOnce(ctx, task, "startupRun")
	}

	if task.LoopInterval() <= 0 {
		return
	}

	ticker := time.NewTicker(task.LoopInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runOnce(ctx, task, "loopRun")
		case <-ctx.Done():
			s.logger.Info("task stopped", zap.String("name", task.Name()))
			return
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, task Task, mode string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panic",
				zap.String("name", task.Name()),
				zap.String("mode", mode),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	s.logger.Debug("task running", zap.String("name", task.Name()), zap.String("mode", mode))
	if err := task.Run(ctx); err != nil {
		s.logger.Error("task running error",
			zap.String("name", task.Name()),
			zap.String("mode", mode),
			zap.Error(err))
	}
}
