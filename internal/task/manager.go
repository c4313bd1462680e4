package task

import (
	"context"

	"github.com/haierkeys/fast-ledger-sync-service/internal/app"

	"go.uber.org/zap"
)

// Manager 任务管理器,负责创建和管理所有任务
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
	app       *app.App
}

// NewManager 创建任务管理器
func NewManager(logger *zap.Logger, appContainer *app.App) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger),
		logger:    logger,
		app:       appContainer,
	}
}

// RegisterTasks 注册所有任务
func (m *Manager) RegisterTasks() error {
	expr := m.app.Config().Schedule.BackupCron
	if expr == "" {
		m.logger.Info("scheduled backup is disabled (schedule.backup-cron not configured)")
		return nil
	}

	backupTask, err := NewBackupTask(m.app.BackupService, expr, m.logger)
	if err != nil {
		return err
	}
	m.scheduler.AddTask(backupTask)
	m.logger.Info("scheduled backup enabled", zap.String("cron", expr), zap.Time("nextRun", backupTask.NextRun()))

	return nil
}

// Start 启动所有已注册的任务
func (m *Manager) Start(ctx context.Context) {
	m.scheduler.Start(ctx)
}

// Wait 等待所有任务退出
func (m *Manager) Wait() {
	m.scheduler.Wait()
}
