package task

import (
	"context"
	"sync"
	"time"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
	"github.com/haierkeys/fast-ledger-sync-service/internal/service"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/logger"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// BackupTask runs a backup whenever the cron schedule is due
// BackupTask 按 cron 计划执行定时备份
type BackupTask struct {
	backup   service.BackupService
	schedule cron.Schedule
	logger   *zap.Logger
	now      func() time.Time

	mu      sync.Mutex
	nextRun time.Time
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// NewBackupTask creates a new BackupTask; expr is a five-field cron expression or a descriptor like @daily
func NewBackupTask(backup service.BackupService, expr string, lg *zap.Logger) (*BackupTask, error) {
	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "parse backup cron %q", expr)
	}
	t := &BackupTask{
		backup:   backup,
		schedule: schedule,
		logger:   lg,
		now:      time.Now,
	}
	t.nextRun = schedule.Next(t.now())
	return t, nil
}

// Name returns the task name
func (t *BackupTask) Name() string {
	return "BackupScheduled"
}

// LoopInterval checks the schedule every minute
func (t *BackupTask) LoopInterval() time.Duration {
	return 1 * time.Minute
}

// IsStartupRun returns whether to run on startup
func (t *BackupTask) IsStartupRun() bool {
	return false
}

// NextRun 下一次计划执行时间
func (t *BackupTask) NextRun() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.nextRun
}

// Run executes the backup when due
func (t *BackupTask) Run(ctx context.Context) error {
	now := t.now()

	t.mu.Lock()
	if now.Before(t.nextRun) {
		t.mu.Unlock()
		return nil
	}
	t.nextRun = t.schedule.Next(now)
	next := t.nextRun
	t.mu.Unlock()

	entry, err := t.backup.Backup(ctx, nil)
	if errors.Is(err, domain.ErrSyncInProgress) {
		t.logger.Info("scheduled backup skipped, another run in progress", zap.Time("nextRun", next))
		return nil
	}
	if err != nil {
		return err
	}
	t.logger.Info("scheduled backup finished",
		zap.String(logger.FieldTask, t.Name()),
		zap.String("message", entry.Message),
		zap.Time("nextRun", next))
	return nil
}
