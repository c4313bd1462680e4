package service

import (
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
	"github.com/haierkeys/fast-ledger-sync-service/internal/metrics"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// BackupService defines the backup and restore entry points
// BackupService 定义备份与恢复入口
type BackupService interface {
	// Backup pushes every domain and records one history entry
	// Backup 推送全部业务域并写入一条历史
	Backup(ctx context.Context, onProgress domain.ProgressFunc, opts ...SyncOption) (domain.HistoryEntry, error)

	// Restore pulls every domain and records one history entry
	// Restore 拉取全部业务域并写入一条历史
	Restore(ctx context.Context, onProgress domain.ProgressFunc, opts ...SyncOption) (domain.HistoryEntry, error)

	// Validate runs the validator over the local records
	// Validate 校验本地记录
	Validate(ctx context.Context) (domain.ValidationReport, error)

	// History lists every entry newest first
	// History 获取全部历史
	History(ctx context.Context) ([]domain.HistoryEntry, error)
}

type backupService struct {
	orchestrator *SyncOrchestrator
	history      *HistoryLog
	metrics      *metrics.SyncMetrics
	logger       *zap.Logger
	running      *semaphore.Weighted
}

// NewBackupService creates BackupService instance
// 创建 BackupService 实例
func NewBackupService(
	orchestrator *SyncOrchestrator,
	history *HistoryLog,
	m *metrics.SyncMetrics,
	lg *zap.Logger,
) BackupService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &backupService{
		orchestrator: orchestrator,
		history:      history,
		metrics:      m,
		logger:       lg,
		running:      semaphore.NewWeighted(1),
	}
}

func (s *backupService) Backup(ctx context.Context, onProgress domain.ProgressFunc, opts ...SyncOption) (domain.HistoryEntry, error) {
	return s.execute(ctx, domain.DirectionPush, onProgress, opts)
}

func (s *backupService) Restore(ctx context.Context, onProgress domain.ProgressFunc, opts ...SyncOption) (domain.HistoryEntry, error) {
	return s.execute(ctx, domain.DirectionPull, onProgress, opts)
}

func (s *backupService) Validate(ctx context.Context) (domain.ValidationReport, error) {
	return s.orchestrator.Validator().ValidateAll(ctx)
}

func (s *backupService) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	return s.history.List(ctx)
}

func (s *backupService) execute(ctx context.Context, direction domain.Direction, onProgress domain.ProgressFunc, opts []SyncOption) (domain.HistoryEntry, error) {
	if !s.running.TryAcquire(1) {
		s.logger.Info("Sync already running, skipping this trigger", zap.String(logger.FieldDirection, string(direction)))
		return domain.HistoryEntry{}, domain.ErrSyncInProgress
	}
	defer s.running.Release(1)

	runID := uuid.NewString()
	lg := s.logger.With(zap.String(logger.FieldRunID, runID), zap.String(logger.FieldDirection, string(direction)))
	startTime := time.Now()

	// per run, filled on the orchestrator goroutine
	counts := make(map[domain.Name]int, len(domain.Order()))
	runOpts := append(append(make([]SyncOption, 0, len(opts)+1), opts...), WithResultSink(func(d domain.Direction, result domain.SyncResult) {
		counts[result.Domain] = result.Processed
		s.metrics.AddRecords(string(d), result.Domain.String(), result.Processed)
	}))

	lg.Info("sync start")

	var err error
	if direction == domain.DirectionPush {
		err = s.orchestrator.Push(ctx, onProgress, runOpts...)
	} else {
		err = s.orchestrator.Pull(ctx, onProgress, runOpts...)
	}

	return s.finishTask(ctx, lg, direction, counts, err, startTime)
}

// finishTask writes the single history entry of a run and returns the sync error unmodified
// finishTask 写入本次运行的历史记录，并原样返回同步错误
func (s *backupService) finishTask(ctx context.Context, lg *zap.Logger, direction domain.Direction, counts map[domain.Name]int, err error, startTime time.Time) (domain.HistoryEntry, error) {
	elapsed := time.Since(startTime)
	entry := domain.HistoryEntry{
		Timestamp: startTime,
		Direction: direction,
	}

	if err == nil {
		entry.Status = domain.HistoryStatusSuccess
		entry.Message = summary(direction, counts)
		lg.Info("sync finished", zap.Duration(logger.FieldDuration, elapsed), zap.String("message", entry.Message))
	} else {
		entry.Status = domain.HistoryStatusError
		entry.Message = failureMessage(direction, err)
		entry.DiagnosticText = err.Error()
		lg.Error("sync failed", zap.Duration(logger.FieldDuration, elapsed), zap.Error(err))
	}
	s.metrics.ObserveRun(string(direction), string(entry.Status), elapsed)

	// the caller's context may already be cancelled, the outcome must still be recorded
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	saved, herr := s.history.Append(saveCtx, entry)
	if herr != nil {
		lg.Error("Failed to write sync history", zap.Error(herr))
		if err == nil {
			return entry, errors.Wrap(herr, "write sync history")
		}
		return entry, err
	}
	return saved, err
}

func summary(direction domain.Direction, counts map[domain.Name]int) string {
	total := 0
	for _, n := range counts {
		total += n
	}
	verb := "Backup"
	if direction == domain.DirectionPull {
		verb = "Restore"
	}
	msg := fmt.Sprintf("%s completed: %d records", verb, total)
	sep := " ("
	for _, name := range domain.Order() {
		msg += fmt.Sprintf("%s%s %d", sep, name, counts[name])
		sep = ", "
	}
	return msg + ")"
}

func failureMessage(direction domain.Direction, err error) string {
	verb := "Backup"
	if direction == domain.DirectionPull {
		verb = "Restore"
	}

	var vf *domain.ValidationFailedError
	if errors.As(err, &vf) {
		return fmt.Sprintf("%s refused: %d validation issue(s) in local data", verb, len(vf.Report.Issues))
	}
	var te *domain.TransportError
	if errors.As(err, &te) {
		return fmt.Sprintf("%s failed while syncing %s, earlier domains were applied", verb, te.Domain)
	}
	return fmt.Sprintf("%s failed: %v", verb, err)
}
