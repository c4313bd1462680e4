package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
	"github.com/haierkeys/fast-ledger-sync-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBackup struct {
	calls int
	err   error
}

func (f *fakeBackup) Backup(context.Context, domain.ProgressFunc, ...service.SyncOption) (domain.HistoryEntry, error) {
	f.calls++
	return domain.HistoryEntry{Message: "ok"}, f.err
}

func (f *fakeBackup) Restore(context.Context, domain.ProgressFunc, ...service.SyncOption) (domain.HistoryEntry, error) {
	return domain.HistoryEntry{}, nil
}

func (f *fakeBackup) Validate(context.Context) (domain.ValidationReport, error) {
	return domain.ValidationReport{OK: true}, nil
}

func (f *fakeBackup) History(context.Context) ([]domain.HistoryEntry, error) {
	return nil, nil
}

func TestBackupTask_RunsWhenDue(t *testing.T) {
	backup := &fakeBackup{}
	task, err := NewBackupTask(backup, "0 3 * * *", zap.NewNop())
	require.NoError(t, err)

	clock := time.Date(2024, 5, 1, 2, 0, 0, 0, time.Local)
	task.now = func() time.Time { return clock }
	task.nextRun = task.schedule.Next(clock)
	assert.Equal(t, time.Date(2024, 5, 1, 3, 0, 0, 0, time.Local), task.NextRun())

	require.NoError(t, task.Run(context.Background()))
	assert.Equal(t, 0, backup.calls)

	clock = clock.Add(time.Hour)
	require.NoError(t, task.Run(context.Background()))
	assert.Equal(t, 1, backup.calls)
	assert.Equal(t, time.Date(2024, 5, 2, 3, 0, 0, 0, time.Local), task.NextRun())

	// same minute again is not due
	require.NoError(t, task.Run(context.Background()))
	assert.Equal(t, 1, backup.calls)
}

func TestBackupTask_Errors(t *testing.T) {
	_, err := NewBackupTask(&fakeBackup{}, "every day", zap.NewNop())
	assert.Error(t, err)

	busy := &fakeBackup{err: domain.ErrSyncInProgress}
	task, err := NewBackupTask(busy, "@hourly", zap.NewNop())
	require.NoError(t, err)
	task.nextRun = time.Time{}
	assert.NoError(t, task.Run(context.Background()))

	failing := &fakeBackup{err: errors.New("remote down")}
	task, err = NewBackupTask(failing, "@hourly", zap.NewNop())
	require.NoError(t, err)
	task.nextRun = time.Time{}
	assert.EqualError(t, task.Run(context.Background()), "remote down")
}

type countingTask struct {
	runs     atomic.Int32
	interval time.Duration
	panics   bool
}

func (c *countingTask) Name() string                { return "counting" }
func (c *countingTask) LoopInterval() time.Duration { return c.interval }
func (c *countingTask) IsStartupRun() bool          { return true }
func (c *countingTask) Run(context.Context) error {
	c.runs.Add(1)
	if c.panics {
		panic("task exploded")
	}
	return nil
}

func TestScheduler_StartupRunAndStop(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	once := &countingTask{}
	looping := &countingTask{interval: time.Millisecond, panics: true}
	s.AddTask(once)
	s.AddTask(looping)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	assert.Eventually(t, func() bool { return looping.runs.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	s.Wait()

	assert.Equal(t, int32(1), once.runs.Load())
}
