package service

import (
	"context"
	"time"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
)

// HistoryLog append-only record of top-level sync attempts
// HistoryLog 顶层同步尝试的追加式日志
type HistoryLog struct {
	repo domain.HistoryRepository
	now  func() time.Time
}

// NewHistoryLog 创建历史日志
func NewHistoryLog(repo domain.HistoryRepository) *HistoryLog {
	return &HistoryLog{repo: repo, now: time.Now}
}

// Append stores entry, filling the timestamp when zero; the id comes from the repository
// Append 写入一条历史，时间为空时填充当前时间
func (h *HistoryLog) Append(ctx context.Context, entry domain.HistoryEntry) (domain.HistoryEntry, error) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = h.now()
	}
	entry.ID = 0
	saved, err := h.repo.Create(ctx, &entry)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	return *saved, nil
}

// List all entries newest first
// List 全部历史，最新在前
func (h *HistoryLog) List(ctx context.Context) ([]domain.HistoryEntry, error) {
	rows, err := h.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]domain.HistoryEntry, 0, len(rows))
	for _, r := range rows {
		list = append(list, *r)
	}
	return list, nil
}
