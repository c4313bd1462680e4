package dao

import (
	"context"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
	"github.com/haierkeys/fast-ledger-sync-service/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type historyRepository struct {
	dao *Dao
}

// NewHistoryRepository 创建 HistoryRepository 实例
func NewHistoryRepository(dao *Dao) domain.HistoryRepository {
	return &historyRepository{dao: dao}
}

var _ domain.HistoryRepository = (*historyRepository)(nil)

func (r *historyRepository) toDomain(m *model.SyncHistory) *domain.HistoryEntry {
	if m == nil {
		return nil
	}
	return &domain.HistoryEntry{
		ID:             m.ID,
		Timestamp:      m.Timestamp,
		Direction:      domain.Direction(m.Direction),
		Status:         domain.HistoryStatus(m.Status),
		Message:        m.Message,
		DiagnosticText: m.DiagnosticText,
	}
}

func (r *historyRepository) toModel(d *domain.HistoryEntry) *model.SyncHistory {
	if d == nil {
		return nil
	}
	// sqlite keeps the offset in the stored text, UTC keeps the ordering by instant
	return &model.SyncHistory{
		ID:             d.ID,
		Timestamp:      d.Timestamp.UTC(),
		Direction:      string(d.Direction),
		Status:         string(d.Status),
		Message:        d.Message,
		DiagnosticText: d.DiagnosticText,
	}
}

// Create 写入历史
func (r *historyRepository) Create(ctx context.Context, entry *domain.HistoryEntry) (*domain.HistoryEntry, error) {
	m := r.toModel(entry)
	m.ID = 0
	err := r.dao.ExecuteWrite(ctx, model.TableNameSyncHistory, func(db *gorm.DB) error {
		return db.Create(m).Error
	})
	if err != nil {
		return nil, errors.Wrap(err, "create sync history failed")
	}
	return r.toDomain(m), nil
}

// List 全部历史，最新在前
func (r *historyRepository) List(ctx context.Context) ([]*domain.HistoryEntry, error) {
	var rows []*model.SyncHistory
	err := r.dao.DB.WithContext(ctx).
		Order("timestamp DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list sync history failed")
	}

	list := make([]*domain.HistoryEntry, 0, len(rows))
	for _, m := range rows {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}
