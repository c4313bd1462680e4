package domain

import "context"

// EntityRepository local store for one domain
// EntityRepository 单个业务域的本地存储
type EntityRepository[T Record] interface {
	// GetAll returns every local record of the domain
	// GetAll 获取本域全部本地记录
	GetAll(ctx context.Context) ([]T, error)

	// Save creates or replaces the record with the same id
	// Save 按 id 新增或覆盖
	Save(ctx context.Context, record T) error

	// Update replaces an existing record, ErrRecordNotFound if the id is unknown
	// Update 更新已存在的记录，不存在时返回 ErrRecordNotFound
	Update(ctx context.Context, record T) error

	// Delete removes a record by id, ErrRecordNotFound if the id is unknown
	// Delete 按 id 删除记录
	Delete(ctx context.Context, id string) error
}

// RemoteLedger remote document store for one domain
// RemoteLedger 单个业务域的远端文档存储
type RemoteLedger[T Record] interface {
	// List returns every remote record of the domain
	// List 获取本域全部远端记录
	List(ctx context.Context) ([]T, error)

	// Upsert creates or updates the remote record keyed by id
	// Upsert 按 id 新增或更新远端记录
	Upsert(ctx context.Context, record T) error
}

// HistoryRepository 同步历史仓储接口
type HistoryRepository interface {
	// Create stores a new entry and returns it with the assigned id
	// Create 写入一条历史并返回带 ID 的记录
	Create(ctx context.Context, entry *HistoryEntry) (*HistoryEntry, error)

	// List returns all entries, newest first
	// List 获取全部历史，最新在前
	List(ctx context.Context) ([]*HistoryEntry, error)
}
