package synctest

import (
	"context"
	"sort"
	"sync"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
)

// HistoryRepository in-memory domain.HistoryRepository
type HistoryRepository struct {
	mu      sync.Mutex
	nextID  int64
	entries []domain.HistoryEntry
	failErr error
}

var _ domain.HistoryRepository = (*HistoryRepository)(nil)

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

// FailWith makes every later Create return err
func (h *HistoryRepository) FailWith(err error) *HistoryRepository {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failErr = err
	return h
}

func (h *HistoryRepository) Create(_ context.Context, entry *domain.HistoryEntry) (*domain.HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failErr != nil {
		return nil, h.failErr
	}
	h.nextID++
	e := *entry
	e.ID = h.nextID
	h.entries = append(h.entries, e)
	return &e, nil
}

func (h *HistoryRepository) List(_ context.Context) ([]*domain.HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*domain.HistoryEntry, 0, len(h.entries))
	for i := range h.entries {
		e := h.entries[i]
		out = append(out, &e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Len number of stored entries
func (h *HistoryRepository) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
