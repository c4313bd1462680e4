package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
	"github.com/haierkeys/fast-ledger-sync-service/internal/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryLog_AppendAssignsIDAndTimestamp(t *testing.T) {
	fixed := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	h := NewHistoryLog(synctest.NewHistoryRepository())
	h.now = func() time.Time { return fixed }

	e, err := h.Append(context.Background(), domain.HistoryEntry{ID: 99, Direction: domain.DirectionPush, Status: domain.HistoryStatusSuccess, Message: "ok"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.ID)
	assert.Equal(t, fixed, e.Timestamp)

	explicit := fixed.Add(-time.Hour)
	e, err = h.Append(context.Background(), domain.HistoryEntry{Timestamp: explicit, Direction: domain.DirectionPull, Status: domain.HistoryStatusError})
	require.NoError(t, err)
	assert.Equal(t, explicit, e.Timestamp)
}

func TestHistoryLog_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	h := NewHistoryLog(synctest.NewHistoryRepository())

	base := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	for i, m := range []string{"old", "new", "middle"} {
		offsets := []time.Duration{0, 2 * time.Minute, time.Minute}
		_, err := h.Append(ctx, domain.HistoryEntry{Timestamp: base.Add(offsets[i]), Direction: domain.DirectionPush, Status: domain.HistoryStatusSuccess, Message: m})
		require.NoError(t, err)
	}

	list, err := h.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"new", "middle", "old"}, []string{list[0].Message, list[1].Message, list[2].Message})
}
