package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSyncMetrics(t *testing.T) {
	m := New()

	m.ObserveRun("push", "success", 2*time.Second)
	m.ObserveRun("push", "error", time.Second)
	m.AddRecords("push", "fuel", 3)
	m.AddRecords("push", "fuel", 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("push", "success")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.records.WithLabelValues("push", "fuel")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.runs))
}

func TestSyncMetrics_Nil(t *testing.T) {
	var m *SyncMetrics
	assert.NotPanics(t, func() {
		m.ObserveRun("pull", "success", time.Second)
		m.AddRecords("pull", "fleet", 1)
	})
}
