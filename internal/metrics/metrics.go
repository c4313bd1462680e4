// Package metrics prometheus collectors of the sync engine
// Package metrics 同步引擎的 prometheus 指标
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "ledger_sync"

// SyncMetrics collectors registered on a per-app registry
// SyncMetrics 注册在应用级 registry 上的指标
type SyncMetrics struct {
	Registry *prometheus.Registry

	runs     *prometheus.CounterVec
	records  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates the collectors and a registry holding them plus the go and process collectors
// New 创建指标及其 registry
func New() *SyncMetrics {
	m := &SyncMetrics{
		Registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Top-level backup and restore runs by direction and status.",
		}, []string{"direction", "status"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Records processed by direction and domain.",
		}, []string{"direction", "domain"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "duration_seconds",
			Help:      "Duration of top-level runs.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"direction"}),
	}

	m.Registry.MustRegister(
		m.runs,
		m.records,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRun 记录一次顶层运行
func (m *SyncMetrics) ObserveRun(direction, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(direction, status).Inc()
	m.duration.WithLabelValues(direction).Observe(elapsed.Seconds())
}

// AddRecords 累加处理的记录数
func (m *SyncMetrics) AddRecords(direction, domain string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.records.WithLabelValues(direction, domain).Add(float64(n))
}
