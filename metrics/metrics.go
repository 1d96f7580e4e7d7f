// Package metrics holds the Prometheus collectors for version history.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	VersionsCreatedTotal  prometheus.Counter
	VersionsRestoredTotal prometheus.Counter
	VersionsDeletedTotal  prometheus.Counter
	SnapshotWritesTotal   *prometheus.CounterVec
	SnapshotWriteDuration prometheus.Histogram
	SnapshotBytes         prometheus.Gauge
}

// New registers all collectors on reg. Pass a fresh prometheus.NewRegistry()
// in tests to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		VersionsCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "inkwell_versions_created_total",
			Help: "Total number of post versions recorded",
		}),
		VersionsRestoredTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "inkwell_versions_restored_total",
			Help: "Total number of version restorations",
		}),
		VersionsDeletedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "inkwell_versions_deleted_total",
			Help: "Total number of deleted versions",
		}),
		SnapshotWritesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkwell_snapshot_writes_total",
				Help: "Snapshot writes to the durable backend by result",
			},
			[]string{"result"},
		),
		SnapshotWriteDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "inkwell_snapshot_write_duration_seconds",
			Help:    "Duration of snapshot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		SnapshotBytes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "inkwell_snapshot_bytes",
			Help: "Size of the last persisted version snapshot",
		}),
	}
}

// ObserveWrite records the outcome of one snapshot write. Nil receivers are
// ignored so stores can run without metrics.
func (m *Metrics) ObserveWrite(start time.Time, size int, err error) {
	if m == nil {
		return
	}
	m.SnapshotWriteDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.SnapshotWritesTotal.WithLabelValues("error").Inc()
		return
	}
	m.SnapshotWritesTotal.WithLabelValues("ok").Inc()
	m.SnapshotBytes.Set(float64(size))
}

func (m *Metrics) VersionCreated() {
	if m == nil {
		return
	}
	m.VersionsCreatedTotal.Inc()
}

func (m *Metrics) VersionRestored() {
	if m == nil {
		return
	}
	m.VersionsRestoredTotal.Inc()
}

func (m *Metrics) VersionDeleted() {
	if m == nil {
		return
	}
	m.VersionsDeletedTotal.Inc()
}
