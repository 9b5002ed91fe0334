package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"logvault/internal/logstore/models"
)

// Metrics holds Prometheus collectors for log store operations.
type Metrics struct {
	EntriesAdded       *prometheus.CounterVec
	EntriesEvicted     prometheus.Counter
	EntriesCleared     prometheus.Counter
	Reads              *prometheus.CounterVec
	StoreSize          prometheus.Gauge
	StoreCapacity      prometheus.Gauge
	CheckpointRuns     *prometheus.CounterVec
	CheckpointDuration prometheus.Histogram
	ImageEntries       prometheus.Gauge
}

// New registers log store collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		EntriesAdded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "logvault_entries_added_total",
			Help: "Entries appended, by level",
		}, []string{"level"}),
		EntriesEvicted: f.NewCounter(prometheus.CounterOpts{
			Name: "logvault_entries_evicted_total",
			Help: "Entries evicted by capacity pressure",
		}),
		EntriesCleared: f.NewCounter(prometheus.CounterOpts{
			Name: "logvault_entries_cleared_total",
			Help: "Entries removed by explicit clears",
		}),
		Reads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "logvault_reads_total",
			Help: "Read operations, by operation",
		}, []string{"operation"}),
		StoreSize: f.NewGauge(prometheus.GaugeOpts{
			Name: "logvault_store_size",
			Help: "Entries currently retained",
		}),
		StoreCapacity: f.NewGauge(prometheus.GaugeOpts{
			Name: "logvault_store_capacity",
			Help: "Configured store capacity",
		}),
		CheckpointRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "logvault_checkpoints_total",
			Help: "Checkpoint attempts, by outcome",
		}, []string{"outcome"}),
		CheckpointDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "logvault_checkpoint_duration_seconds",
			Help:    "Time spent capturing and saving the image",
			Buckets: prometheus.DefBuckets,
		}),
		ImageEntries: f.NewGauge(prometheus.GaugeOpts{
			Name: "logvault_image_entries",
			Help: "Entries in the most recently saved image",
		}),
	}
}

func (m *Metrics) ObserveAdd(level models.Level, evicted int) {
	if m == nil {
		return
	}
	m.EntriesAdded.WithLabelValues(level.String()).Inc()
	if evicted > 0 {
		m.EntriesEvicted.Add(float64(evicted))
	}
}

func (m *Metrics) ObserveEvicted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.EntriesEvicted.Add(float64(n))
}

func (m *Metrics) ObserveCleared(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.EntriesCleared.Add(float64(n))
}

func (m *Metrics) ObserveRead(operation string) {
	if m == nil {
		return
	}
	m.Reads.WithLabelValues(operation).Inc()
}

func (m *Metrics) ObserveStats(stats models.Stats) {
	if m == nil {
		return
	}
	m.StoreSize.Set(float64(stats.Size))
	m.StoreCapacity.Set(float64(stats.Capacity))
}

func (m *Metrics) ObserveCheckpoint(outcome string, seconds float64, entries int) {
	if m == nil {
		return
	}
	m.CheckpointRuns.WithLabelValues(outcome).Inc()
	m.CheckpointDuration.Observe(seconds)
	if outcome == "success" {
		m.ImageEntries.Set(float64(entries))
	}
}
