package usage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for usage accounting.
type Metrics struct {
	SnapshotsRecorded prometheus.Counter
	PollsDeferred     prometheus.Counter
	ReportFailures    prometheus.Counter
	LastPeriod        prometheus.Gauge
}

// NewMetrics registers usage collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SnapshotsRecorded: f.NewCounter(prometheus.CounterOpts{
			Name: "logvault_usage_snapshots_total",
			Help: "Total number of usage snapshots recorded",
		}),
		PollsDeferred: f.NewCounter(prometheus.CounterOpts{
			Name: "logvault_usage_polls_deferred_total",
			Help: "Polls skipped because the clock was unavailable",
		}),
		ReportFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "logvault_usage_report_failures_total",
			Help: "Snapshots the reporter failed to deliver",
		}),
		LastPeriod: f.NewGauge(prometheus.GaugeOpts{
			Name: "logvault_usage_last_period",
			Help: "Index of the most recently sampled period",
		}),
	}
}

func (m *Metrics) observeSnapshots(n int, period int64) {
	if m == nil {
		return
	}
	m.SnapshotsRecorded.Add(float64(n))
	m.LastPeriod.Set(float64(period))
}

func (m *Metrics) incDeferred() {
	if m == nil {
		return
	}
	m.PollsDeferred.Inc()
}

func (m *Metrics) incReportFailure() {
	if m == nil {
		return
	}
	m.ReportFailures.Inc()
}
