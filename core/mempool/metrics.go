// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors the mempool loop updates. It
// mirrors the gauge/counter split the teacher's txpool.go keeps behind a
// `metrics.Enabled` guard (e.g. reservationsGaugeName), except here the
// collectors always exist — a *Metrics whose collectors are not registered
// anywhere (via NewNopMetrics) is the "disabled" case instead.
type Metrics struct {
	PoolLength      prometheus.Gauge
	AccountsGauge   prometheus.Gauge
	AdmittedTotal   prometheus.Counter
	RejectedTotal   *prometheus.CounterVec
	BatchesTotal    prometheus.Counter
	BatchDuration   prometheus.Histogram
	ReinsertedTotal prometheus.Counter
	DroppedTotal    prometheus.Counter
}

// NewMetrics registers the mempool's collectors on reg and returns them.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PoolLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "plasma", Subsystem: "mempool", Name: "pool_length",
			Help: "Total number of pending transactions across all accounts.",
		}),
		AccountsGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "plasma", Subsystem: "mempool", Name: "accounts",
			Help: "Number of accounts with at least one pending transaction.",
		}),
		AdmittedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "plasma", Subsystem: "mempool", Name: "admitted_total",
			Help: "Transactions successfully admitted.",
		}),
		RejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plasma", Subsystem: "mempool", Name: "rejected_total",
			Help: "Transactions rejected at admission, by reason.",
		}, []string{"reason"}),
		BatchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "plasma", Subsystem: "mempool", Name: "batches_total",
			Help: "Batches handed off to the state-keeper.",
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "plasma", Subsystem: "mempool", Name: "batch_duration_seconds",
			Help:    "Time spent blocked waiting on the state-keeper's reply.",
			Buckets: prometheus.DefBuckets,
		}),
		ReinsertedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "plasma", Subsystem: "mempool", Name: "reinserted_total",
			Help: "Transactions reinserted after a rejected batch.",
		}),
		DroppedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "plasma", Subsystem: "mempool", Name: "dropped_total",
			Help: "Transactions permanently dropped by the state-keeper.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.PoolLength, m.AccountsGauge, m.AdmittedTotal, m.RejectedTotal,
			m.BatchesTotal, m.BatchDuration, m.ReinsertedTotal, m.DroppedTotal,
		)
	}
	return m
}

// NewNopMetrics returns a Metrics whose collectors are never registered,
// for callers that don't want to wire up Prometheus.
func NewNopMetrics() *Metrics {
	return NewMetrics(nil)
}
