// Package metrics holds the prometheus collectors for invoice rendering.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "ptc_invoice_"

// Metrics bundles the invoice metrics. A nil *Metrics records nothing.
type Metrics struct {
	RendersTotal   *prometheus.CounterVec
	FailuresTotal  *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec
	Workspaces     prometheus.Gauge
}

// New constructs the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RendersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "renders_total",
				Help: "Total rendered invoice documents by format",
			},
			[]string{"format"},
		),
		FailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "render_failures_total",
				Help: "Total failed invoice renders by format",
			},
			[]string{"format"},
		),
		RenderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "render_seconds",
				Help:    "Invoice render latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		Workspaces: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "workspaces",
			Help: "Invoice workspaces currently held in memory",
		}),
	}
	reg.MustRegister(
		m.RendersTotal,
		m.FailuresTotal,
		m.RenderDuration,
		m.Workspaces,
	)
	return m
}

// ObserveRender records one render of the given format.
func (m *Metrics) ObserveRender(format string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.FailuresTotal.WithLabelValues(format).Inc()
		return
	}
	m.RendersTotal.WithLabelValues(format).Inc()
	m.RenderDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// SetWorkspaces sets the live workspace gauge.
func (m *Metrics) SetWorkspaces(n int) {
	if m == nil {
		return
	}
	m.Workspaces.Set(float64(n))
}
