// Package metrics provides Prometheus instrumentation for the volscope
// viewer, exposed via the /metrics endpoint.
//
// Metrics exposed:
//   - volscope_page_views_total: Counter of chart page loads
//   - volscope_scroll_updates_total: Counter of applied scroll transitions
//   - volscope_render_duration_seconds: Histogram of chart render durations
//   - volscope_scroll_sockets_active: Gauge of open scroll websockets
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	PageViews           prometheus.Counter
	ScrollUpdates       prometheus.Counter
	RenderDuration      prometheus.Histogram
	ActiveScrollSockets prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		PageViews: promauto.NewCounter(prometheus.CounterOpts{
			Name: "volscope_page_views_total",
			Help: "Total number of chart page loads",
		}),

		ScrollUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "volscope_scroll_updates_total",
			Help: "Total number of scroll transitions applied to the view window",
		}),

		RenderDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "volscope_render_duration_seconds",
			Help:    "Duration of chart renders",
			Buckets: prometheus.DefBuckets,
		}),

		ActiveScrollSockets: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "volscope_scroll_sockets_active",
			Help: "Number of currently open scroll websockets",
		}),
	}
}

func (m *Metrics) RecordPageView() {
	m.PageViews.Inc()
}

func (m *Metrics) RecordScrollUpdate() {
	m.ScrollUpdates.Inc()
}

func (m *Metrics) ObserveRender(seconds float64) {
	m.RenderDuration.Observe(seconds)
}

func (m *Metrics) SocketOpened() {
	m.ActiveScrollSockets.Inc()
}

func (m *Metrics) SocketClosed() {
	m.ActiveScrollSockets.Dec()
}
