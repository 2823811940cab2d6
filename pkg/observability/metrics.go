package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes counters and gauges for the editor core
type Metrics struct {
	registry *prometheus.Registry

	CommitsTotal   prometheus.Counter
	UndoTotal      prometheus.Counter
	RedoTotal      prometheus.Counter
	UndoStackDepth prometheus.Gauge
	RedoStackDepth prometheus.Gauge
	GesturesTotal  prometheus.Counter
	ReloadsTotal   prometheus.Counter
}

// NewMetrics creates a metrics set on a fresh registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		CommitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "topocanvas_commits_total",
			Help: "Number of undoable actions committed.",
		}),
		UndoTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "topocanvas_undo_total",
			Help: "Number of undo applications.",
		}),
		RedoTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "topocanvas_redo_total",
			Help: "Number of redo applications.",
		}),
		UndoStackDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "topocanvas_undo_stack_depth",
			Help: "Current depth of the undo stack.",
		}),
		RedoStackDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "topocanvas_redo_stack_depth",
			Help: "Current depth of the redo stack.",
		}),
		GesturesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "topocanvas_gestures_total",
			Help: "Number of completed geometry gestures.",
		}),
		ReloadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "topocanvas_topology_reloads_total",
			Help: "Number of topology file reloads applied to the store.",
		}),
	}
}

// Handler returns the HTTP handler serving the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
