// Package metrics expone contadores Prometheus de asignación e inventario.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/bloodbank-api/internal/application/inventory"
	"github.com/jhoicas/bloodbank-api/internal/application/requests"
	"github.com/jhoicas/bloodbank-api/internal/domain/matching"
)

const namespace = "bloodbank"

var (
	_ requests.AllocationRecorder = (*Recorder)(nil)
	_ inventory.ExpiryRecorder    = (*Recorder)(nil)
)

// Recorder implementa los puertos de métricas de requests e inventory.
type Recorder struct {
	registry       *prometheus.Registry
	allocations    *prometheus.CounterVec
	unitsRequested prometheus.Counter
	shortfall      prometheus.Histogram
	expired        prometheus.Counter
}

// New registra los colectores en un registry propio (más los de Go y proceso).
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Recorder{
		registry: reg,
		allocations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocations_total",
			Help:      "Intentos de asignación por resultado.",
		}, []string{"outcome"}),
		unitsRequested: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocation_units_requested_total",
			Help:      "Unidades solicitadas en intentos de asignación.",
		}),
		shortfall: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "allocation_shortfall_units",
			Help:      "Unidades faltantes por asignación (0 si se cubrió).",
			Buckets:   []float64{0, 1, 2, 4, 8, 16},
		}),
		expired: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_units_expired_total",
			Help:      "Unidades marcadas como expired por el barrido de vencimientos.",
		}),
	}
}

// RecordAllocation cuenta el resultado y el faltante de una asignación.
func (r *Recorder) RecordAllocation(outcome matching.Outcome, unitsNeeded, availableQuantity int) {
	r.allocations.WithLabelValues(string(outcome)).Inc()
	r.unitsRequested.Add(float64(unitsNeeded))
	missing := unitsNeeded - availableQuantity
	if missing < 0 {
		missing = 0
	}
	r.shortfall.Observe(float64(missing))
}

// RecordExpired suma las filas afectadas por ExpireOverdue.
func (r *Recorder) RecordExpired(n int64) {
	if n > 0 {
		r.expired.Add(float64(n))
	}
}

// Handler handler HTTP para /metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry expone el registry (tests y colectores adicionales).
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }
