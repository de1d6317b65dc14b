// Package metrics exposes live optimization progress as Prometheus
// gauges and counters, scraped by monitor's /metrics handler.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry holds the Prometheus collectors a running optimization
// updates. Each taskmapper process owns exactly one, registered into
// its own prometheus.Registry so concurrent tests don't collide on the
// global default registry.
type Registry struct {
	registry *prometheus.Registry

	EvaluationsTotal prometheus.Counter
	ObjectiveBest    prometheus.Gauge
	Temperature      prometheus.Gauge

	lastEvals int
}

// New builds a Registry with its collectors registered.
func New() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.EvaluationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "taskmapper",
		Name:      "evaluations_total",
		Help:      "Number of objective-function evaluations performed by the current run.",
	})
	r.ObjectiveBest = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "taskmapper",
		Name:      "objective_best",
		Help:      "Best objective value found so far by the current run.",
	})
	r.Temperature = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "taskmapper",
		Name:      "temperature_current",
		Help:      "Current simulated-annealing temperature, zero outside SA-family methods.",
	})

	r.registry.MustRegister(r.EvaluationsTotal, r.ObjectiveBest, r.Temperature)
	return r
}

// Gatherer exposes the underlying registry for promhttp.HandlerFor.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.registry }

// Observe folds one progress sample into the registry. evals is the
// running total reported so far this run; only the delta since the
// last Observe call is added to EvaluationsTotal, since Prometheus
// counters are cumulative while the sample itself carries a total.
func (r *Registry) Observe(evals int, best, temperature float64) {
	if delta := evals - r.lastEvals; delta > 0 {
		r.EvaluationsTotal.Add(float64(delta))
		r.lastEvals = evals
	}
	r.ObjectiveBest.Set(best)
	r.Temperature.Set(temperature)
}
