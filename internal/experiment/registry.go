package experiment

import (
	"fmt"

	"github.com/san-kum/flocksim/internal/flock"
	"github.com/san-kum/flocksim/internal/metrics"
	"github.com/san-kum/flocksim/internal/sim"
)

// Registry maps metric names to constructors.
type Registry struct {
	metrics map[string]func() sim.Metric
	order   []string
}

func NewRegistry() *Registry {
	r := &Registry{metrics: make(map[string]func() sim.Metric)}

	r.register(metrics.NameMeanSpeed, func() sim.Metric { return metrics.NewMeanSpeed() })
	r.register(metrics.NamePolarization, func() sim.Metric { return metrics.NewPolarization() })
	r.register(metrics.NameNearestNeighbor, func() sim.Metric { return metrics.NewNearestNeighbor() })
	r.register(metrics.NameWallContacts, func() sim.Metric { return metrics.NewWallContacts() })
	r.register(metrics.NameCrowding, func() sim.Metric { return metrics.NewCrowding(flock.SeparationRadius) })

	return r
}

func (r *Registry) register(name string, fn func() sim.Metric) {
	r.metrics[name] = fn
	r.order = append(r.order, name)
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

// ListMetrics returns the metric names in registration order.
func (r *Registry) ListMetrics() []string {
	return append([]string(nil), r.order...)
}
