package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/flocksim/internal/config"
	"github.com/san-kum/flocksim/internal/flock"
	"github.com/san-kum/flocksim/internal/sim"
)

// Experiment turns a config into populated worlds over a fixed arena.
type Experiment struct {
	cfg     *config.Config
	arena   flock.Arena
	metrics []string
	reg     *Registry
	script  sim.CommandSource
}

// New prepares an experiment. metricNames selects the metrics recorded by
// Run; empty means every registered metric.
func New(cfg *config.Config, arena flock.Arena, metricNames ...string) (*Experiment, error) {
	if _, err := flock.NewArena(arena.Width, arena.Height); err != nil {
		return nil, err
	}
	reg := NewRegistry()
	if len(metricNames) == 0 {
		metricNames = reg.ListMetrics()
	}
	for _, name := range metricNames {
		if _, err := reg.GetMetric(name); err != nil {
			return nil, err
		}
	}
	return &Experiment{cfg: cfg, arena: arena, metrics: metricNames, reg: reg}, nil
}

func (e *Experiment) Arena() flock.Arena { return e.arena }

// Build creates a world for seed with the configured agents and POIs. It
// satisfies sim.WorldFactory.
func (e *Experiment) Build(seed int64) (*sim.World, error) {
	w, err := sim.New(e.arena, seed)
	if err != nil {
		return nil, err
	}
	for i := 0; i < e.cfg.Agents; i++ {
		w.SpawnAgent()
	}
	for _, p := range e.cfg.POIPositions(e.arena) {
		w.AddPOI(p)
	}
	return w, nil
}

// Metrics returns fresh instances of the selected metrics.
func (e *Experiment) Metrics() []sim.Metric {
	out := make([]sim.Metric, 0, len(e.metrics))
	for _, name := range e.metrics {
		m, _ := e.reg.GetMetric(name)
		out = append(out, m)
	}
	return out
}

// WithScript attaches a command source that is replayed into every run. The
// source must be safe for concurrent reads when used with RunEnsemble.
func (e *Experiment) WithScript(src sim.CommandSource) *Experiment {
	e.script = src
	return e
}

func (e *Experiment) RunConfig() sim.RunConfig {
	return sim.RunConfig{
		Ticks:        e.cfg.Run.Ticks,
		TickDuration: e.cfg.TickDuration(),
		Commands:     e.script,
	}
}

// Run builds one world for seed and runs it headlessly.
func (e *Experiment) Run(ctx context.Context, seed int64, observers ...sim.Observer) (*sim.Result, error) {
	w, err := e.Build(seed)
	if err != nil {
		return nil, err
	}
	return sim.Run(ctx, w, e.RunConfig(), e.Metrics(), observers...)
}

// RunEnsemble runs n independently seeded worlds, seeds seed..seed+n-1.
func (e *Experiment) RunEnsemble(ctx context.Context, seed int64, n int) ([]*sim.Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("ensemble size must be positive, got %d", n)
	}
	return sim.NewEnsemble(e.Build, e.Metrics, n, seed).Run(ctx, e.RunConfig())
}
