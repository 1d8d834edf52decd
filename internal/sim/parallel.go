package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorldFactory builds an independent, populated world for one seed.
type WorldFactory func(seed int64) (*World, error)

// Ensemble runs several independently seeded worlds concurrently. Each run
// owns its world and its metrics, so no state is shared between goroutines.
type Ensemble struct {
	build      WorldFactory
	newMetrics func() []Metric
	numRuns    int
	seedStart  int64
}

func NewEnsemble(build WorldFactory, newMetrics func() []Metric, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, newMetrics: newMetrics, numRuns: numRuns, seedStart: seedStart}
}

// Run executes every run, at most GOMAXPROCS at a time. The first failure
// cancels the remaining runs and is returned together with whatever results
// were produced; a run that never started is nil.
func (e *Ensemble) Run(ctx context.Context, cfg RunConfig) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			w, err := e.build(e.seedStart + int64(idx))
			if err != nil {
				return err
			}
			var metrics []Metric
			if e.newMetrics != nil {
				metrics = e.newMetrics()
			}
			r, err := Run(ctx, w, cfg, metrics)
			results[idx] = r
			return err
		})
	}

	err := g.Wait()
	return results, err
}
