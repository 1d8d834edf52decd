package sim

import (
	"context"
)

// Run steps w headlessly for cfg.Ticks ticks, feeding every snapshot to the
// metrics and observers. On cancellation it returns the partial result along
// with ctx.Err().
func Run(ctx context.Context, w *World, cfg RunConfig, metrics []Metric, observers ...Observer) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		Metrics: make(map[string]float64, len(metrics)),
		Series:  make(map[string][]float64, len(metrics)),
		Ticks:   make([]uint64, 0, cfg.Ticks),
		order:   make([]string, 0, len(metrics)),
	}
	for _, m := range metrics {
		m.Reset()
		result.Series[m.Name()] = make([]float64, 0, cfg.Ticks)
		result.order = append(result.order, m.Name())
	}

	var q *Queue
	if cfg.Commands != nil {
		q = NewQueue(DefaultQueueSize)
	}

	var snap Snapshot
	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			result.finish(w.Snapshot(), metrics)
			return result, ctx.Err()
		default:
		}

		if q != nil {
			for _, c := range cfg.Commands.CommandsAt(w.Ticks()) {
				q.Push(c)
			}
		}

		var quit bool
		snap, quit = w.Tick(q, cfg.TickDuration)
		result.TicksTaken++
		result.Ticks = append(result.Ticks, snap.Tick)

		for _, m := range metrics {
			m.Observe(snap)
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Last())
		}
		for _, obs := range observers {
			obs.OnTick(snap)
		}
		if quit {
			break
		}
	}

	result.finish(snap, metrics)
	return result, nil
}

func (r *Result) finish(final Snapshot, metrics []Metric) {
	r.Final = final
	for _, m := range metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}
