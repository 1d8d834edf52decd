package sim

import "time"

// TickBudget is the target wall-clock duration of one tick.
const TickBudget = 33 * time.Millisecond

// Tick runs one full engine tick: apply at most one queued command, then step
// every agent. A quit command still lets the step finish; the caller stops
// after rendering the returned snapshot.
func (w *World) Tick(q *Queue, elapsed time.Duration) (Snapshot, bool) {
	quit := w.ApplyNext(q)
	w.Step(elapsed)
	return w.Snapshot(), quit
}

// ApplyNext pops and applies at most one queued command without stepping.
func (w *World) ApplyNext(q *Queue) (quit bool) {
	if q == nil {
		return false
	}
	if cmd, ok := q.Pop(); ok {
		return w.Apply(cmd)
	}
	return false
}

// NextDelay is how long to idle before the next tick so that a tick started
// at start lasts budget. An overrun yields zero; there is no catch-up.
func NextDelay(start, now time.Time, budget time.Duration) time.Duration {
	spent := now.Sub(start)
	if spent >= budget {
		return 0
	}
	return budget - spent
}
