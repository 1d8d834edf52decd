package sim

import (
	"slices"
	"time"

	"github.com/san-kum/flocksim/internal/flock"
)

// Snapshot is an immutable copy of the world between ticks.
type Snapshot struct {
	Arena      flock.Arena
	Agents     []flock.Agent
	POIs       []flock.POI
	Selected   int // -1 when there are no POIs
	Elapsed    time.Duration
	Tick       uint64
	AgentCount int
}

func (w *World) Snapshot() Snapshot {
	return Snapshot{
		Arena:      w.arena,
		Agents:     slices.Clone(w.agents),
		POIs:       slices.Clone(w.pois),
		Selected:   w.Selected(),
		Elapsed:    w.elapsed,
		Tick:       w.tick,
		AgentCount: len(w.agents),
	}
}

func (s Snapshot) SelectedPOI() (flock.POI, bool) {
	if s.Selected < 0 || s.Selected >= len(s.POIs) {
		return flock.POI{}, false
	}
	return s.POIs[s.Selected], true
}
