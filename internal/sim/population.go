package sim

import (
	"github.com/san-kum/flocksim/internal/flock"
	"github.com/san-kum/flocksim/internal/geom"
)

// SpawnAgent appends an agent at a uniformly random position with a
// uniformly random velocity in [-SpawnSpeed, SpawnSpeed] per axis. The speed
// is clamped on the next tick, which gives new agents a short burst.
func (w *World) SpawnAgent() flock.Agent {
	pos := geom.V(w.rng.Float64()*w.arena.Width, w.rng.Float64()*w.arena.Height)
	vel := geom.V(
		(w.rng.Float64()*2-1)*flock.SpawnSpeed,
		(w.rng.Float64()*2-1)*flock.SpawnSpeed,
	)
	return w.AddAgent(pos, vel)
}

// AddAgent appends an agent with the given state and a fresh ID.
func (w *World) AddAgent(pos, vel geom.Vec2) flock.Agent {
	w.nextID++
	a := flock.Agent{ID: w.nextID, Pos: pos, Vel: vel}
	w.agents = append(w.agents, a)
	return a
}

// RemoveLastAgent drops the most recently added agent. It reports false when
// the population is already empty.
func (w *World) RemoveLastAgent() bool {
	if len(w.agents) == 0 {
		return false
	}
	w.agents = w.agents[:len(w.agents)-1]
	return true
}
