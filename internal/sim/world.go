package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/flocksim/internal/flock"
)

type World struct {
	arena    flock.Arena
	agents   []flock.Agent
	pois     []flock.POI
	selected int
	nextID   flock.AgentID
	rng      *rand.Rand
	elapsed  time.Duration
	tick     uint64
	pool     *agentPool
}

// New creates an empty world. The arena is fixed for the world's lifetime.
func New(arena flock.Arena, seed int64) (*World, error) {
	a, err := flock.NewArena(arena.Width, arena.Height)
	if err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}
	return &World{
		arena:  a,
		agents: make([]flock.Agent, 0),
		pois:   make([]flock.POI, 0, flock.MaxPOIs),
		rng:    rand.New(rand.NewSource(seed)),
		pool:   newAgentPool(),
	}, nil
}

func (w *World) Arena() flock.Arena     { return w.arena }
func (w *World) AgentCount() int        { return len(w.agents) }
func (w *World) POICount() int          { return len(w.pois) }
func (w *World) Ticks() uint64          { return w.tick }

// Selected returns the selection cursor, or -1 when there are no POIs.
func (w *World) Selected() int {
	if len(w.pois) == 0 {
		return -1
	}
	return w.selected
}

// Step advances every agent by one tick. All agents read the same pre-tick
// copy of the flock, so the result does not depend on iteration order.
func (w *World) Step(elapsed time.Duration) {
	prev := w.pool.GetAndCopy(w.agents)
	for i := range w.agents {
		w.agents[i] = flock.Step(prev[i], prev, w.pois, w.arena)
	}
	w.pool.Put(prev)

	w.tick++
	w.elapsed += elapsed
}
