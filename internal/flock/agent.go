package flock

import "github.com/san-kum/flocksim/internal/geom"

// AgentID identifies an agent for its whole lifetime. Two agents never share
// an ID, even when their position and velocity coincide.
type AgentID uint64

type Agent struct {
	ID  AgentID   `json:"id"`
	Pos geom.Vec2 `json:"pos"`
	Vel geom.Vec2 `json:"vel"`
}

func (a Agent) Speed() float64 { return a.Vel.Len() }

// EachNeighbor calls fn for every agent of flock strictly closer than radius
// to self, with its distance. self is excluded by ID, never by position.
func EachNeighbor(self Agent, flock []Agent, radius float64, fn func(other Agent, dist float64)) {
	for _, other := range flock {
		if other.ID == self.ID {
			continue
		}
		if dist := self.Pos.Dist(other.Pos); dist < radius {
			fn(other, dist)
		}
	}
}

// Neighbors returns the agents of flock strictly closer than radius to self.
func Neighbors(self Agent, flock []Agent, radius float64) []Agent {
	var out []Agent
	EachNeighbor(self, flock, radius, func(other Agent, _ float64) {
		out = append(out, other)
	})
	return out
}
