package flock

import (
	"math"

	"github.com/san-kum/flocksim/internal/geom"
)

// Steering holds the four unweighted forces acting on one agent in one tick.
type Steering struct {
	Separation geom.Vec2
	Alignment  geom.Vec2
	Cohesion   geom.Vec2
	Seek       geom.Vec2
}

// Total combines the forces with the fixed steering weights.
func (s Steering) Total() geom.Vec2 {
	return s.Separation.Mul(SeparationWeight).
		Add(s.Alignment.Mul(AlignmentWeight)).
		Add(s.Cohesion.Mul(CohesionWeight)).
		Add(s.Seek.Mul(SeekWeight))
}

func Forces(self Agent, flock []Agent, pois []POI) Steering {
	return Steering{
		Separation: Separation(self, flock),
		Alignment:  Alignment(self, flock),
		Cohesion:   Cohesion(self, flock),
		Seek:       Seek(self, pois),
	}
}

// Separation steers away from agents closer than SeparationRadius. Each
// contribution is weighted by the inverse square distance, floored at 1, so
// the closest neighbors dominate.
func Separation(self Agent, flock []Agent) geom.Vec2 {
	var steer geom.Vec2
	count := 0
	EachNeighbor(self, flock, SeparationRadius, func(other Agent, dist float64) {
		m := math.Max(dist, 1)
		steer = steer.Add(self.Pos.Sub(other.Pos).Div(m * m))
		count++
	})
	return steer.Div(float64(count)).Normalize()
}

// Alignment steers toward the mean heading of agents within AlignmentRadius.
func Alignment(self Agent, flock []Agent) geom.Vec2 {
	var sum geom.Vec2
	count := 0
	EachNeighbor(self, flock, AlignmentRadius, func(other Agent, _ float64) {
		sum = sum.Add(other.Vel)
		count++
	})
	return sum.Div(float64(count)).Normalize()
}

// Cohesion steers toward the centroid of agents within CohesionRadius.
func Cohesion(self Agent, flock []Agent) geom.Vec2 {
	var center geom.Vec2
	count := 0
	EachNeighbor(self, flock, CohesionRadius, func(other Agent, _ float64) {
		center = center.Add(other.Pos)
		count++
	})
	if count == 0 {
		return geom.Zero
	}
	return center.Div(float64(count)).Sub(self.Pos).Normalize()
}

// Seek sums one unit vector per POI within SeekRadius: toward attracting
// POIs, away from repelling ones. The sum is not renormalized, so several
// POIs in range reinforce each other.
func Seek(self Agent, pois []POI) geom.Vec2 {
	var force geom.Vec2
	for _, poi := range pois {
		diff := poi.Pos.Sub(self.Pos)
		if diff.Len() >= SeekRadius {
			continue
		}
		dir := diff.Normalize()
		if poi.Attract {
			force = force.Add(dir)
		} else {
			force = force.Sub(dir)
		}
	}
	return force
}

// Step advances one agent by a single tick against a pre-tick view of the
// flock and the current POIs. flock is only read.
func Step(self Agent, flock []Agent, pois []POI, arena Arena) Agent {
	vel := self.Vel.Add(Forces(self, flock, pois).Total()).Limit(MaxSpeed)
	pos := self.Pos.Add(vel)
	pos, vel = arena.Bounce(pos, vel)
	return Agent{ID: self.ID, Pos: pos, Vel: vel}
}
