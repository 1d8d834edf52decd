package flock

import (
	"fmt"
	"math"

	"github.com/san-kum/flocksim/internal/geom"
)

type Arena struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func NewArena(width, height float64) (Arena, error) {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return Arena{}, fmt.Errorf("%w: %vx%v", ErrInvalidArena, width, height)
	}
	return Arena{Width: width, Height: height}, nil
}

// Center is the cell-aligned middle of the arena, where new POIs appear.
func (a Arena) Center() geom.Vec2 {
	return geom.V(math.Floor(a.Width/2), math.Floor(a.Height/2))
}

// Contains reports whether p lies in [0,Width) x [0,Height), the range POIs
// are kept in.
func (a Arena) Contains(p geom.Vec2) bool {
	return p.X >= 0 && p.X < a.Width && p.Y >= 0 && p.Y < a.Height
}

// Bounce clamps each axis of pos to [0, dimension] independently and negates
// the matching velocity component whenever the agent touches or crosses a
// wall. Corners flip both components.
func (a Arena) Bounce(pos, vel geom.Vec2) (geom.Vec2, geom.Vec2) {
	pos.X, vel.X = bounceAxis(pos.X, vel.X, a.Width)
	pos.Y, vel.Y = bounceAxis(pos.Y, vel.Y, a.Height)
	return pos, vel
}

func bounceAxis(p, v, limit float64) (float64, float64) {
	switch {
	case p <= 0:
		return 0, -v
	case p >= limit:
		return limit, -v
	}
	return p, v
}
