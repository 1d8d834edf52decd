package geom

import (
	"fmt"
	"math"
)

const Epsilon = 1e-9

// Vec2 is a point or displacement in arena space. Y grows downward, matching
// terminal rows.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

var Zero = Vec2{}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

func (v Vec2) Add(o Vec2) Vec2        { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2        { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(s float64) Vec2     { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64     { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LenSqr() float64        { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float64           { return math.Sqrt(v.LenSqr()) }
func (v Vec2) Dist(o Vec2) float64    { return v.Sub(o).Len() }
func (v Vec2) IsZero() bool           { return v.X == 0 && v.Y == 0 }

// Div divides both components by s. Dividing by zero returns v unchanged, so
// averaging over an empty neighborhood stays at the zero vector.
func (v Vec2) Div(s float64) Vec2 {
	if s == 0 {
		return v
	}
	return Vec2{v.X / s, v.Y / s}
}

// Normalize returns the unit vector in the direction of v. The zero vector is
// returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// Limit scales v down to length max, preserving direction. It never scales up.
func (v Vec2) Limit(max float64) Vec2 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Mul(max / l)
}

// Eq reports approximate equality within Epsilon.
func (v Vec2) Eq(o Vec2) bool {
	return math.Abs(v.X-o.X) <= Epsilon && math.Abs(v.Y-o.Y) <= Epsilon
}
