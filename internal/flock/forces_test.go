package flock

import (
	"math"
	"testing"

	"github.com/san-kum/flocksim/internal/geom"
)

const tolerance = 1e-9

func agent(id AgentID, x, y, vx, vy float64) Agent {
	return Agent{ID: id, Pos: geom.V(x, y), Vel: geom.V(vx, vy)}
}

func TestForces_NoNeighbors(t *testing.T) {
	self := agent(1, 25, 10, 0, 0)
	s := Forces(self, []Agent{self}, nil)

	if !s.Separation.IsZero() || !s.Alignment.IsZero() || !s.Cohesion.IsZero() || !s.Seek.IsZero() {
		t.Errorf("expected all-zero steering, got %+v", s)
	}
}

func TestSeparation(t *testing.T) {
	self := agent(1, 10, 10, 0, 0)
	flock := []Agent{self, agent(2, 11, 10, 0, 0)}

	got := Separation(self, flock)
	if !got.Eq(geom.V(-1, 0)) {
		t.Errorf("Separation = %v, want (-1, 0)", got)
	}

	far := []Agent{self, agent(2, 13, 10, 0, 0)}
	if got := Separation(self, far); !got.IsZero() {
		t.Errorf("neighbor at radius should not count, got %v", got)
	}
}

func TestSeparation_InverseSquare(t *testing.T) {
	// A neighbor at distance 1 contributes 1, one at distance 2 contributes
	// 2/4 = 0.5 in the opposite direction.
	self := agent(1, 10, 10, 0, 0)
	flock := []Agent{self, agent(2, 9, 10, 0, 0), agent(3, 12, 10, 0, 0)}

	got := Separation(self, flock)
	if !got.Eq(geom.V(1, 0)) {
		t.Errorf("Separation = %v, want (1, 0)", got)
	}
}

func TestAlignment(t *testing.T) {
	self := agent(1, 10, 10, 0, 0)
	flock := []Agent{
		self,
		agent(2, 12, 10, 1, 0),
		agent(3, 10, 12, 0, 1),
		agent(4, 30, 10, -1, 0), // out of range
	}

	got := Alignment(self, flock)
	want := geom.V(1, 1).Normalize()
	if !got.Eq(want) {
		t.Errorf("Alignment = %v, want %v", got, want)
	}
}

func TestCohesion(t *testing.T) {
	self := agent(1, 10, 10, 0, 0)
	flock := []Agent{self, agent(2, 14, 10, 0, 0), agent(3, 14, 12, 0, 0)}

	got := Cohesion(self, flock)
	want := geom.V(4, 1).Normalize()
	if !got.Eq(want) {
		t.Errorf("Cohesion = %v, want %v", got, want)
	}
}

func TestSeek_Polarity(t *testing.T) {
	self := agent(1, 10, 10, 0, 0)
	poi := NewPOI(geom.V(20, 10))
	toPOI := poi.Pos.Sub(self.Pos)

	attract := Seek(self, []POI{poi})
	if attract.Dot(toPOI) <= 0 {
		t.Errorf("attracting seek %v should point toward POI", attract)
	}

	poi.Toggle()
	repel := Seek(self, []POI{poi})
	if repel.Dot(toPOI) >= 0 {
		t.Errorf("repelling seek %v should point away from POI", repel)
	}
	if !repel.Eq(attract.Mul(-1)) {
		t.Errorf("repel %v should mirror attract %v", repel, attract)
	}
}

func TestSeek_AccumulatesWithoutNormalizing(t *testing.T) {
	self := agent(1, 10, 10, 0, 0)
	pois := []POI{NewPOI(geom.V(15, 10)), NewPOI(geom.V(20, 10)), NewPOI(geom.V(40, 10))}

	got := Seek(self, pois)
	if !got.Eq(geom.V(2, 0)) {
		t.Errorf("Seek = %v, want (2, 0)", got)
	}
}

func TestSeek_POIOnAgent(t *testing.T) {
	self := agent(1, 10, 10, 0, 0)
	if got := Seek(self, []POI{NewPOI(geom.V(10, 10))}); !got.IsZero() {
		t.Errorf("POI on agent should contribute zero, got %v", got)
	}
}

func TestEachNeighbor_StrictRadius(t *testing.T) {
	self := agent(1, 0, 0, 0, 0)
	flock := []Agent{
		self,
		agent(2, 1, 0, 0, 0),
		agent(3, 3, 0, 0, 0),
		agent(4, 0, 2.5, 0, 0),
	}

	var ids []AgentID
	var dists []float64
	EachNeighbor(self, flock, 3, func(other Agent, dist float64) {
		ids = append(ids, other.ID)
		dists = append(dists, dist)
	})
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 4 {
		t.Fatalf("neighbors = %v, want [2 4]", ids)
	}
	if dists[0] != 1 || dists[1] != 2.5 {
		t.Errorf("distances = %v, want [1 2.5]", dists)
	}
}

func TestNeighbors_IdentityNotValue(t *testing.T) {
	// a and b share position and velocity; value equality would drop b from
	// a's neighborhood.
	a := agent(1, 10, 10, 0, 0)
	b := agent(2, 10, 10, 0, 0)
	c := agent(3, 11, 10, 0, 0)
	flock := []Agent{a, b, c}

	got := Neighbors(a, flock, SeparationRadius)
	if len(got) != 2 {
		t.Fatalf("expected 2 neighbors, got %d", len(got))
	}
	for _, n := range got {
		if n.ID == a.ID {
			t.Error("self included in neighbors")
		}
	}

	// b at zero distance contributes nothing, c pushes a in -x; averaged over
	// two neighbors and normalized.
	if sep := Separation(a, flock); !sep.Eq(geom.V(-1, 0)) {
		t.Errorf("Separation = %v, want (-1, 0)", sep)
	}
	if sep := Separation(b, flock); !sep.Eq(geom.V(-1, 0)) {
		t.Errorf("twin Separation = %v, want (-1, 0)", sep)
	}
}

func TestStep_EndToEndStationary(t *testing.T) {
	arena := Arena{Width: 50, Height: 20}
	self := agent(1, 25, 10, 0, 0)

	got := Step(self, []Agent{self}, nil, arena)
	if got.Pos != geom.V(25, 10) || !got.Vel.IsZero() {
		t.Errorf("stationary agent moved: %+v", got)
	}
	if got.ID != self.ID {
		t.Errorf("ID changed: %d", got.ID)
	}
}

func TestStep_SpeedCap(t *testing.T) {
	arena := Arena{Width: 50, Height: 20}
	self := agent(1, 25, 10, 9, -7)

	got := Step(self, []Agent{self}, nil, arena)
	if s := got.Speed(); s > MaxSpeed+tolerance {
		t.Errorf("speed %v exceeds cap", s)
	}
	want := geom.V(9, -7).Normalize()
	if !got.Vel.Eq(want) {
		t.Errorf("cap should preserve direction: got %v, want %v", got.Vel, want)
	}
}

func TestStep_SlowAgentNotScaledUp(t *testing.T) {
	arena := Arena{Width: 50, Height: 20}
	self := agent(1, 25, 10, 0.2, 0)

	got := Step(self, []Agent{self}, nil, arena)
	if math.Abs(got.Speed()-0.2) > tolerance {
		t.Errorf("speed = %v, want 0.2", got.Speed())
	}
}

func TestStep_LeftWallBounce(t *testing.T) {
	arena := Arena{Width: 50, Height: 20}
	self := agent(1, 0, 10, -0.5, 0)

	got := Step(self, []Agent{self}, nil, arena)
	if got.Pos.X != 0 {
		t.Errorf("x = %v, want 0", got.Pos.X)
	}
	if got.Vel.X <= 0 {
		t.Errorf("vx = %v, want positive", got.Vel.X)
	}
}

func TestStep_SeparatesClosePair(t *testing.T) {
	arena := Arena{Width: 50, Height: 20}
	a := agent(1, 24, 10, 0, 0)
	b := agent(2, 26, 10, 0, 0)
	flock := []Agent{a, b}

	na := Step(a, flock, nil, arena)
	nb := Step(b, flock, nil, arena)

	before := a.Pos.Dist(b.Pos)
	after := na.Pos.Dist(nb.Pos)
	if after < before-tolerance {
		t.Errorf("pair moved closer: %v -> %v", before, after)
	}
}

func TestStep_DoesNotMutateFlock(t *testing.T) {
	arena := Arena{Width: 50, Height: 20}
	flock := []Agent{agent(1, 10, 10, 1, 0), agent(2, 11, 10, -1, 0)}
	orig := append([]Agent(nil), flock...)

	Step(flock[0], flock, nil, arena)
	for i := range flock {
		if flock[i] != orig[i] {
			t.Errorf("flock[%d] mutated: %+v", i, flock[i])
		}
	}
}

func TestSteering_Total(t *testing.T) {
	s := Steering{
		Separation: geom.V(1, 0),
		Alignment:  geom.V(0, 1),
		Cohesion:   geom.V(-1, 0),
		Seek:       geom.V(0, -1),
	}
	want := geom.V(SeparationWeight-CohesionWeight, AlignmentWeight-SeekWeight)
	if got := s.Total(); !got.Eq(want) {
		t.Errorf("Total = %v, want %v", got, want)
	}
}

func TestPOI_Toggle(t *testing.T) {
	p := NewPOI(geom.V(1, 1))
	if !p.Attract || p.Polarity() != "attract" {
		t.Fatal("new POI should attract")
	}
	p.Toggle()
	if p.Attract || p.Polarity() != "repel" {
		t.Error("toggle should switch to repel")
	}
}
