package metrics

import (
	"math"

	"github.com/san-kum/flocksim/internal/sim"
)

const (
	NameMeanSpeed       = "mean_speed"
	NamePolarization    = "polarization"
	NameNearestNeighbor = "nearest_neighbor"
	NameWallContacts    = "wall_contacts"
	NameCrowding        = "crowding"
)

// Mean averages a per-snapshot sample over a run.
type Mean struct {
	name    string
	sample  func(sim.Snapshot) float64
	sum     float64
	samples int
	last    float64
}

func NewMean(name string, sample func(sim.Snapshot) float64) *Mean {
	return &Mean{name: name, sample: sample}
}

func NewMeanSpeed() *Mean       { return NewMean(NameMeanSpeed, MeanSpeedOf) }
func NewPolarization() *Mean    { return NewMean(NamePolarization, PolarizationOf) }
func NewNearestNeighbor() *Mean { return NewMean(NameNearestNeighbor, NearestNeighborOf) }
func NewWallContacts() *Mean    { return NewMean(NameWallContacts, WallContactsOf) }

func (m *Mean) Name() string { return m.name }

func (m *Mean) Observe(s sim.Snapshot) {
	m.last = m.sample(s)
	m.sum += m.last
	m.samples++
}

func (m *Mean) Last() float64 { return m.last }

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
	m.last = 0
}

func MeanSpeedOf(s sim.Snapshot) float64 {
	if len(s.Agents) == 0 {
		return 0
	}
	total := 0.0
	for _, a := range s.Agents {
		total += a.Speed()
	}
	return total / float64(len(s.Agents))
}

// PolarizationOf is the flock order parameter |sum of unit headings| / n.
// It is 1 when every moving agent shares a heading and near 0 for a
// disordered flock. Stationary agents are ignored.
func PolarizationOf(s sim.Snapshot) float64 {
	var sumX, sumY float64
	n := 0
	for _, a := range s.Agents {
		if a.Vel.IsZero() {
			continue
		}
		h := a.Vel.Normalize()
		sumX += h.X
		sumY += h.Y
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Hypot(sumX, sumY) / float64(n)
}

// NearestNeighborOf averages each agent's distance to its closest other agent.
func NearestNeighborOf(s sim.Snapshot) float64 {
	if len(s.Agents) < 2 {
		return 0
	}
	total := 0.0
	for i, a := range s.Agents {
		best := math.Inf(1)
		for j, b := range s.Agents {
			if i == j {
				continue
			}
			if d := a.Pos.Dist(b.Pos); d < best {
				best = d
			}
		}
		total += best
	}
	return total / float64(len(s.Agents))
}

// WallContactsOf is the fraction of agents pinned to a wall this tick.
func WallContactsOf(s sim.Snapshot) float64 {
	if len(s.Agents) == 0 {
		return 0
	}
	hits := 0
	for _, a := range s.Agents {
		if a.Pos.X <= 0 || a.Pos.X >= s.Arena.Width || a.Pos.Y <= 0 || a.Pos.Y >= s.Arena.Height {
			hits++
		}
	}
	return float64(hits) / float64(len(s.Agents))
}
