package metrics

import (
	"github.com/san-kum/flocksim/internal/flock"
	"github.com/san-kum/flocksim/internal/sim"
)

// Crowding tracks the fraction of agents that have another agent closer than
// threshold.
type Crowding struct {
	name      string
	threshold float64
	sum       float64
	samples   int
	last      float64
}

func NewCrowding(threshold float64) *Crowding {
	return &Crowding{
		name:      NameCrowding,
		threshold: threshold,
	}
}

func (c *Crowding) Name() string {
	return c.name
}

func (c *Crowding) Observe(s sim.Snapshot) {
	c.last = c.fraction(s.Agents)
	c.sum += c.last
	c.samples++
}

func (c *Crowding) fraction(agents []flock.Agent) float64 {
	if len(agents) == 0 {
		return 0
	}
	crowded := 0
	for _, a := range agents {
		if len(flock.Neighbors(a, agents, c.threshold)) > 0 {
			crowded++
		}
	}
	return float64(crowded) / float64(len(agents))
}

func (c *Crowding) Last() float64 { return c.last }

func (c *Crowding) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *Crowding) Reset() {
	c.sum = 0
	c.samples = 0
	c.last = 0
}
