package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/flocksim/internal/flock"
	"github.com/san-kum/flocksim/internal/geom"
	"github.com/san-kum/flocksim/internal/sim"
)

const eps = 1e-9

func mustWorld(w, h float64, seed int64) *sim.World {
	world, err := sim.New(flock.Arena{Width: w, Height: h}, seed)
	Expect(err).NotTo(HaveOccurred())
	return world
}

func expectInvariants(snap sim.Snapshot) {
	for _, a := range snap.Agents {
		Expect(a.Vel.Len()).To(BeNumerically("<=", flock.MaxSpeed+eps), "agent %d speed", a.ID)
		Expect(a.Pos.X).To(BeNumerically(">=", 0))
		Expect(a.Pos.X).To(BeNumerically("<=", snap.Arena.Width))
		Expect(a.Pos.Y).To(BeNumerically(">=", 0))
		Expect(a.Pos.Y).To(BeNumerically("<=", snap.Arena.Height))
	}
}

var _ = Describe("World", func() {
	var world *sim.World

	BeforeEach(func() {
		world = mustWorld(50, 20, 7)
	})

	Describe("per-tick invariants", func() {
		It("keeps every agent under the speed cap and inside the arena", func() {
			for i := 0; i < 60; i++ {
				world.SpawnAgent()
			}
			world.SpawnPOI(geom.V(10, 10))
			world.SpawnPOI(geom.V(40, 5))
			world.TogglePOI()

			for tick := 0; tick < 300; tick++ {
				world.Step(sim.TickBudget)
				expectInvariants(world.Snapshot())
			}
		})

		It("clamps burst spawns on the very first tick", func() {
			world.AddAgent(geom.V(25, 10), geom.V(10, -10))
			world.Step(sim.TickBudget)

			a := world.Snapshot().Agents[0]
			Expect(a.Vel.Len()).To(BeNumerically("~", flock.MaxSpeed, eps))
		})
	})

	Describe("boundary handling", func() {
		It("reflects an agent leaving through the left wall", func() {
			world.AddAgent(geom.V(0, 10), geom.V(-0.5, 0))
			world.Step(sim.TickBudget)

			a := world.Snapshot().Agents[0]
			Expect(a.Pos.X).To(Equal(0.0))
			Expect(a.Vel.X).To(BeNumerically(">", 0))
		})

		It("flips both components in a corner", func() {
			world.AddAgent(geom.V(49.8, 19.8), geom.V(0.6, 0.6))
			world.Step(sim.TickBudget)

			a := world.Snapshot().Agents[0]
			Expect(a.Pos).To(Equal(geom.V(50, 20)))
			Expect(a.Vel.X).To(BeNumerically("<", 0))
			Expect(a.Vel.Y).To(BeNumerically("<", 0))
		})
	})

	Describe("separation", func() {
		It("pushes two close agents apart", func() {
			world.AddAgent(geom.V(24.5, 10), geom.Zero)
			world.AddAgent(geom.V(25.5, 10), geom.Zero)

			before := world.Snapshot()
			world.Step(sim.TickBudget)
			after := world.Snapshot()

			d0 := before.Agents[0].Pos.Dist(before.Agents[1].Pos)
			d1 := after.Agents[0].Pos.Dist(after.Agents[1].Pos)
			Expect(d1).To(BeNumerically(">=", d0-eps))
		})

		It("lets agents with identical state interact with a third agent", func() {
			twinA := world.AddAgent(geom.V(10, 10), geom.Zero)
			twinB := world.AddAgent(geom.V(10, 10), geom.Zero)
			third := world.AddAgent(geom.V(11, 10), geom.Zero)
			snap := world.Snapshot()

			Expect(flock.Neighbors(twinA, snap.Agents, flock.SeparationRadius)).To(HaveLen(2))
			Expect(flock.Neighbors(twinB, snap.Agents, flock.SeparationRadius)).To(HaveLen(2))
			Expect(flock.Neighbors(third, snap.Agents, flock.SeparationRadius)).To(HaveLen(2))

			world.Step(sim.TickBudget)
			after := world.Snapshot()
			Expect(after.Agents[0].Vel.X).To(BeNumerically("<", 0))
			Expect(after.Agents[1].Vel.X).To(BeNumerically("<", 0))
			Expect(after.Agents[2].Vel.X).To(BeNumerically(">", 0))
		})
	})

	Describe("seek", func() {
		var self flock.Agent

		BeforeEach(func() {
			self = flock.Agent{ID: 1, Pos: geom.V(10, 10)}
		})

		It("points toward an attractor within range", func() {
			poi := flock.NewPOI(geom.V(20, 10))
			force := flock.Seek(self, []flock.POI{poi})
			Expect(force.Dot(poi.Pos.Sub(self.Pos))).To(BeNumerically(">", 0))
		})

		It("points away once the POI is toggled to repel", func() {
			poi := flock.NewPOI(geom.V(20, 10))
			poi.Toggle()
			force := flock.Seek(self, []flock.POI{poi})
			Expect(force.Dot(poi.Pos.Sub(self.Pos))).To(BeNumerically("<", 0))
		})

		It("ignores POIs at or beyond the seek radius", func() {
			poi := flock.NewPOI(geom.V(10+flock.SeekRadius, 10))
			Expect(flock.Seek(self, []flock.POI{poi}).IsZero()).To(BeTrue())
		})
	})

	Describe("simultaneous updates", func() {
		It("does not depend on agent insertion order", func() {
			states := [][2]geom.Vec2{
				{geom.V(10, 10), geom.V(0.5, 0)},
				{geom.V(11, 10.5), geom.V(0, 0.5)},
				{geom.V(12, 9), geom.V(-0.3, 0.2)},
				{geom.V(13.5, 11), geom.V(0.1, -0.4)},
			}
			forward := mustWorld(50, 20, 1)
			reverse := mustWorld(50, 20, 1)
			for i := range states {
				forward.AddAgent(states[i][0], states[i][1])
				reverse.AddAgent(states[len(states)-1-i][0], states[len(states)-1-i][1])
			}

			forward.Step(sim.TickBudget)
			reverse.Step(sim.TickBudget)
			f := forward.Snapshot().Agents
			r := reverse.Snapshot().Agents

			for i := range f {
				j := len(r) - 1 - i
				Expect(f[i].Pos.X).To(BeNumerically("~", r[j].Pos.X, eps))
				Expect(f[i].Pos.Y).To(BeNumerically("~", r[j].Pos.Y, eps))
				Expect(f[i].Vel.X).To(BeNumerically("~", r[j].Vel.X, eps))
				Expect(f[i].Vel.Y).To(BeNumerically("~", r[j].Vel.Y, eps))
			}
		})
	})

	Describe("command dispatch", func() {
		It("never exceeds the POI cap", func() {
			for i := 0; i < 15; i++ {
				Expect(world.Apply(sim.AddPOI())).To(BeFalse())
			}
			Expect(world.POICount()).To(Equal(flock.MaxPOIs))
		})

		It("treats removing from an empty population as a no-op", func() {
			Expect(world.Apply(sim.RemoveAgent())).To(BeFalse())
			Expect(world.AgentCount()).To(BeZero())
		})

		It("keeps the prior selection when selecting past the end", func() {
			for i := 0; i < 3; i++ {
				world.Apply(sim.AddPOI())
				world.Apply(sim.MovePOI(sim.Right))
			}
			world.Apply(sim.SelectPOI(1))
			world.Apply(sim.SelectPOI(5))
			Expect(world.Selected()).To(Equal(1))
		})

		It("reports quit", func() {
			Expect(world.Apply(sim.Quit())).To(BeTrue())
		})

		It("ignores unknown kinds", func() {
			Expect(world.Apply(sim.Command{Kind: sim.CommandKind(99)})).To(BeFalse())
			Expect(world.AgentCount()).To(BeZero())
			Expect(world.POICount()).To(BeZero())
		})
	})

	Describe("end to end", func() {
		It("leaves a lone stationary agent in place", func() {
			world.AddAgent(geom.V(25, 10), geom.Zero)
			snap, quit := world.Tick(sim.NewQueue(0), sim.TickBudget)

			Expect(quit).To(BeFalse())
			Expect(snap.Agents).To(HaveLen(1))
			Expect(snap.Agents[0].Pos).To(Equal(geom.V(25, 10)))
			Expect(snap.Agents[0].Vel.IsZero()).To(BeTrue())
			Expect(math.IsNaN(snap.Agents[0].Pos.X)).To(BeFalse())
		})
	})
})
