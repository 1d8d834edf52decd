package experiment

import (
	"context"
	"testing"

	"github.com/san-kum/flocksim/internal/config"
	"github.com/san-kum/flocksim/internal/flock"
	"github.com/san-kum/flocksim/internal/metrics"
	"github.com/san-kum/flocksim/internal/sim"
)

func testConfig() *config.Config {
	cfg := config.GetPreset("gauntlet")
	cfg.Agents = 8
	cfg.Run.Ticks = 20
	return cfg
}

func TestNew_UnknownMetric(t *testing.T) {
	_, err := New(testConfig(), flock.Arena{Width: 40, Height: 20}, "nope")
	if err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestNew_BadArena(t *testing.T) {
	if _, err := New(testConfig(), flock.Arena{}); err == nil {
		t.Error("expected error for empty arena")
	}
}

func TestBuild(t *testing.T) {
	cfg := testConfig()
	e, err := New(cfg, flock.Arena{Width: 40, Height: 20})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	w, err := e.Build(3)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if w.AgentCount() != cfg.Agents {
		t.Errorf("agents = %d, want %d", w.AgentCount(), cfg.Agents)
	}
	if w.POICount() != len(cfg.POIs) {
		t.Errorf("pois = %d, want %d", w.POICount(), len(cfg.POIs))
	}

	snap := w.Snapshot()
	for i, p := range snap.POIs {
		if p.Attract != cfg.POIs[i].Attract {
			t.Errorf("poi %d polarity not taken from config", i)
		}
	}
}

func TestBuild_SameSeedSameWorld(t *testing.T) {
	e, _ := New(testConfig(), flock.Arena{Width: 40, Height: 20})
	a, _ := e.Build(11)
	b, _ := e.Build(11)

	sa, sb := a.Snapshot(), b.Snapshot()
	for i := range sa.Agents {
		if sa.Agents[i] != sb.Agents[i] {
			t.Fatalf("agent %d differs between identical seeds", i)
		}
	}
}

func TestRun(t *testing.T) {
	e, err := New(testConfig(), flock.Arena{Width: 40, Height: 20}, metrics.NamePolarization, metrics.NameMeanSpeed)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	r, err := e.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if r.TicksTaken != 20 {
		t.Errorf("ticks = %d, want 20", r.TicksTaken)
	}
	names := r.MetricNames()
	if len(names) != 2 || names[0] != metrics.NamePolarization {
		t.Errorf("metric order = %v", names)
	}
}

func TestRunEnsemble(t *testing.T) {
	e, _ := New(testConfig(), flock.Arena{Width: 40, Height: 20})
	results, err := e.RunEnsemble(context.Background(), 100, 3)
	if err != nil {
		t.Fatalf("ensemble: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if len(r.Metrics) != len(NewRegistry().ListMetrics()) {
			t.Errorf("run %d has %d metrics", i, len(r.Metrics))
		}
	}

	if _, err := e.RunEnsemble(context.Background(), 1, 0); err == nil {
		t.Error("expected error for empty ensemble")
	}
}

type spawnAtStart struct{ n int }

func (s spawnAtStart) CommandsAt(tick uint64) []sim.Command {
	if tick != 0 {
		return nil
	}
	cmds := make([]sim.Command, s.n)
	for i := range cmds {
		cmds[i] = sim.SpawnAgent()
	}
	return cmds
}

func TestRunEnsemble_WithScript(t *testing.T) {
	cfg := testConfig()
	e, err := New(cfg, flock.Arena{Width: 40, Height: 20}, metrics.NamePolarization)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	e.WithScript(spawnAtStart{n: 5})

	results, err := e.RunEnsemble(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("ensemble: %v", err)
	}
	for i, r := range results {
		if r.Final.AgentCount != cfg.Agents+5 {
			t.Errorf("run %d: agents = %d, want %d", i, r.Final.AgentCount, cfg.Agents+5)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	names := r.ListMetrics()
	if len(names) != 5 || names[0] != metrics.NameMeanSpeed {
		t.Errorf("unexpected metrics %v", names)
	}
	for _, name := range names {
		m, err := r.GetMetric(name)
		if err != nil {
			t.Fatalf("GetMetric(%s): %v", name, err)
		}
		if m.Name() != name {
			t.Errorf("metric %s reports name %s", name, m.Name())
		}
	}
	if _, err := r.GetMetric("energy"); err == nil {
		t.Error("expected error for unknown metric")
	}
}
