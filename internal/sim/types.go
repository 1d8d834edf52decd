package sim

import (
	"fmt"
	"time"
)

// Metric aggregates a scalar over the snapshots of a run.
type Metric interface {
	Name() string
	Observe(s Snapshot)
	// Last is the value computed for the most recent snapshot.
	Last() float64
	// Value is the aggregate over every observed snapshot.
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(s Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s Snapshot)

func (f ObserverFunc) OnTick(s Snapshot) { f(s) }

// CommandSource feeds scripted commands into a headless run.
type CommandSource interface {
	// CommandsAt returns the commands to queue once tick ticks have completed.
	CommandsAt(tick uint64) []Command
}

type RunConfig struct {
	Ticks        int
	TickDuration time.Duration
	// Commands is optional. Queued commands are consumed one per tick, as in
	// the interactive loop, and a quit command ends the run early.
	Commands CommandSource
}

func DefaultRunConfig() RunConfig {
	return RunConfig{Ticks: 600, TickDuration: TickBudget}
}

func (c RunConfig) Validate() error {
	if c.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", c.Ticks)
	}
	if c.TickDuration <= 0 {
		return fmt.Errorf("tick duration must be positive, got %v", c.TickDuration)
	}
	return nil
}

type Result struct {
	Final      Snapshot
	Metrics    map[string]float64
	Series     map[string][]float64
	Ticks      []uint64
	TicksTaken int

	order []string
}

// MetricNames returns the series names in the order the metrics were given.
func (r *Result) MetricNames() []string {
	return r.order
}
