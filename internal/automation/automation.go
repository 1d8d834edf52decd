// Package automation plays scripted scenarios against a headless world.
//
// A scenario is a YAML list of timed commands:
//
//	name: crossing
//	steps:
//	  - {at: 0, command: spawn-agent, repeat: 20}
//	  - {at: 0, command: add-poi}
//	  - {at: 60, command: move-poi, dir: left, repeat: 15}
//	  - {at: 120, command: toggle-poi}
//
// "at" counts completed ticks. Commands are queued at that point and the
// engine consumes one per tick.
package automation

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/flocksim/internal/sim"
)

// Scenario is a named sequence of scripted steps.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step queues Command, Repeat times, once At ticks have completed.
type Step struct {
	At      uint64 `yaml:"at"`
	Command string `yaml:"command"`
	Dir     string `yaml:"dir,omitempty"`
	Index   int    `yaml:"index,omitempty"`
	Repeat  int    `yaml:"repeat,omitempty"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// Script is a compiled scenario. It is read-only, so one script can feed
// several concurrent runs.
type Script struct {
	byTick map[uint64][]sim.Command
	ticks  []uint64
}

// Compile checks every step and groups the commands by tick.
func (s *Scenario) Compile() (*Script, error) {
	script := &Script{byTick: make(map[uint64][]sim.Command)}
	for i, step := range s.Steps {
		cmd, err := ParseCommand(step.Command, step.Dir, step.Index)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		n := step.Repeat
		if n < 0 {
			return nil, fmt.Errorf("step %d: negative repeat %d", i+1, n)
		}
		if n == 0 {
			n = 1
		}
		if _, ok := script.byTick[step.At]; !ok {
			script.ticks = append(script.ticks, step.At)
		}
		for j := 0; j < n; j++ {
			script.byTick[step.At] = append(script.byTick[step.At], cmd)
		}
	}
	sort.Slice(script.ticks, func(a, b int) bool { return script.ticks[a] < script.ticks[b] })
	return script, nil
}

func (s *Script) CommandsAt(tick uint64) []sim.Command {
	return s.byTick[tick]
}

// Len is the total number of scripted commands.
func (s *Script) Len() int {
	n := 0
	for _, cmds := range s.byTick {
		n += len(cmds)
	}
	return n
}

// LastTick is the latest tick at which commands are queued.
func (s *Script) LastTick() uint64 {
	if len(s.ticks) == 0 {
		return 0
	}
	return s.ticks[len(s.ticks)-1]
}

var directions = map[string]sim.Direction{
	"up":    sim.Up,
	"down":  sim.Down,
	"left":  sim.Left,
	"right": sim.Right,
}

// ParseCommand builds a command from its name as printed by
// sim.CommandKind.String. dir applies to move-poi and index to select-poi.
func ParseCommand(name, dir string, index int) (sim.Command, error) {
	switch name {
	case sim.CmdMovePOI.String():
		d, ok := directions[dir]
		if !ok {
			return sim.Command{}, fmt.Errorf("move-poi: unknown direction %q", dir)
		}
		return sim.MovePOI(d), nil
	case sim.CmdSelectPOI.String():
		return sim.SelectPOI(index), nil
	case sim.CmdTogglePOI.String():
		return sim.TogglePOI(), nil
	case sim.CmdAddPOI.String():
		return sim.AddPOI(), nil
	case sim.CmdRemovePOI.String():
		return sim.RemovePOI(), nil
	case sim.CmdSpawnAgent.String():
		return sim.SpawnAgent(), nil
	case sim.CmdRemoveAgent.String():
		return sim.RemoveAgent(), nil
	case sim.CmdQuit.String():
		return sim.Quit(), nil
	}
	return sim.Command{}, fmt.Errorf("unknown command %q", name)
}
