package viz

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/flocksim/internal/sim"
)

var commandKeys = map[string]sim.Command{
	"up":        sim.MovePOI(sim.Up),
	"down":      sim.MovePOI(sim.Down),
	"left":      sim.MovePOI(sim.Left),
	"right":     sim.MovePOI(sim.Right),
	"tab":       sim.TogglePOI(),
	"insert":    sim.AddPOI(),
	"+":         sim.AddPOI(),
	"delete":    sim.RemovePOI(),
	"-":         sim.RemovePOI(),
	"enter":     sim.SpawnAgent(),
	"backspace": sim.RemoveAgent(),
	"esc":       sim.Quit(),
	"q":         sim.Quit(),
	"ctrl+c":    sim.Quit(),
}

// KeyToCommand decodes a key press into an engine command. Digits 1-9 select
// POIs 0-8 and 0 selects POI 9. Keys that only affect the view report false.
func KeyToCommand(msg tea.KeyMsg) (sim.Command, bool) {
	key := msg.String()
	if cmd, ok := commandKeys[key]; ok {
		return cmd, true
	}
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if key[0] == '0' {
			idx = 9
		}
		return sim.SelectPOI(idx), true
	}
	return sim.Command{}, false
}
