package config

import "sort"

var Presets = map[string]*Config{
	"calm": {
		Arena: ArenaConfig{Scale: DefaultScale}, TickMs: DefaultTickMs, Theme: "ocean",
		Agents: 12,
		Log:    LogConfig{Level: DefaultLogLevel}, Run: RunConfig{Ticks: DefaultRunTicks},
	},
	"flock": {
		Arena: ArenaConfig{Scale: DefaultScale}, TickMs: DefaultTickMs, Theme: DefaultTheme,
		Agents: 60,
		Log:    LogConfig{Level: DefaultLogLevel}, Run: RunConfig{Ticks: DefaultRunTicks},
	},
	"gauntlet": {
		Arena: ArenaConfig{Scale: DefaultScale}, TickMs: DefaultTickMs, Theme: "sunset",
		Agents: 40,
		POIs: []POIConfig{
			{X: 0.85, Y: 0.5, Attract: true},
			{X: 0.35, Y: 0.25, Attract: false},
			{X: 0.5, Y: 0.5, Attract: false},
			{X: 0.65, Y: 0.75, Attract: false},
		},
		Log: LogConfig{Level: DefaultLogLevel}, Run: RunConfig{Ticks: DefaultRunTicks},
	},
	"orbit": {
		Arena: ArenaConfig{Scale: DefaultScale}, TickMs: DefaultTickMs, Theme: "retro",
		Agents: 30,
		POIs: []POIConfig{
			{X: 0.25, Y: 0.5, Attract: true},
			{X: 0.75, Y: 0.5, Attract: true},
		},
		Log: LogConfig{Level: DefaultLogLevel}, Run: RunConfig{Ticks: DefaultRunTicks},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
