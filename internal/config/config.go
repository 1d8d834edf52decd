package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/flocksim/internal/flock"
	"github.com/san-kum/flocksim/internal/geom"
)

const (
	DefaultScale    = 0.9
	DefaultTickMs   = 33
	DefaultTheme    = "cyberpunk"
	DefaultLogLevel = "info"
	DefaultRunTicks = 600

	// MaxArenaSize bounds fixed arena dimensions; the grid holds one cell per
	// unit.
	MaxArenaSize = 1000
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Arena  ArenaConfig `yaml:"arena"`
	Seed   int64       `yaml:"seed"`
	TickMs int         `yaml:"tick_ms"`
	Agents int         `yaml:"agents"`
	POIs   []POIConfig `yaml:"pois"`
	Theme  string      `yaml:"theme"`
	Log    LogConfig   `yaml:"log"`
	Run    RunConfig   `yaml:"run"`
}

// ArenaConfig fixes the arena size. Zero dimensions are derived from the
// terminal, scaled by Scale.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Scale  float64 `yaml:"scale"`
}

// POIConfig places a POI at a fraction of the arena size, so presets work
// for any terminal.
type POIConfig struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Attract bool    `yaml:"attract"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type RunConfig struct {
	Ticks int `yaml:"ticks"`
}

func DefaultConfig() *Config {
	return &Config{
		Arena:  ArenaConfig{Scale: DefaultScale},
		TickMs: DefaultTickMs,
		Theme:  DefaultTheme,
		Log:    LogConfig{Level: DefaultLogLevel},
		Run:    RunConfig{Ticks: DefaultRunTicks},
	}
}

// Clone returns a copy of c that shares no slices with it.
func (c *Config) Clone() *Config {
	out := *c
	out.POIs = append([]POIConfig(nil), c.POIs...)
	return &out
}

// Load reads a YAML config over the defaults. The document is checked against
// the embedded schema before decoding.
func Load(path string) (*Config, error) {
	return LoadInto(DefaultConfig(), path)
}

// LoadInto reads a YAML config over base, which is left untouched.
func LoadInto(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseInto(base, data)
}

func Parse(data []byte) (*Config, error) {
	return ParseInto(DefaultConfig(), data)
}

// ParseInto decodes data over a copy of base. Keys absent from the document
// keep base's values; a pois list replaces base's list.
func ParseInto(base *Config, data []byte) (*Config, error) {
	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Arena.Width < 0 || c.Arena.Height < 0:
		return fmt.Errorf("%w: arena dimensions must not be negative", ErrInvalidConfig)
	case c.Arena.Width > MaxArenaSize || c.Arena.Height > MaxArenaSize:
		return fmt.Errorf("%w: arena dimensions must not exceed %d", ErrInvalidConfig, MaxArenaSize)
	case !(c.Arena.Scale > 0 && c.Arena.Scale <= 1):
		return fmt.Errorf("%w: arena scale must be in (0, 1], got %v", ErrInvalidConfig, c.Arena.Scale)
	case c.TickMs <= 0:
		return fmt.Errorf("%w: tick_ms must be positive, got %d", ErrInvalidConfig, c.TickMs)
	case c.Agents < 0:
		return fmt.Errorf("%w: agents must not be negative, got %d", ErrInvalidConfig, c.Agents)
	case len(c.POIs) > flock.MaxPOIs:
		return fmt.Errorf("%w: at most %d pois, got %d", ErrInvalidConfig, flock.MaxPOIs, len(c.POIs))
	case c.Run.Ticks < 0:
		return fmt.Errorf("%w: run ticks must not be negative, got %d", ErrInvalidConfig, c.Run.Ticks)
	}
	for i, p := range c.POIs {
		if p.X < 0 || p.X >= 1 || p.Y < 0 || p.Y >= 1 {
			return fmt.Errorf("%w: poi %d position must be in [0, 1)", ErrInvalidConfig, i)
		}
	}
	return nil
}

func (c *Config) TickDuration() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

// ArenaFor derives the arena for a cols x rows surface. Fixed dimensions in
// the config win over the surface size.
func (c *Config) ArenaFor(cols, rows int) (flock.Arena, error) {
	w, h := c.Arena.Width, c.Arena.Height
	if w == 0 {
		w = math.Floor(float64(cols) * c.Arena.Scale)
	}
	if h == 0 {
		h = math.Floor(float64(rows) * c.Arena.Scale)
	}
	return flock.NewArena(w, h)
}

// POIPositions resolves the fractional POI positions against arena, snapped
// to cells.
func (c *Config) POIPositions(arena flock.Arena) []flock.POI {
	out := make([]flock.POI, 0, len(c.POIs))
	for _, p := range c.POIs {
		pos := geom.V(math.Floor(p.X*arena.Width), math.Floor(p.Y*arena.Height))
		out = append(out, flock.POI{Pos: pos, Attract: p.Attract})
	}
	return out
}
