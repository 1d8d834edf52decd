package optim

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/flocksim/internal/config"
)

// Tunable config parameters.
const (
	ParamAgents = "agents"
	ParamWidth  = "width"
	ParamHeight = "height"
	ParamScale  = "scale"
)

// ApplyParams returns a copy of base with params applied.
func ApplyParams(base *config.Config, params map[string]float64) (*config.Config, error) {
	cfg := *base
	cfg.POIs = append([]config.POIConfig(nil), base.POIs...)

	for name, v := range params {
		switch name {
		case ParamAgents:
			cfg.Agents = int(math.Round(v))
		case ParamWidth:
			cfg.Arena.Width = v
		case ParamHeight:
			cfg.Arena.Height = v
		case ParamScale:
			cfg.Arena.Scale = v
		default:
			return nil, fmt.Errorf("unknown parameter: %s", name)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseRange parses "name=v1,v2,..." into a name and its values.
func ParseRange(s string) (string, []float64, error) {
	name, list, ok := strings.Cut(s, "=")
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("expected name=v1,v2,... got %q", s)
	}
	parts := strings.Split(list, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return "", nil, fmt.Errorf("param %s: %w", name, err)
		}
		values = append(values, v)
	}
	return strings.TrimSpace(name), values, nil
}
