package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/flocksim/internal/sim"
)

const (
	svgBackground = "#0a0a0a"
	svgAgent      = "#00ffff"
	svgAttract    = "#00ff00"
	svgRepel      = "#ff0000"
)

// SnapshotToSVG draws a frame: each agent as a short stroke along its heading
// and each POI as a circle, green for attract and red for repel. scale is the
// number of pixels per arena unit.
func SnapshotToSVG(snap sim.Snapshot, scale float64) string {
	if scale <= 0 {
		scale = 1
	}
	width := snap.Arena.Width * scale
	height := snap.Arena.Height * scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground))

	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="%.1f" stroke-linecap="round">
`, svgAgent, scale*0.3))
	for _, a := range snap.Agents {
		x1, y1 := a.Pos.X*scale, a.Pos.Y*scale
		head := a.Vel.Normalize()
		if head.IsZero() {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="none"/>
`, x1, y1, scale*0.3, svgAgent))
			continue
		}
		x2, y2 := x1+head.X*scale, y1+head.Y*scale
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x1, y1, x2, y2))
	}
	sb.WriteString("</g>\n")

	for i, p := range snap.POIs {
		color := svgRepel
		if p.Attract {
			color = svgAttract
		}
		r := scale * 0.5
		stroke := ""
		if i == snap.Selected {
			r = scale * 0.8
			stroke = ` stroke="#ffffff" stroke-width="1"`
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"%s/>
`, p.Pos.X*scale, p.Pos.Y*scale, r, color, stroke))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots a metric series as a polyline, auto-scaled to the
// value range with 10% padding.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	rangeV := maxV - minV
	if rangeV == 0 {
		rangeV = 1
	}
	minV -= rangeV * 0.1
	maxV += rangeV * 0.1
	rangeV = maxV - minV

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, svgBackground, strokeColor))

	last := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-minV)/rangeV*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}


// WriteSeriesSVGs writes one <metric>.svg plot per series of r into dir,
// creating it if needed. Series shorter than two ticks are skipped. It
// returns the written paths in metric order.
func WriteSeriesSVGs(dir string, r *sim.Result, width, height int, strokeColor string) ([]string, error) {
	if r == nil {
		return nil, ErrNoResult
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	var paths []string
	for _, name := range r.MetricNames() {
		svg := SeriesToSVG(r.Series[name], width, height, strokeColor)
		if svg == "" {
			continue
		}
		path := filepath.Join(dir, name+".svg")
		if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
