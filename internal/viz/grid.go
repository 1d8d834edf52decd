package viz

import (
	"math"
	"strings"

	"github.com/san-kum/flocksim/internal/flock"
	"github.com/san-kum/flocksim/internal/sim"
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellAgent
	cellAttract
	cellRepel
)

type cell struct {
	r    rune
	kind cellKind
}

// Grid is a cols x rows character raster of a snapshot.
type Grid struct {
	Cols, Rows int
	cells      [][]cell
}

func NewGrid(cols, rows int) *Grid {
	g := &Grid{Cols: cols, Rows: rows, cells: make([][]cell, rows)}
	for y := range g.cells {
		g.cells[y] = make([]cell, cols)
	}
	g.Clear()
	return g
}

// GridFor sizes a grid to cover arena one cell per unit.
func GridFor(arena flock.Arena) *Grid {
	return NewGrid(int(arena.Width), int(arena.Height))
}

func (g *Grid) Clear() {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = cell{r: GlyphEmpty}
		}
	}
}

// Draw rasterizes snap. Positions round to the nearest cell and anything
// outside the grid is dropped. POIs are drawn after agents so they stay
// visible.
func (g *Grid) Draw(snap sim.Snapshot) {
	g.Clear()
	for _, a := range snap.Agents {
		g.set(a.Pos.X, a.Pos.Y, cell{r: Glyph(a.Vel), kind: cellAgent})
	}
	for i, p := range snap.POIs {
		c := cell{r: GlyphPOI, kind: cellRepel}
		if p.Attract {
			c.kind = cellAttract
		}
		if i == snap.Selected {
			c.r = GlyphSelectedPOI
		}
		g.set(p.Pos.X, p.Pos.Y, c)
	}
}

func (g *Grid) set(fx, fy float64, c cell) {
	x, y := int(math.Round(fx)), int(math.Round(fy))
	if x < 0 || y < 0 || x >= g.Cols || y >= g.Rows {
		return
	}
	g.cells[y][x] = c
}

// Frame draws snap on a grid sized to its arena and returns it uncolored.
func Frame(snap sim.Snapshot) string {
	g := GridFor(snap.Arena)
	g.Draw(snap)
	return g.Plain()
}

// Plain renders the grid without color.
func (g *Grid) Plain() string {
	var sb strings.Builder
	for y, row := range g.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			sb.WriteRune(c.r)
		}
	}
	return sb.String()
}

// Render colors agents and POIs with st. Runs of same-kind cells share one
// style call.
func (g *Grid) Render(st Styles) string {
	var sb strings.Builder
	var run strings.Builder
	for y, row := range g.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		kind := cellEmpty
		for x, c := range row {
			if x > 0 && c.kind != kind {
				sb.WriteString(st.cell(kind, run.String()))
				run.Reset()
			}
			kind = c.kind
			run.WriteRune(c.r)
		}
		sb.WriteString(st.cell(kind, run.String()))
		run.Reset()
	}
	return sb.String()
}
