package sim

import (
	"github.com/san-kum/flocksim/internal/flock"
	"github.com/san-kum/flocksim/internal/geom"
)

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = [...]string{"up", "down", "left", "right"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// Delta is the unit step for d. Up is -y since rows grow downward.
func (d Direction) Delta() geom.Vec2 {
	switch d {
	case Up:
		return geom.V(0, -1)
	case Down:
		return geom.V(0, 1)
	case Left:
		return geom.V(-1, 0)
	case Right:
		return geom.V(1, 0)
	}
	return geom.Zero
}

// SpawnPOI adds an attracting POI at pos and selects it. Nothing happens when
// MaxPOIs already exist or pos lies outside the arena.
func (w *World) SpawnPOI(pos geom.Vec2) bool {
	return w.AddPOI(flock.NewPOI(pos))
}

// AddPOI is SpawnPOI with an explicit polarity.
func (w *World) AddPOI(p flock.POI) bool {
	if len(w.pois) >= flock.MaxPOIs || !w.arena.Contains(p.Pos) {
		return false
	}
	w.pois = append(w.pois, p)
	w.selected = len(w.pois) - 1
	return true
}

// RemovePOI deletes the selected POI and clamps the cursor to the new last
// index.
func (w *World) RemovePOI() bool {
	if !w.hasSelection() {
		return false
	}
	w.pois = append(w.pois[:w.selected], w.pois[w.selected+1:]...)
	if w.selected >= len(w.pois) {
		w.selected = max(len(w.pois)-1, 0)
	}
	return true
}

// MovePOI shifts the selected POI one cell in dir if the new coordinate stays
// within [0, dimension) on that axis.
func (w *World) MovePOI(dir Direction) bool {
	if !w.hasSelection() {
		return false
	}
	d := dir.Delta()
	if d.IsZero() {
		return false
	}
	next := w.pois[w.selected].Pos.Add(d)
	if !w.arena.Contains(next) {
		return false
	}
	w.pois[w.selected].Pos = next
	return true
}

func (w *World) TogglePOI() bool {
	if !w.hasSelection() {
		return false
	}
	w.pois[w.selected].Toggle()
	return true
}

// SelectPOI moves the cursor to index if a POI exists there.
func (w *World) SelectPOI(index int) bool {
	if index < 0 || index >= len(w.pois) || index >= flock.MaxPOIs {
		return false
	}
	w.selected = index
	return true
}

func (w *World) hasSelection() bool {
	return w.selected >= 0 && w.selected < len(w.pois)
}
