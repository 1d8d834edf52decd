package flock

import "github.com/san-kum/flocksim/internal/geom"

// POI is a point of interest. Attracting POIs pull agents in range toward
// them, repelling ones push agents away.
type POI struct {
	Pos     geom.Vec2 `json:"pos"`
	Attract bool      `json:"attract"`
}

func NewPOI(pos geom.Vec2) POI {
	return POI{Pos: pos, Attract: true}
}

func (p *POI) Toggle() { p.Attract = !p.Attract }

func (p POI) Polarity() string {
	if p.Attract {
		return "attract"
	}
	return "repel"
}
