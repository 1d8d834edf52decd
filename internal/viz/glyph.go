package viz

import "github.com/san-kum/flocksim/internal/geom"

const (
	GlyphSelectedPOI = 'o'
	GlyphPOI         = '*'
	GlyphEmpty       = ' '
)

// Glyph picks an arrow for an agent's heading. The dominant axis wins; equal
// magnitudes give a diagonal and a zero velocity gives a dot. Rows grow
// downward, so positive Y points down.
func Glyph(v geom.Vec2) rune {
	ax, ay := abs(v.X), abs(v.Y)
	switch {
	case ax > ay:
		if v.X > 0 {
			return '⇒'
		}
		return '⇐'
	case ay > ax:
		if v.Y > 0 {
			return '⇓'
		}
		return '⇑'
	}

	switch {
	case v.X > 0 && v.Y < 0:
		return '⇗'
	case v.X < 0 && v.Y < 0:
		return '⇖'
	case v.X > 0 && v.Y > 0:
		return '⇘'
	case v.X < 0 && v.Y > 0:
		return '⇙'
	}
	return '•'
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
