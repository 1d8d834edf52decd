// Package viz is the interactive terminal front end for flocksim.
//
// It decodes keys into [sim.Command] values, drives [sim.World] one tick per
// timer message, and draws each [sim.Snapshot] as a character grid using the
// Bubble Tea framework.
//
// # Key Bindings
//
//	Arrows          - Move the selected POI
//	1-9, 0          - Select POI 1-10
//	Tab             - Toggle attract/repel
//	Insert, +       - Add a POI at the center
//	Delete, -       - Remove the selected POI
//	Enter           - Spawn an agent
//	Backspace       - Remove the newest agent
//	Space           - Pause/Resume
//	T               - Cycle color themes
//	G               - Toggle the metrics panel
//	S               - Save the frame as SVG
//	?               - Show help overlay
//	Esc, Q, Ctrl+C  - Quit
package viz
