package flock

// Neighborhood radii. A neighbor counts when its distance is strictly less.
const (
	SeparationRadius = 3.0
	AlignmentRadius  = 4.0
	CohesionRadius   = 5.0
	SeekRadius       = 20.0
)

// Steering weights applied to each unit force before integration.
const (
	SeparationWeight = 1.5
	AlignmentWeight  = 1.0
	CohesionWeight   = 0.75
	SeekWeight       = 0.75
)

const (
	// MaxSpeed caps agent speed after steering, before integration.
	MaxSpeed = 1.0

	// MaxPOIs is the number of live points of interest, and of selectable slots.
	MaxPOIs = 10

	// SpawnSpeed bounds each velocity component of a freshly spawned agent.
	SpawnSpeed = 10.0
)
