package flock

import "errors"

// ErrInvalidArena indicates non-positive or non-finite arena dimensions.
var ErrInvalidArena = errors.New("flock: arena dimensions must be positive and finite")
