// Package flock implements the boid force model.
//
// Everything here is a pure function of its inputs:
//
//   - [Arena]: bounded simulation area and wall bounce
//   - [Agent]: a boid with a stable [AgentID]
//   - [POI]: attracting or repelling point of interest
//   - [Step]: one integration step for a single agent
//
// # Ordering
//
// [Step] reads neighbors from the slice it is given and never writes to it.
// Callers pass the same pre-tick snapshot to every agent so that updates are
// simultaneous rather than sequential.
package flock
