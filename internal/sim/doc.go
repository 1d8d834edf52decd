// Package sim owns the simulation state and the per-tick orchestration.
//
// A [World] holds the arena, the ordered agent and POI collections, and the
// POI selection cursor. It is mutated only through its own methods:
//
//   - population: [World.SpawnAgent], [World.RemoveLastAgent]
//   - POIs: [World.SpawnPOI], [World.RemovePOI], [World.MovePOI],
//     [World.TogglePOI], [World.SelectPOI]
//   - commands: [World.Apply] dispatches a [Command]
//   - time: [World.Step] and [World.Tick]
//
// Readers get a deep-copied [Snapshot] and never a live reference.
//
// # Thread Safety
//
// A World is NOT thread-safe. It is meant to be driven from a single loop;
// [Ensemble] runs independent worlds in parallel.
package sim
