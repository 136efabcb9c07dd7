// Package dynamo provides the core value types shared by the egg dive
// simulation:
//
//   - [Sample]: one (time, position, velocity) point of a trajectory
//   - [Trajectory]: ordered samples of a single run
//   - [StepConfig]: timestep and total simulated time
//   - typed errors for domain violations, numeric degeneracy and invalid
//     configurations
//
// # Conventions
//
// Position y is the waterline height measured along the egg axis from its
// lower tip. Increasing y means the egg sits deeper in the fluid and a
// positive velocity is a dive. Every run starts at [MaxSubmersionY], the
// height of the widest cross-section.
//
// # Thread Safety
//
// All types are plain values. Independent runs share nothing and may be
// evaluated concurrently, see [ParallelFor].
package dynamo
