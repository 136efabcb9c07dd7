// Package physics models the grooved egg and the forces acting on it while
// it dives through a liquid surface.
//
// The egg is a solid of revolution of height h whose radius follows the
// cubic profile
//
//	r(y) = w·sqrt(A0·s·(1-s)·(1-s/2)),  s = y/h
//
// which is widest, r = w/2, at y = (1 - 1/√3)·h. Grooves cut n flat chords
// into the shell, each spanning GrooveAngle of the circumference.
//
// Only the part of the egg above the widest point is modelled. Methods that
// take a position reject y outside [MaxSubmersionY(h), h] with an error
// wrapping [dynamo.ErrDomain]; they never clamp.
//
// # Sign convention
//
// y grows as the egg sinks, so a positive acceleration drives the dive.
// Quadratic drag is always subtracted and the capillary term carries the
// sign of cos(contactAngle + atan(slope)):
//
//	a = (-½·Cd·A·ρ·v² + P(y)·cos(θ + atan r'(y))·σ) / m
//
// There is no gravity or buoyancy term.
package physics
