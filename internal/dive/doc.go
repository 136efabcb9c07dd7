// Package dive turns an egg design into a single score, the depth it
// reaches past its own height, for use as a black-box objective.
//
// [DiveDepth] validates every parameter against a fixed table of bounds
// before simulating. A rejected parameter set, a position leaving the
// geometry domain and a degenerate velocity solve all score exactly 0;
// nothing below this package is allowed to fail silently and nothing in it
// returns an error or panics to its caller.
//
// [DepthWrapper] flattens the design into the vector
//
//	(height, width, grooveAngle, grooveCount, eggDensity, grooveDepth)
//
// and negates the depth so that minimizers maximize it.
package dive
