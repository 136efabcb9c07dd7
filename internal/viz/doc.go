// Package viz renders dives in the terminal.
//
//   - [PlotTrajectory]: asciigraph charts of position and velocity
//   - [Report]: lipgloss summary of a design and its score
//   - [Model]: Bubble Tea program that steps a dive live
//   - [Canvas]: Braille-based pixel canvas used to draw the egg
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	+/-   - Steps per frame
//	Tab   - Select shape parameter
//	↑/↓   - Scale it by ±5% and restart
//	Q     - Quit
package viz
