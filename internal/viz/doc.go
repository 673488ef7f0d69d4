// Package viz is the terminal frontend: a bubbletea program that draws the
// scene on a braille [Canvas] and shows a stats and terrain panel beside it.
//
// # Key Bindings
//
//	←/→   - Throttle reverse/forward (hold)
//	Space - Brake (hold)
//	R     - Rebuild the car at the start pose
//	Tab   - Select a terrain field, ↑/↓ to nudge it, E to type a value
//	P     - Pause
//	T     - Cycle color themes
//
// Terminals report key repeats rather than key releases, so held keys are
// released once repeats stop arriving (see control.HoldRelease).
package viz
