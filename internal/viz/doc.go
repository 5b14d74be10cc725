// Package viz is the terminal render surface and interactive front end for
// generated galaxies.
//
// The package implements the viewer using the Bubble Tea framework:
//
//   - [Surface]: holds the attached galaxy and draws it with a [Camera]
//   - [Canvas]: braille pixel canvas with per-cell additive color
//   - [App]: parameter panel plus live view, regenerating on commit
//
// # Key Bindings
//
//	j/k   - Select field (leaving an edited field commits it)
//	h/l   - Adjust by one step (H/L by ten)
//	enter - Type a value, enter again to commit
//	WASD  - Orbit the camera, +/- zoom, space toggles auto-rotation
//	p     - Cycle presets
//	r     - Reseed and regenerate
//	s     - Save the current galaxy to the data directory
package viz
