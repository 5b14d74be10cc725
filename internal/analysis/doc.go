// Package analysis measures the shape of generated galaxies.
//
//   - [RadialProfile]: point counts per radial band in the disc plane
//   - [ArmOccupancy]: points assigned to each branch
//   - [Measure]: vertical spread and extent statistics
//   - [AzimuthalModes]: angular power spectrum after undoing the spin
//   - [DensityMap]: top-down ASCII density map
//
// # Arm Detection
//
// The strongest azimuthal mode of a galaxy with no jitter equals its
// branch count:
//
//	modes := analysis.AzimuthalModes(b, 64)
//	arms := analysis.DominantMode(modes)
package analysis
