// Package galaxy synthesizes spiral-galaxy point clouds.
//
// The package is split into a few small pieces:
//
//   - [Parameters]: the numeric and color knobs of a galaxy
//   - [Generator]: turns Parameters plus a random [Source] into [Buffers]
//   - [Buffers]: flat position and color arrays, index-aligned
//   - [Surface]: anything that can hold the currently drawn Buffers
//   - [Slot]: an arena-of-one Surface that releases the old Buffers on swap
//
// # Example
//
//	slot := &galaxy.Slot{}
//	gen := galaxy.NewGenerator(slot, galaxy.WithSource(galaxy.NewSource(42)))
//	buf, err := gen.Generate(galaxy.DefaultParameters())
//
// # Thread Safety
//
// Generator serializes calls to Generate. Slot guards the swap with a
// read/write lock, so a renderer reading through [Slot.View] never sees a
// half-replaced pair of buffers.
package galaxy
