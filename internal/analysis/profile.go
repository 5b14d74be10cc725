package analysis

import (
	"math"

	"github.com/san-kum/galaxy/internal/galaxy"
)

// RadialProfile counts points by their distance from the axis in the x/z
// plane, split into bins equal bands over [0, Radius]. Points pushed past
// Radius by jitter land in the last band.
func RadialProfile(b *galaxy.Buffers, bins int) []float64 {
	if b == nil || bins <= 0 {
		return nil
	}
	out := make([]float64, bins)
	radius := b.Params.Radius
	if radius <= 0 {
		return out
	}
	for i := 0; i < b.Len(); i++ {
		x, _, z := b.Point(i)
		d := math.Hypot(float64(x), float64(z))
		k := int(d / radius * float64(bins))
		if k >= bins {
			k = bins - 1
		}
		out[k]++
	}
	return out
}

// ArmOccupancy returns how many points each branch received.
func ArmOccupancy(b *galaxy.Buffers) []int {
	if b == nil || b.Params.Branches <= 0 {
		return nil
	}
	out := make([]int, b.Params.Branches)
	for i := 0; i < b.Len(); i++ {
		out[i%b.Params.Branches]++
	}
	return out
}

type Stats struct {
	Points     int
	MeanAbsY   float64
	MaxAbsY    float64
	MeanRadius float64
	Extent     float64
}

// Measure summarizes a galaxy's spread. MeanAbsY is the disc thickness.
func Measure(b *galaxy.Buffers) Stats {
	var s Stats
	if b == nil {
		return s
	}
	s.Points = b.Len()
	if s.Points == 0 {
		return s
	}
	for i := 0; i < s.Points; i++ {
		x, y, z := b.Point(i)
		ay := math.Abs(float64(y))
		d := math.Hypot(float64(x), float64(z))
		s.MeanAbsY += ay
		s.MeanRadius += d
		s.MaxAbsY = math.Max(s.MaxAbsY, ay)
		s.Extent = math.Max(s.Extent, d)
	}
	n := float64(s.Points)
	s.MeanAbsY /= n
	s.MeanRadius /= n
	return s
}
