package galaxy

import "math"

// Point is one placed star before it is flattened into Buffers.
type Point struct {
	X, Y, Z float64
	// R is the drawn radial distance, before jitter.
	R float64
}

// BranchAngle is the base angle of the arm that index i belongs to.
// Arms are assigned round-robin in index order.
func BranchAngle(i, branches int) float64 {
	return float64(i%branches) / float64(branches) * math.Pi * 2
}

// Place draws one point. It consumes seven samples from src: the radius,
// then magnitude and sign for each of X, Y and Z.
func Place(i int, p *Parameters, src Source) Point {
	r := src.Float64() * p.Radius
	angle := BranchAngle(i, p.Branches) + r*p.Spin

	jx := jitter(src, p, r)
	jy := jitter(src, p, r)
	jz := jitter(src, p, r)

	return Point{
		X: math.Sin(angle)*r + jx,
		Y: jy,
		Z: math.Cos(angle)*r + jz,
		R: r,
	}
}

// jitter biases toward zero for power > 1 and scales with radius.
func jitter(src Source, p *Parameters, r float64) float64 {
	mag := math.Pow(src.Float64(), p.RandomnessPower)
	sign := 1.0
	if src.Float64() >= 0.5 {
		sign = -1
	}
	return mag * sign * p.Randomness * r
}

// ColorAt returns the gradient color for radial distance r.
func ColorAt(p *Parameters, r float64) Color {
	t := r / p.Radius
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Lerp(p.InsideColor, p.OutsideColor, t)
}
