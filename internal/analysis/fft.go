package analysis

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/galaxy/internal/galaxy"
)

// FFT is a radix-2 transform; len(data) must be a power of two.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

func PowerSpectrum(data []float64) []float64 {
	f := FFT(data)
	ps := make([]float64, len(f)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(f[i])
	}
	return ps
}

// AzimuthalModes histograms point angles after removing the spin twist
// (r * Spin) and returns the magnitude of each angular harmonic. Index m is
// the m-fold mode. bins is rounded up to a power of two.
func AzimuthalModes(b *galaxy.Buffers, bins int) []float64 {
	if b == nil || b.Len() == 0 {
		return nil
	}
	n := nextPow2(bins)
	hist := make([]float64, n)
	for i := 0; i < b.Len(); i++ {
		x, _, z := b.Point(i)
		r := math.Hypot(float64(x), float64(z))
		theta := math.Atan2(float64(x), float64(z)) - r*b.Params.Spin
		theta = math.Mod(theta, 2*math.Pi)
		if theta < 0 {
			theta += 2 * math.Pi
		}
		k := int(theta / (2 * math.Pi) * float64(n))
		if k >= n {
			k = n - 1
		}
		hist[k]++
	}
	return PowerSpectrum(hist)
}

// DominantMode returns the strongest harmonic, ignoring the mean (m=0).
func DominantMode(modes []float64) int {
	best := 0
	for m := 1; m < len(modes); m++ {
		if best == 0 || modes[m] > modes[best] {
			best = m
		}
	}
	return best
}

func nextPow2(n int) int {
	p := 2
	for p < n {
		p <<= 1
	}
	return p
}
