package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/galaxy/internal/galaxy"
)

var ramp = []rune(" .:-=+*#%@")

// DensityMap renders a top-down (x, z) view of the galaxy as ASCII, shading
// each cell by point count on a log scale.
func DensityMap(b *galaxy.Buffers, width, height int) string {
	if b == nil || b.Len() == 0 || width <= 0 || height <= 0 {
		return ""
	}

	extent := 0.0
	for i := 0; i < b.Len(); i++ {
		x, _, z := b.Point(i)
		extent = math.Max(extent, math.Max(math.Abs(float64(x)), math.Abs(float64(z))))
	}
	if extent == 0 {
		extent = 1
	}
	extent *= 1.05

	counts := make([][]int, height)
	for i := range counts {
		counts[i] = make([]int, width)
	}
	peak := 0
	for i := 0; i < b.Len(); i++ {
		x, _, z := b.Point(i)
		col := int((float64(x) + extent) / (2 * extent) * float64(width-1))
		row := height - 1 - int((float64(z)+extent)/(2*extent)*float64(height-1))
		if row < 0 || row >= height || col < 0 || col >= width {
			continue
		}
		counts[row][col]++
		if counts[row][col] > peak {
			peak = counts[row][col]
		}
	}

	top := math.Log1p(float64(peak))
	var sb strings.Builder
	for _, row := range counts {
		for _, n := range row {
			if n == 0 {
				sb.WriteRune(ramp[0])
				continue
			}
			k := 1 + int(math.Log1p(float64(n))/top*float64(len(ramp)-2))
			if k >= len(ramp) {
				k = len(ramp) - 1
			}
			sb.WriteRune(ramp[k])
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
