package analysis

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/galaxy/internal/galaxy"
)

// Plot draws a series with asciigraph at a fixed 80 column width.
func Plot(data []float64, height int, caption string) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

// Report is the text block printed by the inspect command.
func Report(b *galaxy.Buffers) string {
	s := Measure(b)
	out := fmt.Sprintf("points:       %d\n", s.Points)
	out += fmt.Sprintf("mean radius:  %.3f\n", s.MeanRadius)
	out += fmt.Sprintf("extent:       %.3f\n", s.Extent)
	out += fmt.Sprintf("mean |y|:     %.4f\n", s.MeanAbsY)
	out += fmt.Sprintf("max |y|:      %.4f\n", s.MaxAbsY)
	if arms := ArmOccupancy(b); arms != nil {
		out += fmt.Sprintf("arms:         %v\n", arms)
	}
	if modes := AzimuthalModes(b, 64); modes != nil {
		out += fmt.Sprintf("dominant m:   %d\n", DominantMode(modes))
	}
	if s.Points > 1 {
		out += "\n" + Plot(RadialProfile(b, 40), 10, "radial profile") + "\n"
	}
	return out
}
