package export

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/galaxy/internal/galaxy"
	"github.com/san-kum/galaxy/internal/viz"
)

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot,
// filled with its cell's light.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			fill := canvas.CellColor(row, col)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill))
					}
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// BuffersToSVG draws a top-down (x, z) view of a galaxy, size pixels square.
// Points blend with mix-blend-mode screen, the SVG analogue of additive blending.
func BuffersToSVG(b *galaxy.Buffers, size int) string {
	if b == nil || b.Released() || size <= 0 {
		return ""
	}

	extent := 1.0
	for i := 0; i < b.Len(); i++ {
		x, _, z := b.Point(i)
		extent = math.Max(extent, math.Max(math.Abs(float64(x)), math.Abs(float64(z))))
	}
	extent *= 1.05
	half := float64(size) / 2
	pxPerUnit := half / extent

	dot := b.Params.PointSize * pxPerUnit * 4
	if dot < 0.3 {
		dot = 0.3
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#000000"/>
<g style="mix-blend-mode:screen" fill-opacity="0.8">
`, size, size, size, size))

	for i := 0; i < b.Len(); i++ {
		x, _, z := b.Point(i)
		r, g, bl := b.Color(i)
		fill := colorful.Color{R: float64(r), G: float64(g), B: float64(bl)}.Clamped().Hex()
		cx := half + float64(x)*pxPerUnit
		cy := half - float64(z)*pxPerUnit
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, cx, cy, dot, fill))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
