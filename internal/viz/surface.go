package viz

import (
	"github.com/san-kum/galaxy/internal/galaxy"
)

// brightness maps the default point size to a per-point light contribution.
const brightness = 0.35

// Surface is the terminal render target. It holds at most one galaxy
// through the embedded Slot and draws it with a Camera.
type Surface struct {
	galaxy.Slot
	Camera *Camera
}

var _ galaxy.Surface = (*Surface)(nil)

func NewSurface() *Surface {
	return &Surface{Camera: NewCamera()}
}

// Draw clears c and draws the attached galaxy. It returns the number of
// visible points.
func (s *Surface) Draw(c *Canvas) int {
	c.Clear()
	drawn := 0
	s.View(func(b *galaxy.Buffers, mode galaxy.DrawMode) {
		drawn = drawPoints(c, s.Camera, b, mode)
	})
	return drawn
}

func drawPoints(c *Canvas, cam *Camera, b *galaxy.Buffers, mode galaxy.DrawMode) int {
	if !mode.Points {
		return 0
	}
	sw, sh := c.SubWidth(), c.SubHeight()
	base := brightness * mode.PointSize / galaxy.DefaultPointSize
	drawn := 0
	for i := 0; i < b.Len(); i++ {
		x, y, z := b.Point(i)
		px, py, scale, ok := cam.Project(Vec3{float64(x), float64(y), float64(z)}, sw, sh)
		if !ok {
			continue
		}
		w := base
		if mode.SizeAttenuation {
			w *= scale
		}
		r, g, bl := 1.0, 1.0, 1.0
		if mode.VertexColors {
			cr, cg, cb := b.Color(i)
			r, g, bl = float64(cr), float64(cg), float64(cb)
		}
		if mode.Blending == galaxy.AdditiveBlending {
			c.Add(px, py, r*w, g*w, bl*w)
		} else {
			c.Put(px, py, r, g, bl)
		}
		drawn++
	}
	return drawn
}

// Snapshot draws the attached galaxy onto a fresh w×h canvas.
func (s *Surface) Snapshot(w, h int) *Canvas {
	c := NewCanvas(w, h)
	s.Draw(c)
	return c
}
