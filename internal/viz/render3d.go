package viz

import (
	"math"
)

type Vec3 struct {
	X, Y, Z float64
}

// Vec3 methods.
func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Camera orbits the origin and projects world points onto the canvas.
type Camera struct {
	Distance   float64
	Near       float64
	RotX, RotY float64
	Zoom       float64
	// Extent is the world radius that fits the shorter screen side.
	Extent float64

	// orbit velocity, decays each tick
	velX, velY float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 30, Near: 0.1, Zoom: 1.0, Extent: 6}
}

func (c *Camera) RotateX(a float64) { c.RotX = clampTilt(c.RotX + a) }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Nudge adds orbit velocity; Update applies it with damping.
func (c *Camera) Nudge(dx, dy float64) {
	c.velX += dx
	c.velY += dy
}

// Update advances one frame: constant auto-rotation plus damped orbit velocity.
func (c *Camera) Update(autoRotate, damping float64) {
	c.RotateY(autoRotate + c.velY)
	c.RotateX(c.velX)
	c.velX *= 1 - damping
	c.velY *= 1 - damping
	if math.Abs(c.velX) < 1e-5 {
		c.velX = 0
	}
	if math.Abs(c.velY) < 1e-5 {
		c.velY = 0
	}
}

func clampTilt(a float64) float64 {
	return math.Max(-math.Pi/2, math.Min(math.Pi/2, a))
}

// RotatePoint applies the orbit: yaw about Y, then tilt about X.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	return p
}

// Project converts world coordinates to sub-pixel screen coordinates.
// Returns x, y, perspective scale, and visibility.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	dist := c.Distance
	if rot.Z >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	extent := c.Extent
	if extent <= 0 {
		extent = 1
	}
	pScale := minDim / (2 * extent)
	sx := int(math.Round(rot.X*scale*pScale)) + sw/2
	sy := int(math.Round(-rot.Y*scale*pScale)) + sh/2
	return sx, sy, scale, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}
