package galaxy

import "sync"

// Blending selects how overlapping points combine.
type Blending int

const (
	NormalBlending Blending = iota
	AdditiveBlending
)

func (b Blending) String() string {
	if b == AdditiveBlending {
		return "additive"
	}
	return "normal"
}

// DrawMode tells a surface how to draw attached buffers.
type DrawMode struct {
	Points          bool
	Blending        Blending
	DepthWrite      bool
	VertexColors    bool
	PointSize       float64
	SizeAttenuation bool
}

// DrawModeFor is the point-sprite mode every galaxy is drawn with.
func DrawModeFor(p Parameters) DrawMode {
	return DrawMode{
		Points:          true,
		Blending:        AdditiveBlending,
		DepthWrite:      false,
		VertexColors:    true,
		PointSize:       p.PointSize,
		SizeAttenuation: true,
	}
}

// Surface receives generated buffers. Attach must release whatever was
// attached before; Detach releases the current buffers and leaves the
// surface empty.
type Surface interface {
	Attach(b *Buffers, mode DrawMode)
	Detach()
}

// Slot is a Surface that holds at most one Buffers. Renderers embed it
// and read through View.
type Slot struct {
	mu       sync.RWMutex
	cur      *Buffers
	mode     DrawMode
	attaches int
	releases int
}

var _ Surface = (*Slot)(nil)

func (s *Slot) Attach(b *Buffers, mode DrawMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == b {
		s.mode = mode
		return
	}
	s.releaseLocked()
	s.cur = b
	s.mode = mode
	if b != nil {
		s.attaches++
	}
}

func (s *Slot) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseLocked()
}

func (s *Slot) releaseLocked() {
	if s.cur == nil {
		return
	}
	s.cur.Release()
	s.cur = nil
	s.releases++
}

// Current returns the attached buffers, or nil.
func (s *Slot) Current() *Buffers {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// View calls fn with the attached buffers while holding the read lock.
// It reports false, without calling fn, when nothing is attached.
func (s *Slot) View(fn func(b *Buffers, mode DrawMode)) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return false
	}
	fn(s.cur, s.mode)
	return true
}

// Stats returns how many buffers were attached and released so far.
func (s *Slot) Stats() (attaches, releases int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.attaches, s.releases
}
