package galaxy

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"
)

// Generator owns the random source and produces a new Buffers on each call,
// handing it to its Surface in place of the previous one.
type Generator struct {
	mu         sync.Mutex
	surface    Surface
	src        Source
	logger     *slog.Logger
	maxPoints  int
	generation uint64
}

type Option func(*Generator)

// WithSource injects the random source. Tests pass a seeded or scripted one.
func WithSource(src Source) Option {
	return func(g *Generator) { g.src = src }
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithMaxPoints caps the point count a single generation may allocate.
// Zero means no cap.
func WithMaxPoints(n int) Option {
	return func(g *Generator) { g.maxPoints = n }
}

// NewGenerator builds a generator drawing into surface. A nil surface gets a
// private Slot.
func NewGenerator(surface Surface, opts ...Option) *Generator {
	g := &Generator{surface: surface}
	for _, opt := range opts {
		opt(g)
	}
	if g.surface == nil {
		g.surface = &Slot{}
	}
	if g.src == nil {
		g.src = NewSource(TimeSeed())
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g
}

func (g *Generator) Surface() Surface { return g.surface }

// Reseed replaces the random source with a seeded one.
func (g *Generator) Reseed(seed int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.src = NewSource(seed)
}

// RunInitial generates the default galaxy.
func (g *Generator) RunInitial() (*Buffers, error) {
	return g.Generate(DefaultParameters())
}

// Generate builds a fresh galaxy from p and attaches it to the surface,
// releasing the previous one. On error nothing is attached or released.
func (g *Generator) Generate(p Parameters) (*Buffers, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := p.checkStructure(); err != nil {
		return nil, err
	}

	count := p.Count
	if count < 0 {
		count = 0
	}

	start := time.Now()
	pos, col, err := g.allocate(count)
	if err != nil {
		g.logger.Warn("allocation failed", "count", p.Count, "error", err)
		return nil, err
	}

	for i := 0; i < count; i++ {
		pt := Place(i, &p, g.src)
		c := ColorAt(&p, pt.R)

		j := i * 3
		pos[j] = float32(pt.X)
		pos[j+1] = float32(pt.Y)
		pos[j+2] = float32(pt.Z)

		col[j] = float32(c.R)
		col[j+1] = float32(c.G)
		col[j+2] = float32(c.B)
	}

	g.generation++
	buf := &Buffers{
		Positions:  pos,
		Colors:     col,
		Params:     p,
		Generation: g.generation,
	}
	g.surface.Attach(buf, DrawModeFor(p))

	g.logger.Debug("galaxy generated",
		"generation", buf.Generation,
		"count", count,
		"branches", p.Branches,
		"elapsed", time.Since(start),
	)
	return buf, nil
}

func (g *Generator) allocate(count int) (pos, col []float32, err error) {
	if g.maxPoints > 0 && count > g.maxPoints {
		return nil, nil, fmt.Errorf("%w: %d points exceeds limit of %d", ErrAllocation, count, g.maxPoints)
	}
	if count > math.MaxInt/3 {
		return nil, nil, fmt.Errorf("%w: %d points overflows buffer length", ErrAllocation, count)
	}
	defer func() {
		if r := recover(); r != nil {
			pos, col = nil, nil
			err = fmt.Errorf("%w: %d points: %v", ErrAllocation, count, r)
		}
	}()
	pos = make([]float32, count*3)
	col = make([]float32, count*3)
	return pos, col, nil
}
