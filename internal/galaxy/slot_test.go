package galaxy

import (
	"sync"
	"testing"
)

func TestSlotSwapUnderReaders(t *testing.T) {
	slot := &Slot{}
	gen := NewGenerator(slot, WithSource(NewSource(1)))
	p := DefaultParameters()
	p.Count = 500

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				slot.View(func(b *Buffers, mode DrawMode) {
					if b.Released() {
						t.Error("reader saw released buffers")
					}
					if len(b.Positions) != len(b.Colors) {
						t.Error("reader saw mismatched buffers")
					}
				})
			}
		}()
	}

	for i := 0; i < 50; i++ {
		if _, err := gen.Generate(p); err != nil {
			t.Fatal(err)
		}
	}
	close(stop)
	wg.Wait()

	attaches, releases := slot.Stats()
	if attaches != 50 || releases != 49 {
		t.Errorf("attaches=%d releases=%d, want 50/49", attaches, releases)
	}
}

func TestSlotReattachSame(t *testing.T) {
	slot := &Slot{}
	b := &Buffers{Positions: []float32{0, 0, 0}, Colors: []float32{1, 1, 1}}
	slot.Attach(b, DrawMode{PointSize: 0.01})
	slot.Attach(b, DrawMode{PointSize: 0.02})
	if b.Released() {
		t.Fatal("re-attaching the same buffers released them")
	}
	slot.View(func(_ *Buffers, mode DrawMode) {
		if mode.PointSize != 0.02 {
			t.Errorf("mode not updated: %+v", mode)
		}
	})
}

func TestDrawModeFor(t *testing.T) {
	m := DrawModeFor(DefaultParameters())
	if !m.Points || m.Blending != AdditiveBlending || m.DepthWrite || !m.VertexColors || !m.SizeAttenuation {
		t.Errorf("unexpected draw mode %+v", m)
	}
	if m.PointSize != DefaultPointSize {
		t.Errorf("point size = %f", m.PointSize)
	}
}

func BenchmarkGenerate(b *testing.B) {
	gen := NewGenerator(nil, WithSource(NewSource(1)))
	p := DefaultParameters()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gen.Generate(p); err != nil {
			b.Fatal(err)
		}
	}
}
