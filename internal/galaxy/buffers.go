package galaxy

// Buffers holds one generated galaxy. Positions and Colors are flat
// x,y,z / r,g,b triples, index-aligned.
//
// Once released the slices are dropped; holders of a stale *Buffers
// must check Released before reading.
type Buffers struct {
	Positions  []float32
	Colors     []float32
	Params     Parameters
	Generation uint64

	released bool
}

// Len is the number of points.
func (b *Buffers) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Positions) / 3
}

func (b *Buffers) Point(i int) (x, y, z float32) {
	j := i * 3
	return b.Positions[j], b.Positions[j+1], b.Positions[j+2]
}

func (b *Buffers) Color(i int) (r, g, bl float32) {
	j := i * 3
	return b.Colors[j], b.Colors[j+1], b.Colors[j+2]
}

// Release frees the backing storage. Calling it twice is harmless.
func (b *Buffers) Release() {
	if b == nil || b.released {
		return
	}
	b.Positions = nil
	b.Colors = nil
	b.released = true
}

func (b *Buffers) Released() bool {
	return b != nil && b.released
}
