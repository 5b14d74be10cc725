package galaxy_test

import "github.com/san-kum/galaxy/internal/galaxy"

// scripted replays a fixed sequence of samples, cycling when exhausted.
type scripted struct {
	vals []float64
	i    int
}

func (s *scripted) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// recording remembers every sample drawn from the wrapped source.
type recording struct {
	src   galaxy.Source
	drawn []float64
}

func (r *recording) Float64() float64 {
	v := r.src.Float64()
	r.drawn = append(r.drawn, v)
	return v
}

// radiusOf returns the radius sample of point i; Place draws seven samples per point.
func (r *recording) radiusOf(i int, p galaxy.Parameters) float64 {
	return r.drawn[i*7] * p.Radius
}

func flatParams() galaxy.Parameters {
	p := galaxy.DefaultParameters()
	p.Spin = 0
	p.Randomness = 0
	return p
}
