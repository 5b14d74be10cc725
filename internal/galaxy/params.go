package galaxy

import (
	"math"
	"strconv"
)

// Parameters describes one galaxy. Values are read once per generation.
type Parameters struct {
	Count           int     `json:"count" yaml:"count"`
	PointSize       float64 `json:"point_size" yaml:"point_size"`
	Radius          float64 `json:"radius" yaml:"radius"`
	Branches        int     `json:"branches" yaml:"branches"`
	Spin            float64 `json:"spin" yaml:"spin"`
	Randomness      float64 `json:"randomness" yaml:"randomness"`
	RandomnessPower float64 `json:"randomness_power" yaml:"randomness_power"`
	InsideColor     Color   `json:"inside_color" yaml:"inside_color"`
	OutsideColor    Color   `json:"outside_color" yaml:"outside_color"`
}

const (
	DefaultCount           = 10000
	DefaultPointSize       = 0.01
	DefaultRadius          = 5.0
	DefaultBranches        = 3
	DefaultSpin            = 1.0
	DefaultRandomness      = 0.02
	DefaultRandomnessPower = 3.0
	DefaultInsideColor     = "#ff6030"
	DefaultOutsideColor    = "#1b3984"
)

// Field names, shared with the panel and config layers.
const (
	FieldCount           = "count"
	FieldPointSize       = "size"
	FieldRadius          = "radius"
	FieldBranches        = "branches"
	FieldSpin            = "spin"
	FieldRandomness      = "randomness"
	FieldRandomnessPower = "randomnessPower"
	FieldInsideColor     = "insideColor"
	FieldOutsideColor    = "outsideColor"
)

// Bounds is the editable range of a numeric field.
type Bounds struct {
	Min, Max, Step float64
}

// Clamp limits v to [Min, Max].
func (b Bounds) Clamp(v float64) float64 {
	return math.Max(b.Min, math.Min(b.Max, v))
}

func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Limits holds the declared range of every numeric field.
var Limits = map[string]Bounds{
	FieldCount:           {Min: 100, Max: 1000000, Step: 1000},
	FieldPointSize:       {Min: 0.001, Max: 0.1, Step: 0.001},
	FieldRadius:          {Min: 3, Max: 10, Step: 0.5},
	FieldBranches:        {Min: 2, Max: 10, Step: 1},
	FieldSpin:            {Min: -5, Max: 5, Step: 0.01},
	FieldRandomness:      {Min: 0, Max: 2, Step: 0.01},
	FieldRandomnessPower: {Min: 1, Max: 10, Step: 0.01},
}

// NumericFields lists the numeric fields in panel order.
var NumericFields = []string{
	FieldCount, FieldPointSize, FieldRadius, FieldBranches,
	FieldSpin, FieldRandomness, FieldRandomnessPower,
}

func DefaultParameters() Parameters {
	return Parameters{
		Count:           DefaultCount,
		PointSize:       DefaultPointSize,
		Radius:          DefaultRadius,
		Branches:        DefaultBranches,
		Spin:            DefaultSpin,
		Randomness:      DefaultRandomness,
		RandomnessPower: DefaultRandomnessPower,
		InsideColor:     MustColor(DefaultInsideColor),
		OutsideColor:    MustColor(DefaultOutsideColor),
	}
}

// Get returns a numeric field by name.
func (p Parameters) Get(field string) (float64, bool) {
	switch field {
	case FieldCount:
		return float64(p.Count), true
	case FieldPointSize:
		return p.PointSize, true
	case FieldRadius:
		return p.Radius, true
	case FieldBranches:
		return float64(p.Branches), true
	case FieldSpin:
		return p.Spin, true
	case FieldRandomness:
		return p.Randomness, true
	case FieldRandomnessPower:
		return p.RandomnessPower, true
	}
	return 0, false
}

// Set assigns a numeric field by name. Integer fields are rounded.
func (p *Parameters) Set(field string, v float64) bool {
	switch field {
	case FieldCount:
		p.Count = int(math.Round(v))
	case FieldPointSize:
		p.PointSize = v
	case FieldRadius:
		p.Radius = v
	case FieldBranches:
		p.Branches = int(math.Round(v))
	case FieldSpin:
		p.Spin = v
	case FieldRandomness:
		p.Randomness = v
	case FieldRandomnessPower:
		p.RandomnessPower = v
	default:
		return false
	}
	return true
}

// Clamp returns a copy with every numeric field forced into its declared range.
// Colors are clamped to [0,1].
func (p Parameters) Clamp() Parameters {
	out := p
	for _, f := range NumericFields {
		v, _ := p.Get(f)
		if math.IsNaN(v) {
			v = Limits[f].Min
		}
		out.Set(f, Limits[f].Clamp(v))
	}
	out.InsideColor = p.InsideColor.Clamped()
	out.OutsideColor = p.OutsideColor.Clamped()
	return out
}

// Validate checks every field against its declared range.
func (p Parameters) Validate() error {
	for _, f := range NumericFields {
		v, _ := p.Get(f)
		if !Limits[f].Contains(v) {
			b := Limits[f]
			return invalid(f, v, rangeReason(b))
		}
	}
	if !p.InsideColor.Valid() {
		return invalid(FieldInsideColor, p.InsideColor, "component outside [0,1]")
	}
	if !p.OutsideColor.Valid() {
		return invalid(FieldOutsideColor, p.OutsideColor, "component outside [0,1]")
	}
	return nil
}

// checkStructure rejects only inputs that would break the placement math.
// Out-of-range but computable values pass; range policing is the panel's job.
func (p Parameters) checkStructure() error {
	if p.Branches <= 0 {
		return invalid(FieldBranches, p.Branches, "must be positive")
	}
	if !(p.Radius > 0) || math.IsInf(p.Radius, 0) {
		return invalid(FieldRadius, p.Radius, "must be positive and finite")
	}
	for _, f := range []string{FieldSpin, FieldRandomness, FieldRandomnessPower, FieldPointSize} {
		v, _ := p.Get(f)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalid(f, v, "must be finite")
		}
	}
	if p.RandomnessPower < 0 {
		return invalid(FieldRandomnessPower, p.RandomnessPower, "must not be negative")
	}
	if !p.InsideColor.Valid() {
		return invalid(FieldInsideColor, p.InsideColor, "component outside [0,1]")
	}
	if !p.OutsideColor.Valid() {
		return invalid(FieldOutsideColor, p.OutsideColor, "component outside [0,1]")
	}
	return nil
}

func rangeReason(b Bounds) string {
	return "outside [" + strconv.FormatFloat(b.Min, 'g', -1, 64) + ", " + strconv.FormatFloat(b.Max, 'g', -1, 64) + "]"
}
