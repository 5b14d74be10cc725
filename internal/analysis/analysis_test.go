package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/galaxy/internal/galaxy"
)

func generate(t *testing.T, mutate func(p *galaxy.Parameters)) *galaxy.Buffers {
	t.Helper()
	p := galaxy.DefaultParameters()
	p.Count = 2000
	if mutate != nil {
		mutate(&p)
	}
	b, err := galaxy.NewGenerator(nil, galaxy.WithSource(galaxy.NewSource(5))).Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestFFT(t *testing.T) {
	data := make([]float64, 16)
	for i := range data {
		data[i] = math.Cos(2 * math.Pi * 3 * float64(i) / 16)
	}
	ps := PowerSpectrum(data)
	if DominantMode(ps) != 3 {
		t.Errorf("expected peak at 3, got %d", DominantMode(ps))
	}
}

func TestRadialProfile(t *testing.T) {
	b := generate(t, func(p *galaxy.Parameters) { p.Randomness = 0 })
	prof := RadialProfile(b, 10)
	total := 0.0
	for _, v := range prof {
		total += v
	}
	if int(total) != b.Len() {
		t.Errorf("profile holds %v points, want %d", total, b.Len())
	}
	// r is uniform in [0, Radius) so each band gets roughly a tenth.
	for i, v := range prof {
		if v < 120 || v > 280 {
			t.Errorf("band %d has %v points", i, v)
		}
	}
	if RadialProfile(b, 0) != nil {
		t.Error("zero bins should give nil")
	}
}

func TestArmOccupancy(t *testing.T) {
	b := generate(t, func(p *galaxy.Parameters) { p.Count = 10; p.Branches = 3 })
	arms := ArmOccupancy(b)
	want := []int{4, 3, 3}
	for i := range want {
		if arms[i] != want[i] {
			t.Fatalf("arms = %v, want %v", arms, want)
		}
	}
}

func TestMeasure(t *testing.T) {
	flat := Measure(generate(t, func(p *galaxy.Parameters) { p.Randomness = 0 }))
	if flat.MaxAbsY != 0 {
		t.Errorf("flat galaxy has |y| = %v", flat.MaxAbsY)
	}
	if flat.Extent > 5 {
		t.Errorf("extent %v exceeds radius", flat.Extent)
	}

	thick := Measure(generate(t, func(p *galaxy.Parameters) { p.Randomness = 1; p.RandomnessPower = 1 }))
	if thick.MeanAbsY <= flat.MeanAbsY {
		t.Error("randomness should thicken the disc")
	}

	if (Measure(nil) != Stats{}) {
		t.Error("nil buffers should give zero stats")
	}
}

func TestAzimuthalModes(t *testing.T) {
	for _, arms := range []int{3, 4} {
		b := generate(t, func(p *galaxy.Parameters) { p.Branches = arms; p.Randomness = 0 })
		if m := DominantMode(AzimuthalModes(b, 64)); m != arms {
			t.Errorf("branches=%d: dominant mode %d", arms, m)
		}
	}
}

func TestDensityMap(t *testing.T) {
	b := generate(t, nil)
	m := DensityMap(b, 40, 20)
	lines := strings.Split(strings.TrimRight(m, "\n"), "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 rows, got %d", len(lines))
	}
	if !strings.ContainsRune(m, '@') {
		t.Error("densest cell should use the top shade")
	}
	if DensityMap(nil, 10, 10) != "" {
		t.Error("nil buffers should render nothing")
	}
}

func TestReport(t *testing.T) {
	r := Report(generate(t, nil))
	for _, want := range []string{"points:       2000", "arms:", "radial profile"} {
		if !strings.Contains(r, want) {
			t.Errorf("report missing %q", want)
		}
	}
}
