package galaxy_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/galaxy/internal/galaxy"
)

var _ = Describe("Generator", func() {
	var (
		slot *galaxy.Slot
		rec  *recording
		gen  *galaxy.Generator
	)

	BeforeEach(func() {
		slot = &galaxy.Slot{}
		rec = &recording{src: galaxy.NewSource(7)}
		gen = galaxy.NewGenerator(slot, galaxy.WithSource(rec))
	})

	DescribeTable("buffer lengths",
		func(count, want int) {
			p := galaxy.DefaultParameters()
			p.Count = count
			buf, err := gen.Generate(p)
			Expect(err).NotTo(HaveOccurred())
			Expect(buf.Positions).To(HaveLen(want))
			Expect(buf.Colors).To(HaveLen(want))
			Expect(buf.Len()).To(Equal(want / 3))
		},
		Entry("minimum count", 100, 300),
		Entry("default count", galaxy.DefaultCount, galaxy.DefaultCount*3),
		Entry("odd count", 1234, 3702),
		Entry("zero count", 0, 0),
		Entry("negative count", -5, 0),
	)

	It("accepts boundary values", func() {
		p := galaxy.Parameters{
			Count:           100,
			PointSize:       0.001,
			Radius:          3,
			Branches:        2,
			Spin:            -5,
			Randomness:      2,
			RandomnessPower: 10,
			InsideColor:     galaxy.MustColor("#000000"),
			OutsideColor:    galaxy.MustColor("#ffffff"),
		}
		Expect(p.Validate()).To(Succeed())
		buf, err := gen.Generate(p)
		Expect(err).NotTo(HaveOccurred())
		for _, v := range buf.Positions {
			Expect(math.IsNaN(float64(v))).To(BeFalse())
		}
	})

	It("keeps every color between the two endpoints", func() {
		p := galaxy.DefaultParameters()
		p.Count = 2000
		buf, err := gen.Generate(p)
		Expect(err).NotTo(HaveOccurred())

		in, out := p.InsideColor, p.OutsideColor
		lo := [3]float64{math.Min(in.R, out.R), math.Min(in.G, out.G), math.Min(in.B, out.B)}
		hi := [3]float64{math.Max(in.R, out.R), math.Max(in.G, out.G), math.Max(in.B, out.B)}
		for i := 0; i < buf.Len(); i++ {
			r, g, b := buf.Color(i)
			for k, c := range []float32{r, g, b} {
				Expect(float64(c)).To(BeNumerically(">=", lo[k]-1e-6))
				Expect(float64(c)).To(BeNumerically("<=", hi[k]+1e-6))
			}
		}
	})

	It("interpolates color by radius", func() {
		p := flatParams()
		p.Count = 50
		buf, err := gen.Generate(p)
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < buf.Len(); i++ {
			want := galaxy.Lerp(p.InsideColor, p.OutsideColor, rec.radiusOf(i, p)/p.Radius)
			r, g, b := buf.Color(i)
			Expect(r).To(Equal(float32(want.R)))
			Expect(g).To(Equal(float32(want.G)))
			Expect(b).To(Equal(float32(want.B)))
		}
	})

	It("assigns arms round-robin by index", func() {
		p := flatParams()
		p.Branches = 5
		p.Count = 500

		angles := map[float64][]int{}
		for i := 0; i < p.Count; i++ {
			a := galaxy.BranchAngle(i, p.Branches)
			angles[a] = append(angles[a], i)
		}
		Expect(angles).To(HaveLen(5))
		for _, idx := range angles {
			Expect(idx).To(HaveLen(100))
			for _, i := range idx {
				Expect(i % 5).To(Equal(idx[0] % 5))
			}
		}

		buf, err := gen.Generate(p)
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < buf.Len(); i++ {
			if rec.radiusOf(i, p) < 1e-3 {
				continue
			}
			x, _, z := buf.Point(i)
			got := math.Atan2(float64(x), float64(z))
			if got < 0 {
				got += 2 * math.Pi
			}
			want := galaxy.BranchAngle(i, p.Branches)
			Expect(math.Abs(math.Remainder(got-want, 2*math.Pi))).To(BeNumerically("<", 1e-4))
		}
	})

	It("places points exactly on the spiral when randomness is zero", func() {
		p := galaxy.DefaultParameters()
		p.Randomness = 0
		p.RandomnessPower = 7.5
		p.Spin = 2.3
		p.Count = 300
		buf, err := gen.Generate(p)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < buf.Len(); i++ {
			r := rec.radiusOf(i, p)
			angle := galaxy.BranchAngle(i, p.Branches) + r*p.Spin
			x, y, z := buf.Point(i)
			Expect(x).To(Equal(float32(math.Sin(angle) * r)))
			Expect(y).To(BeZero())
			Expect(z).To(Equal(float32(math.Cos(angle) * r)))
		}
	})

	It("reproduces the two-arm example", func() {
		p := flatParams()
		p.Count = 4
		p.Radius = 5
		p.Branches = 2
		buf, err := gen.Generate(p)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 4; i++ {
			r := rec.radiusOf(i, p)
			Expect(r).To(BeNumerically(">=", 0))
			Expect(r).To(BeNumerically("<", 5))
			x, y, z := buf.Point(i)
			Expect(float64(x)).To(BeNumerically("~", 0, 1e-6))
			Expect(y).To(BeZero())
			if i%2 == 0 {
				Expect(float64(z)).To(BeNumerically("~", r, 1e-6))
			} else {
				Expect(float64(z)).To(BeNumerically("~", -r, 1e-6))
			}
		}
	})

	It("applies power-biased, radius-scaled jitter", func() {
		// radius sample, then magnitude and sign for x, y, z
		src := &scripted{vals: []float64{0.5, 0.5, 0.2, 0.5, 0.7, 0.9, 0.1}}
		g := galaxy.NewGenerator(slot, galaxy.WithSource(src))
		p := galaxy.DefaultParameters()
		p.Count = 1
		p.Radius = 4
		p.Branches = 2
		p.Spin = 0
		p.Randomness = 1
		p.RandomnessPower = 2

		buf, err := g.Generate(p)
		Expect(err).NotTo(HaveOccurred())
		x, y, z := buf.Point(0)
		Expect(float64(x)).To(BeNumerically("~", 0.5, 1e-6))
		Expect(float64(y)).To(BeNumerically("~", -0.5, 1e-6))
		Expect(float64(z)).To(BeNumerically("~", 2+0.81*2, 1e-6))
	})

	It("repeats a galaxy for equal seeds", func() {
		p := galaxy.DefaultParameters()
		p.Count = 1000
		a, err := galaxy.NewGenerator(nil, galaxy.WithSource(galaxy.NewSource(99))).Generate(p)
		Expect(err).NotTo(HaveOccurred())
		b, err := galaxy.NewGenerator(nil, galaxy.WithSource(galaxy.NewSource(99))).Generate(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Positions).To(Equal(b.Positions))
		Expect(a.Colors).To(Equal(b.Colors))
	})

	Describe("lifecycle", func() {
		It("keeps only the newest buffers attached", func() {
			first, err := gen.RunInitial()
			Expect(err).NotTo(HaveOccurred())
			Expect(slot.Current()).To(BeIdenticalTo(first))

			second, err := gen.Generate(galaxy.DefaultParameters())
			Expect(err).NotTo(HaveOccurred())

			Expect(slot.Current()).To(BeIdenticalTo(second))
			Expect(first.Released()).To(BeTrue())
			Expect(first.Positions).To(BeNil())
			Expect(second.Released()).To(BeFalse())
			Expect(second.Generation).To(Equal(first.Generation + 1))

			attaches, releases := slot.Stats()
			Expect(attaches).To(Equal(2))
			Expect(releases).To(Equal(1))
		})

		It("rejects zero branches without touching the attached buffers", func() {
			prev, err := gen.RunInitial()
			Expect(err).NotTo(HaveOccurred())
			snapshot := append([]float32(nil), prev.Positions...)

			p := galaxy.DefaultParameters()
			p.Branches = 0
			buf, err := gen.Generate(p)
			Expect(buf).To(BeNil())
			Expect(err).To(MatchError(galaxy.ErrInvalidParameter))

			var perr *galaxy.ParameterError
			Expect(err).To(BeAssignableToTypeOf(perr))
			Expect(slot.Current()).To(BeIdenticalTo(prev))
			Expect(prev.Released()).To(BeFalse())
			Expect(prev.Positions).To(Equal(snapshot))

			attaches, releases := slot.Stats()
			Expect(attaches).To(Equal(1))
			Expect(releases).To(Equal(0))
		})

		DescribeTable("other structural rejections",
			func(mutate func(*galaxy.Parameters)) {
				p := galaxy.DefaultParameters()
				mutate(&p)
				_, err := gen.Generate(p)
				Expect(err).To(MatchError(galaxy.ErrInvalidParameter))
				Expect(slot.Current()).To(BeNil())
			},
			Entry("negative branches", func(p *galaxy.Parameters) { p.Branches = -3 }),
			Entry("zero radius", func(p *galaxy.Parameters) { p.Radius = 0 }),
			Entry("NaN radius", func(p *galaxy.Parameters) { p.Radius = math.NaN() }),
			Entry("infinite spin", func(p *galaxy.Parameters) { p.Spin = math.Inf(1) }),
			Entry("negative power", func(p *galaxy.Parameters) { p.RandomnessPower = -1 }),
			Entry("color out of gamut", func(p *galaxy.Parameters) { p.InsideColor.R = 1.5 }),
		)

		It("surfaces allocation failure and keeps the previous galaxy", func() {
			g := galaxy.NewGenerator(slot, galaxy.WithSource(rec), galaxy.WithMaxPoints(5000))
			prev, err := g.RunInitial()
			Expect(err).To(MatchError(galaxy.ErrAllocation))
			Expect(prev).To(BeNil())

			p := galaxy.DefaultParameters()
			p.Count = 5000
			prev, err = g.Generate(p)
			Expect(err).NotTo(HaveOccurred())

			p.Count = 5001
			_, err = g.Generate(p)
			Expect(err).To(MatchError(galaxy.ErrAllocation))
			Expect(slot.Current()).To(BeIdenticalTo(prev))
			Expect(prev.Released()).To(BeFalse())
		})

		DescribeTable("rejects counts no buffer can hold",
			func(count int) {
				prev, err := gen.RunInitial()
				Expect(err).NotTo(HaveOccurred())

				p := galaxy.DefaultParameters()
				p.Count = count
				var buf *galaxy.Buffers
				Expect(func() { buf, err = gen.Generate(p) }).NotTo(Panic())
				Expect(err).To(MatchError(galaxy.ErrAllocation))
				Expect(buf).To(BeNil())
				Expect(slot.Current()).To(BeIdenticalTo(prev))
				Expect(prev.Released()).To(BeFalse())
			},
			Entry("length wraps to a small slice", 6148914691236517206),
			Entry("largest int", math.MaxInt),
			Entry("length past the runtime limit", math.MaxInt/3),
		)

		It("lets Detach empty the slot", func() {
			buf, err := gen.RunInitial()
			Expect(err).NotTo(HaveOccurred())
			slot.Detach()
			Expect(slot.Current()).To(BeNil())
			Expect(buf.Released()).To(BeTrue())
			Expect(slot.View(func(*galaxy.Buffers, galaxy.DrawMode) {})).To(BeFalse())
		})
	})
})
