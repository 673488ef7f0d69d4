package terrain_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rampsim/internal/geom"
	"github.com/san-kum/rampsim/internal/terrain"
)

var _ = Describe("Build", func() {
	var p terrain.Profile

	BeforeEach(func() {
		p = terrain.DefaultProfile()
	})

	It("produces exactly eight vertices", func() {
		Expect(terrain.Build(p)).To(HaveLen(terrain.VertexCount))
	})

	It("starts at the profile start", func() {
		p.StartX, p.StartY = 1.5, -0.25
		Expect(terrain.Build(p)[0]).To(Equal(geom.V(1.5, -0.25)))
	})

	It("lays out the fixed stages", func() {
		v := terrain.Build(p)
		Expect(v[1]).To(Equal(geom.V(5, 0)))
		Expect(v[2]).To(Equal(geom.V(5, 0.03)))
		Expect(v[3].X()).To(BeNumerically("~", 5.5, 1e-12))
		Expect(v[3].Y()).To(BeNumerically("~", 0.05, 1e-12))
		Expect(v[7].Sub(v[6])).To(Equal(geom.V(terrain.FlatRun, 0)))
	})

	It("places the end of 3a one meter right and five centimeters down", func() {
		v := terrain.Build(p)
		Expect(v[4]).To(Equal(v[3].Add(geom.V(1.0, -0.05))))
	})

	It("keeps a zero-length segment as a duplicate vertex", func() {
		v := terrain.Build(p)
		Expect(v[6]).To(Equal(v[5]))
	})

	It("is bit-identical across rebuilds", func() {
		a, b := terrain.Build(p), terrain.Build(p)
		Expect(a).To(Equal(b))
		Expect(terrain.Fingerprint(a)).To(Equal(terrain.Fingerprint(b)))
	})

	It("changes the fingerprint when a segment changes", func() {
		before := terrain.Fingerprint(terrain.Build(p))
		p.Segments[1].DyCm = -71
		Expect(terrain.Fingerprint(terrain.Build(p))).NotTo(Equal(before))
	})

	DescribeTable("x never decreases",
		func(dx, dy float64) {
			for i := range p.Segments {
				p.Segments[i].DxCm = dx
				p.Segments[i].DyCm = dy
			}
			v := terrain.Build(p)
			Expect(v).To(HaveLen(terrain.VertexCount))
			for i := 1; i < len(v); i++ {
				Expect(v[i].X()).To(BeNumerically(">=", v[i-1].X()))
			}
		},
		Entry("defaults-ish", 100.0, -5.0),
		Entry("negative dx is clamped", -250.0, 40.0),
		Entry("zero", 0.0, 0.0),
		Entry("steep climb", 10.0, 500.0),
	)

	It("clamps negative dx to zero", func() {
		p.Segments[0].DxCm = -100
		v := terrain.Build(p)
		Expect(v[4].X()).To(Equal(v[3].X()))
		Expect(v[4].Y()).To(BeNumerically("~", v[3].Y()-0.05, 1e-12))
	})
})
