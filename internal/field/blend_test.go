package field_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ringfield/internal/field"
	"github.com/san-kum/ringfield/internal/geom"
)

var _ = Describe("blended gravity", func() {
	newRing := func(start, end float64) field.SegmentConfig {
		return field.SegmentConfig{
			ArcStart:        start,
			ArcEnd:          end,
			RingRadius:      1000,
			TubeRadius:      100,
			Axis:            geom.Vec3{Y: 1},
			Strength:        9.8,
			InfluenceRadius: 200,
		}
	}

	// 50 units above the surface at centerline angle zero.
	probe := geom.Vec3{X: 1150}

	Context("with two coincident fragments", func() {
		var compound, linear *field.Coordinator

		BeforeEach(func() {
			compound = field.NewCoordinator(field.Defaults{Blend: field.BlendCompound})
			linear = field.NewCoordinator(field.Defaults{Blend: field.BlendLinear})
			for _, c := range []*field.Coordinator{compound, linear} {
				_, err := c.Register("a", newRing(0, 2*math.Pi))
				Expect(err).NotTo(HaveOccurred())
				_, err = c.Register("b", newRing(0, 2*math.Pi))
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("normalizes weights to one", func() {
			g := compound.GravityAt(probe)
			sum := 0.0
			for _, s := range g.Segments {
				sum += s.Weight
			}
			Expect(sum).To(BeNumerically("~", 1.0, 1e-9))
		})

		It("breaks influence ties by the smaller id", func() {
			g := compound.GravityAt(probe)
			Expect(g.Dominant).To(Equal("a"))
		})

		It("compounds influence into the blended strength", func() {
			// Each fragment's strength is pre-scaled by its own influence, so
			// the compound blend is the linear blend scaled by influence.
			influence := 1 - 50.0/200.0

			gc := compound.GravityAt(probe)
			gl := linear.GravityAt(probe)

			Expect(gl.Acceleration.Length()).To(BeNumerically("~", 9.8, 1e-9))
			Expect(gc.Acceleration.Length()).To(
				BeNumerically("~", gl.Acceleration.Length()*influence, 1e-9))
		})
	})

	Context("across a fracture boundary", func() {
		var coord *field.Coordinator

		BeforeEach(func() {
			coord = field.NewCoordinator(field.Defaults{})
			_, err := coord.Register("east", newRing(0, math.Pi))
			Expect(err).NotTo(HaveOccurred())
			_, err = coord.Register("west", newRing(math.Pi, 2*math.Pi))
			Expect(err).NotTo(HaveOccurred())
		})

		It("reports both fragments near the seam", func() {
			at := func(angle float64) geom.Vec3 {
				s, c := math.Sincos(angle)
				return geom.Vec3{X: c * 1150, Z: -s * 1150}
			}
			g := coord.GravityAt(at(math.Pi - 0.01))
			Expect(g.Segments).To(HaveLen(2))
			Expect(g.Influence).To(BeNumerically(">", 0))
		})

		It("keeps the up vector unit length", func() {
			g := coord.GravityAt(geom.Vec3{X: -1150, Z: 20})
			Expect(g.Up.Length()).To(BeNumerically("~", 1.0, 1e-9))
		})
	})
})
