package trace_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"functrace/internal/poly"
	"functrace/internal/trace"
)

var _ = Describe("Tracer", func() {
	var (
		scene *trace.Scene
		sink  *trace.BufferSink
	)

	BeforeEach(func() {
		scene = trace.NewScene()
		sink = trace.NewBufferSink()
	})

	Describe("construction", func() {
		It("rejects a nil counter", func() {
			_, err := trace.NewTracer(trace.DefaultTracerConfig(), nil, sink)
			Expect(err).To(MatchError(trace.ErrNilCounter))
		})

		It("rejects a nil sink", func() {
			_, err := trace.NewTracer(trace.DefaultTracerConfig(), trace.NewCounter(), nil)
			Expect(err).To(MatchError(trace.ErrNilSink))
		})

		It("resolves the active term once from the derivative order", func() {
			cfg := trace.DefaultTracerConfig()
			cfg.Term = poly.Term{Coefficient: 2, Exponent: 3}
			cfg.Order = 2

			tr, err := scene.Add(cfg, sink)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.ActiveTerm()).To(Equal(poly.Term{Coefficient: 12, Exponent: 1}))
			Expect(tr.OriginalTerm()).To(Equal(cfg.Term))
		})

		It("clamps a negative order to zero", func() {
			cfg := trace.DefaultTracerConfig()
			cfg.Term = poly.Term{Coefficient: 2, Exponent: 3}
			cfg.Order = -4

			tr, err := scene.Add(cfg, sink)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Order()).To(Equal(0))
			Expect(tr.ActiveTerm()).To(Equal(cfg.Term))
		})
	})

	Describe("drawing", func() {
		It("appends one translated point per tick", func() {
			cfg := trace.Config{
				Term:     poly.Term{Coefficient: 2, Exponent: 3},
				Speed:    1,
				Boundary: -1000,
				Start:    poly.Point{X: 10, Y: 20},
			}
			tr, err := scene.Add(cfg, sink)
			Expect(err).NotTo(HaveOccurred())

			scene.Step(0.1)
			Expect(sink.Points()).To(HaveLen(1))
			Expect(sink.Points()[0].X).To(BeNumerically("~", 10.1, 1e-9))
			Expect(sink.Points()[0].Y).To(BeNumerically("~", 20+2*0.001, 1e-9))

			scene.Step(0.1)
			Expect(sink.Points()).To(HaveLen(2))
			Expect(tr.Input()).To(BeNumerically("~", 0.2, 1e-9))
			Expect(scene.Counter().Count()).To(Equal(int64(2)))
		})

		It("traces the derivative when an order is configured", func() {
			cfg := trace.Config{
				Term:     poly.Term{Coefficient: 2, Exponent: 3},
				Order:    1, // 6x^2
				Speed:    1,
				Boundary: -1000,
			}
			_, err := scene.Add(cfg, sink)
			Expect(err).NotTo(HaveOccurred())

			scene.Step(0.5)
			Expect(sink.Points()).To(HaveLen(1))
			Expect(sink.Points()[0].Y).To(BeNumerically("~", 6*0.25, 1e-9))
		})

		It("skips the draw when the function is undefined at the input", func() {
			cfg := trace.Config{
				Term:     poly.Term{Coefficient: 1, Exponent: 0.5},
				Speed:    -1, // drives the input negative, sqrt yields NaN
				Boundary: -1000,
			}
			_, err := scene.Add(cfg, sink)
			Expect(err).NotTo(HaveOccurred())

			scene.Step(0.1)
			Expect(sink.Points()).To(BeEmpty())
			Expect(scene.Counter().Count()).To(BeZero())
		})
	})

	Describe("bounds termination", func() {
		// f(x) = -x^2 with boundary -4 draws at x=1,2 and freezes
		// from x=3 on (stepped with dt=1, speed=1).
		newFrozenScene := func() *trace.Tracer {
			cfg := trace.Config{
				Term:       poly.Term{Coefficient: -1, Exponent: 2},
				Speed:      1,
				Boundary:   -4,
				ResetDelay: 1,
			}
			tr, err := scene.Add(cfg, sink)
			Expect(err).NotTo(HaveOccurred())
			return tr
		}

		It("stops appending once the original curve leaves bounds", func() {
			newFrozenScene()

			scene.Step(1) // x=1, y=-1: draws
			scene.Step(1) // x=2, y=-4: not below, draws
			Expect(sink.Points()).To(HaveLen(2))

			scene.Step(1) // x=3, y=-9: frozen
			Expect(sink.Points()).To(HaveLen(2))
			Expect(scene.Counter().Count()).To(Equal(int64(2)))
		})

		It("checks bounds against the original curve, not the derivative", func() {
			// Derivative of -x^2 is -2x: at x=3 its value (-6) would
			// pass a boundary of -10, but the original (-9) decides.
			cfg := trace.Config{
				Term:       poly.Term{Coefficient: -1, Exponent: 2},
				Order:      1,
				Speed:      1,
				Boundary:   -4,
				ResetDelay: 1,
			}
			_, err := scene.Add(cfg, sink)
			Expect(err).NotTo(HaveOccurred())

			scene.Step(1)
			scene.Step(1)
			Expect(sink.Points()).To(HaveLen(2))

			scene.Step(1) // original at x=3 is out of bounds
			Expect(sink.Points()).To(HaveLen(2))
		})

		It("resets after the scene goes idle and restarts from zero", func() {
			tr := newFrozenScene()

			for i := 0; i < 3; i++ {
				scene.Step(1)
			}
			// Frozen at x=3; next tick observes the stale counter.
			scene.Step(1)
			Expect(tr.Resetting()).To(BeTrue())
			Expect(sink.Points()).To(BeEmpty())
			Expect(scene.Counter().Count()).To(BeZero())

			// Delay countdown: accumulates until it exceeds ResetDelay.
			scene.Step(1)
			Expect(tr.Resetting()).To(BeTrue())
			scene.Step(1)
			Expect(tr.Resetting()).To(BeFalse())

			// Drawing resumes from the start of the curve.
			scene.Step(1)
			Expect(sink.Points()).To(HaveLen(1))
			Expect(tr.Input()).To(BeNumerically("~", 1, 1e-9))
		})
	})

	Describe("reset idempotence", func() {
		It("leaves identical state after the delay path re-fires the reset", func() {
			// A curve that is out of bounds immediately: frozen from
			// the first tick, so the idle check resets on tick two and
			// the delay path resets again.
			cfg := trace.Config{
				Term:       poly.Term{Coefficient: 1, Exponent: 2},
				Speed:      1,
				Boundary:   1000,
				ResetDelay: 0.5,
			}
			tr, err := scene.Add(cfg, sink)
			Expect(err).NotTo(HaveOccurred())

			scene.Step(1) // frozen
			scene.Step(1) // idle detected: first reset

			afterFirst := []interface{}{tr.Input(), tr.Position(), len(tr.Points()), scene.Counter().Count()}

			scene.Step(1) // delay expired: second reset, back to running

			Expect(tr.Input()).To(Equal(afterFirst[0]))
			Expect(tr.Position()).To(Equal(afterFirst[1]))
			Expect(len(tr.Points())).To(Equal(afterFirst[2]))
			Expect(scene.Counter().Count()).To(Equal(afterFirst[3]))
			Expect(tr.Input()).To(BeZero())
			Expect(sink.Points()).To(BeEmpty())
		})
	})

	Describe("multi-tracer synchronization", func() {
		It("restarts every tracer within one reset-delay period of the scene going idle", func() {
			cfg := trace.Config{
				Term:       poly.Term{Coefficient: -1, Exponent: 2},
				Speed:      1,
				Boundary:   -4,
				ResetDelay: 1,
			}
			sinkA, sinkB := trace.NewBufferSink(), trace.NewBufferSink()
			trA, err := scene.Add(cfg, sinkA)
			Expect(err).NotTo(HaveOccurred())
			trB, err := scene.Add(cfg, sinkB)
			Expect(err).NotTo(HaveOccurred())

			// Both draw for two ticks, freeze on the third.
			for i := 0; i < 3; i++ {
				scene.Step(1)
			}
			Expect(sinkA.Points()).To(HaveLen(2))
			Expect(sinkB.Points()).To(HaveLen(2))

			// Idle detection ripples through within two ticks (one
			// tick of skew between instances is inherent).
			scene.Step(1)
			scene.Step(1)
			Expect(trA.Resetting() || len(sinkA.Points()) == 0).To(BeTrue())
			Expect(trB.Resetting()).To(BeTrue())
			Expect(sinkA.Points()).To(BeEmpty())
			Expect(sinkB.Points()).To(BeEmpty())

			// Resets stay staggered by the initial one-tick skew (each
			// delayed reset re-zeroes the counter), but both instances
			// come back and draw again.
			drewA, drewB := false, false
			for i := 0; i < 12; i++ {
				scene.Step(1)
				drewA = drewA || len(sinkA.Points()) > 0
				drewB = drewB || len(sinkB.Points()) > 0
			}
			Expect(drewA).To(BeTrue())
			Expect(drewB).To(BeTrue())
		})
	})
})
