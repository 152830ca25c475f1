package trace_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"functrace/internal/poly"
	"functrace/internal/trace"
)

var _ = Describe("Scene", func() {
	var scene *trace.Scene

	cubic := trace.Config{
		Term:     poly.Term{Coefficient: 2, Exponent: 3},
		Speed:    1,
		Boundary: -1000,
	}

	BeforeEach(func() {
		scene = trace.NewScene()
	})

	Describe("Run", func() {
		It("validates dt and duration", func() {
			_, err := scene.Add(cubic, trace.NewBufferSink())
			Expect(err).NotTo(HaveOccurred())

			Expect(scene.Run(context.Background(), 1, 0, nil)).To(HaveOccurred())
			Expect(scene.Run(context.Background(), 1, -0.1, nil)).To(HaveOccurred())
			Expect(scene.Run(context.Background(), 0, 0.1, nil)).To(HaveOccurred())
		})

		It("refuses to run an empty scene", func() {
			Expect(scene.Run(context.Background(), 1, 0.1, nil)).To(MatchError(trace.ErrNoTracers))
		})

		It("stops on context cancellation", func() {
			_, err := scene.Add(cubic, trace.NewBufferSink())
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			Expect(scene.Run(ctx, 1, 0.1, nil)).To(MatchError(context.Canceled))
		})

		It("invokes the callback each tick and honors early stop", func() {
			sink := trace.NewBufferSink()
			_, err := scene.Add(cubic, sink)
			Expect(err).NotTo(HaveOccurred())

			ticks := 0
			err = scene.Run(context.Background(), 1, 0.1, func(step int, t float64) bool {
				ticks++
				return ticks < 3
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(ticks).To(Equal(3))
			Expect(sink.Points()).To(HaveLen(3))
		})

		It("resets all tracers on ForceReset", func() {
			sink := trace.NewBufferSink()
			tr, err := scene.Add(cubic, sink)
			Expect(err).NotTo(HaveOccurred())

			scene.Step(0.1)
			Expect(sink.Points()).To(HaveLen(1))

			scene.ForceReset()
			Expect(tr.Resetting()).To(BeTrue())
			Expect(sink.Points()).To(BeEmpty())
			Expect(scene.Counter().Count()).To(BeZero())
		})
	})

	Describe("RunBatch", func() {
		It("traces each config in an isolated scene", func() {
			base := trace.Config{
				Term:     poly.Term{Coefficient: 2, Exponent: 3},
				Speed:    1,
				Boundary: -1000,
			}
			cfgs := make([]trace.Config, 3)
			for i := range cfgs {
				cfgs[i] = base
				cfgs[i].Order = i
			}

			lines, err := trace.RunBatch(context.Background(), cfgs, 1, 0.1)
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(HaveLen(3))
			for _, pts := range lines {
				Expect(len(pts)).To(BeNumerically(">", 0))
			}

			// Order 2 of 2x^3 is 12x: the final sample reflects the
			// derivative, not the original.
			last := lines[2][len(lines[2])-1]
			Expect(last.Y).To(BeNumerically("~", 12*last.X, 1e-9))
		})

		It("propagates per-run errors", func() {
			_, err := trace.RunBatch(context.Background(), []trace.Config{{}}, 0, 0.1)
			Expect(err).To(HaveOccurred())
		})
	})
})
