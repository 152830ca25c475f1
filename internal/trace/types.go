package trace

import (
	"sync/atomic"

	"functrace/internal/poly"
)

// Counter is the reset counter shared by every tracer in a scene. While
// any tracer is actively drawing it increments the counter once per tick;
// a tracer that observes the counter unchanged across one of its own
// ticks infers that the whole scene has gone idle.
//
// The tick protocol itself is single-threaded, but the handle is backed
// by an atomic so a host that steps tracers from another goroutine does
// not race on it.
type Counter struct {
	n atomic.Int64
}

func NewCounter() *Counter { return &Counter{} }

func (c *Counter) Count() int64     { return c.n.Load() }
func (c *Counter) SetCount(v int64) { c.n.Store(v) }
func (c *Counter) Inc()             { c.n.Add(1) }

// LineSink receives the growing polyline of one tracer. Implementations
// are rendering primitives: the terminal canvas, the raylib view, or a
// plain buffer for storage and tests.
type LineSink interface {
	SetPointCount(n int)
	SetPoint(i int, p poly.Point)
}

// BufferSink is a LineSink that retains the polyline in memory.
type BufferSink struct {
	points []poly.Point
}

func NewBufferSink() *BufferSink { return &BufferSink{points: make([]poly.Point, 0, 256)} }

func (b *BufferSink) SetPointCount(n int) {
	if n < 0 {
		n = 0
	}
	for len(b.points) < n {
		b.points = append(b.points, poly.Point{})
	}
	b.points = b.points[:n]
}

func (b *BufferSink) SetPoint(i int, p poly.Point) {
	if i < 0 || i >= len(b.points) {
		return
	}
	b.points[i] = p
}

func (b *BufferSink) Points() []poly.Point { return b.points }

// Config describes one tracer instance.
type Config struct {
	Term       poly.Term  // original function term
	Order      int        // derivative order; negative values clamp to 0
	Speed      float64    // input advance per time unit
	Boundary   float64    // lower y bound, checked against the original curve
	Start      poly.Point // world-space offset applied to every drawn point
	ResetDelay float64    // delay before a reset completes, in time units
}

const (
	DefaultSpeed      = 1.0
	DefaultResetDelay = 1.0
)

func DefaultTracerConfig() Config {
	return Config{
		Term:       poly.Term{Coefficient: 1, Exponent: 2},
		Speed:      DefaultSpeed,
		Boundary:   -10,
		ResetDelay: DefaultResetDelay,
	}
}
