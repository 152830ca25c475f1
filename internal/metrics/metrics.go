// Package metrics provides scene-level measurements for trace runs.
// Each type implements the [trace.Metric] interface.
package metrics

import (
	"math"

	"functrace/internal/trace"
)

// Points tracks the largest total polyline length reached during a run.
// Resets shrink the live polylines, so the peak is the useful number.
type Points struct {
	peak int
}

func NewPoints() *Points { return &Points{} }

func (p *Points) Name() string { return "peak_points" }

func (p *Points) Observe(s *trace.Scene, t float64) {
	total := 0
	for _, tr := range s.Tracers() {
		total += len(tr.Points())
	}
	if total > p.peak {
		p.peak = total
	}
}

func (p *Points) Value() float64 { return float64(p.peak) }
func (p *Points) Reset()         { p.peak = 0 }

// Resets counts transitions into the resetting state across all
// tracers.
type Resets struct {
	count int
	prev  map[*trace.Tracer]bool
}

func NewResets() *Resets { return &Resets{prev: make(map[*trace.Tracer]bool)} }

func (r *Resets) Name() string { return "resets" }

func (r *Resets) Observe(s *trace.Scene, t float64) {
	for _, tr := range s.Tracers() {
		now := tr.Resetting()
		if now && !r.prev[tr] {
			r.count++
		}
		r.prev[tr] = now
	}
}

func (r *Resets) Value() float64 { return float64(r.count) }

func (r *Resets) Reset() {
	r.count = 0
	r.prev = make(map[*trace.Tracer]bool)
}

// Extent tracks the largest finite |y| any tracer evaluated to.
type Extent struct {
	max float64
}

func NewExtent() *Extent { return &Extent{} }

func (e *Extent) Name() string { return "max_abs_y" }

func (e *Extent) Observe(s *trace.Scene, t float64) {
	for _, tr := range s.Tracers() {
		y := tr.Position().Y
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		if math.Abs(y) > e.max {
			e.max = math.Abs(y)
		}
	}
}

func (e *Extent) Value() float64 { return e.max }
func (e *Extent) Reset()         { e.max = 0 }
