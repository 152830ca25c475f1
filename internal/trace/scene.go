package trace

import (
	"context"
	"fmt"
)

// Scene owns the shared reset counter and every tracer attached to it.
// The host advances the whole scene once per simulated frame; tracer
// order within a tick is the order of attachment.
type Scene struct {
	counter *Counter
	tracers []*Tracer
	metrics []Metric
}

func NewScene() *Scene {
	return &Scene{
		counter: NewCounter(),
		tracers: make([]*Tracer, 0, 4),
	}
}

func (s *Scene) Counter() *Counter  { return s.counter }
func (s *Scene) Tracers() []*Tracer { return s.tracers }

// Add constructs a tracer wired to the scene's shared counter and
// attaches it.
func (s *Scene) Add(cfg Config, sink LineSink) (*Tracer, error) {
	tr, err := NewTracer(cfg, s.counter, sink)
	if err != nil {
		return nil, err
	}
	s.tracers = append(s.tracers, tr)
	return tr, nil
}

// ForceReset restarts every tracer without waiting for idle detection.
func (s *Scene) ForceReset() {
	for _, tr := range s.tracers {
		tr.ForceReset()
	}
}

// Step advances every tracer by one frame.
func (s *Scene) Step(dt float64) {
	for _, tr := range s.tracers {
		tr.Step(dt)
	}
}

// Run frame-steps the scene for the given duration. The callback is
// invoked after every tick; returning false stops the run early.
func (s *Scene) Run(ctx context.Context, duration, dt float64, callback func(step int, t float64) bool) error {
	if dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", dt)
	}
	if duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", duration)
	}
	if len(s.tracers) == 0 {
		return ErrNoTracers
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	for step := 0; t < duration; step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.Step(dt)
		t += dt

		for _, m := range s.metrics {
			m.Observe(s, t)
		}

		if callback != nil && !callback(step, t) {
			return nil
		}
	}
	return nil
}
