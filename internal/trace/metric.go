package trace

// Metric accumulates an observation over a scene run. Observe is called
// once per tick, after every tracer has stepped.
type Metric interface {
	Name() string
	Observe(s *Scene, t float64)
	Value() float64
	Reset()
}

func (s *Scene) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

// MetricValues returns the current value of every attached metric.
func (s *Scene) MetricValues() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
