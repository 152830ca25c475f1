package trace

import "functrace/internal/poly"

// Tracer is one independent animated curve instance. It advances an
// input parameter once per tick, samples its active term, appends points
// to a growing polyline, and coordinates lockstep resets with every
// other tracer through the shared counter.
type Tracer struct {
	original poly.Term
	active   poly.Term
	order    int

	speed      float64
	boundary   float64
	resetDelay float64
	start      poly.Point

	counter *Counter
	sink    LineSink

	input      float64
	pos        poly.Point
	resetting  bool
	resetTimer float64
	lineIndex  int
	points     []poly.Point
	prevCount  int64
}

// NewTracer constructs a tracer with already-resolved collaborators.
// The derivative term, if requested, is computed once here; per-tick
// code never branches on the order again.
func NewTracer(cfg Config, counter *Counter, sink LineSink) (*Tracer, error) {
	if counter == nil {
		return nil, ErrNilCounter
	}
	if sink == nil {
		return nil, ErrNilSink
	}

	order := cfg.Order
	if order < 0 {
		order = 0
	}
	speed := cfg.Speed
	if speed == 0 {
		speed = DefaultSpeed
	}
	delay := cfg.ResetDelay
	if delay <= 0 {
		delay = DefaultResetDelay
	}

	tr := &Tracer{
		original:   cfg.Term,
		active:     poly.DerivativeN(cfg.Term, order),
		order:      order,
		speed:      speed,
		boundary:   cfg.Boundary,
		resetDelay: delay,
		start:      cfg.Start,
		counter:    counter,
		sink:       sink,
		points:     make([]poly.Point, 0, 256),
		pos:        poly.Eval(poly.DerivativeN(cfg.Term, order), 0),
		prevCount:  -1,
	}
	return tr, nil
}

// Step advances the tracer by one simulated frame.
func (tr *Tracer) Step(dt float64) {
	if tr.resetting {
		tr.resetTimer += dt
		if tr.resetTimer > tr.resetDelay {
			tr.reset()
			tr.resetTimer = 0
			tr.resetting = false
		}
		return
	}

	// Idle check: if nobody (this tracer included) bumped the counter
	// since our last tick, the scene is done drawing.
	if tr.prevCount == tr.counter.Count() {
		tr.resetting = true
		tr.reset()
		return
	}

	tr.input = tr.pos.X + tr.speed*dt
	tr.pos = poly.Eval(tr.active, tr.input)
	tr.prevCount = tr.counter.Count()

	// The boundary is always checked against the original curve, even
	// when tracing a derivative: derivative traces terminate where the
	// original would leave the view.
	floor := poly.Eval(tr.original, tr.input)
	if floor.Y+tr.original.Intercept < tr.boundary {
		return
	}
	if !tr.pos.IsValid() {
		// Function undefined at this input (e.g. a pole). Skip the
		// draw; the idle protocol recovers the scene if everyone stalls.
		return
	}

	tr.counter.Inc()
	p := poly.Point{X: tr.start.X + tr.pos.X, Y: tr.start.Y + tr.pos.Y}
	if tr.lineIndex < len(tr.points) {
		tr.points[tr.lineIndex] = p
	} else {
		tr.points = append(tr.points, p)
	}
	tr.sink.SetPointCount(tr.lineIndex + 1)
	tr.sink.SetPoint(tr.lineIndex, p)
	tr.lineIndex++
}

// reset restores the tracer to its initial drawing state and zeroes the
// shared counter. prevCount is parked at -1 so a freshly reset tracer
// cannot trip the idle check against a counter value it never observed.
func (tr *Tracer) reset() {
	tr.counter.SetCount(0)
	tr.lineIndex = 0
	tr.points = tr.points[:0]
	tr.sink.SetPointCount(0)
	tr.input = 0
	tr.pos = poly.Eval(tr.active, 0)
	tr.prevCount = -1
}

// ForceReset drops the tracer into the reset delay immediately, as if
// the idle check had fired.
func (tr *Tracer) ForceReset() {
	tr.resetting = true
	tr.resetTimer = 0
	tr.reset()
}

func (tr *Tracer) Resetting() bool         { return tr.resetting }
func (tr *Tracer) Input() float64          { return tr.input }
func (tr *Tracer) Position() poly.Point    { return tr.pos }
func (tr *Tracer) Start() poly.Point       { return tr.start }
func (tr *Tracer) Order() int              { return tr.order }
func (tr *Tracer) OriginalTerm() poly.Term { return tr.original }
func (tr *Tracer) ActiveTerm() poly.Term   { return tr.active }

// Points returns the polyline accumulated since the last reset. The
// slice is reused across resets; callers that retain it must copy.
func (tr *Tracer) Points() []poly.Point { return tr.points }
