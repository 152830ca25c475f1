package trace

import "errors"

// Domain errors for tracer construction and scene runs.
var (
	// ErrNilCounter indicates a tracer was constructed without a shared
	// reset counter. The counter is the synchronization backbone, so
	// running without one is not an option.
	ErrNilCounter = errors.New("trace: shared reset counter not resolved")

	// ErrNilSink indicates a tracer was constructed without a line sink.
	ErrNilSink = errors.New("trace: line sink not resolved")

	// ErrNoTracers indicates a scene run was requested with no tracers.
	ErrNoTracers = errors.New("trace: scene has no tracers")
)
