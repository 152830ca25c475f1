// Package trace implements the animated curve tracer and its reset
// synchronization protocol.
//
// Core pieces:
//
//   - [Tracer]: per-instance state machine that advances an input once
//     per frame, samples its term, and grows a polyline
//   - [Counter]: reset counter shared by every tracer in a scene
//   - [Scene]: owns the counter and frame-steps all attached tracers
//   - [LineSink]: output primitive the polyline is written to
//
// # Idle detection
//
// There is no direct signaling between tracers. Every tracer that draws
// a point increments the shared counter, and every tracer remembers the
// counter value it saw on its own previous tick. Observing no change
// means no instance drew anything, which is the distributed signal to
// reset: the observer zeroes the counter, clears its polyline, and waits
// out a fixed delay before restarting. The scheme costs one tick of
// detection latency and in exchange no tracer needs to know how many
// others exist.
package trace
