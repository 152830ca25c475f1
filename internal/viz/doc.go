// Package viz renders traced polylines in the terminal.
//
// The interactive view is a Bubble Tea program stepping the scene at
// 60fps:
//
//   - [Model]: live TUI with a per-tracer stats panel
//   - [Canvas]: braille-based pixel canvas
//   - [Viewport]: world-to-canvas projection, auto-fitted each frame
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart all tracers
//	?     - Toggle key help
//	Q     - Quit
package viz
