package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"functrace/internal/config"
	"functrace/internal/poly"
	"functrace/internal/trace"
	"functrace/internal/viz"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	plotMargin   = 60
)

var (
	colBg      = rl.NewColor(10, 10, 10, 255)
	colText    = rl.NewColor(180, 180, 180, 255)
	colTextDim = rl.NewColor(60, 60, 60, 255)
	colGrid    = rl.NewColor(30, 30, 30, 255)

	palette = []rl.Color{
		rl.NewColor(45, 212, 191, 255),
		rl.NewColor(244, 114, 182, 255),
		rl.NewColor(251, 191, 36, 255),
		rl.NewColor(96, 165, 250, 255),
		rl.NewColor(163, 230, 53, 255),
	}
)

// App is the windowed renderer: the scene is stepped once per display
// frame with the real frame delta, the way an engine host would drive
// the tracers.
type App struct {
	scene   *trace.Scene
	sinks   []*trace.BufferSink
	labels  []string
	t       float64
	running bool
}

func NewApp(cfg *config.Config) (*App, error) {
	a := &App{
		scene:   trace.NewScene(),
		running: true,
	}
	for _, tc := range cfg.Tracers {
		sink := trace.NewBufferSink()
		tr, err := a.scene.Add(tc.AsTracer(), sink)
		if err != nil {
			return nil, err
		}
		a.sinks = append(a.sinks, sink)
		a.labels = append(a.labels, tr.ActiveTerm().String())
	}
	return a, nil
}

// Run opens the window and drives the scene until close or quit.
func Run(cfg *config.Config) error {
	a, err := NewApp(cfg)
	if err != nil {
		return err
	}

	rl.InitWindow(screenWidth, screenHeight, "functrace")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			break
		}
		a.update()
		a.draw()
	}
	return nil
}

func (a *App) update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.running = !a.running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.scene.ForceReset()
		a.t = 0
	}

	if a.running {
		dt := float64(rl.GetFrameTime())
		a.scene.Step(dt)
		a.t += dt
	}
}

func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colBg)

	a.drawGrid()
	a.drawTraces()
	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) drawGrid() {
	for x := int32(plotMargin); x < screenWidth-plotMargin; x += 60 {
		rl.DrawLine(x, plotMargin, x, screenHeight-plotMargin, colGrid)
	}
	for y := int32(plotMargin); y < screenHeight-plotMargin; y += 60 {
		rl.DrawLine(plotMargin, y, screenWidth-plotMargin, y, colGrid)
	}
}

func (a *App) drawTraces() {
	lines := make([][]poly.Point, len(a.sinks))
	for i, s := range a.sinks {
		lines[i] = s.Points()
	}
	vp := viz.FitViewport(lines, 0.05)

	pw := float64(screenWidth - 2*plotMargin)
	ph := float64(screenHeight - 2*plotMargin)

	for i, pts := range lines {
		strip := make([]rl.Vector2, 0, len(pts))
		for _, p := range pts {
			if !p.IsValid() {
				continue
			}
			px := plotMargin + (p.X-vp.MinX)/(vp.MaxX-vp.MinX)*pw
			py := plotMargin + ph - (p.Y-vp.MinY)/(vp.MaxY-vp.MinY)*ph
			strip = append(strip, rl.NewVector2(float32(px), float32(py)))
		}
		if len(strip) < 2 {
			continue
		}
		rl.DrawLineStrip(strip, palette[i%len(palette)])
	}
}

func (a *App) drawHUD() {
	rl.DrawText("functrace", 30, 20, 24, colText)
	rl.DrawText(fmt.Sprintf("t=%.2f  counter=%d", a.t, a.scene.Counter().Count()), 180, 26, 16, colTextDim)

	y := int32(20)
	for i, tr := range a.scene.Tracers() {
		state := ""
		if tr.Resetting() {
			state = "  (resetting)"
		}
		rl.DrawText(a.labels[i]+state, screenWidth-320, y, 16, palette[i%len(palette)])
		y += 22
	}

	status := "[SPACE] PAUSE  [R] RESET  [Q] QUIT"
	if !a.running {
		status = "PAUSED  " + status
	}
	rl.DrawText(status, 30, screenHeight-34, 14, colTextDim)
}
