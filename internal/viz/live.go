package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"functrace/internal/config"
	"functrace/internal/poly"
	"functrace/internal/trace"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
)

type TickMsg time.Time

type tracerView struct {
	tracer *trace.Tracer
	sink   *trace.BufferSink
	color  lipgloss.Style
}

// Model is the live TUI: a scene frame-stepped at 60fps with the
// polylines rendered on a braille canvas and a per-tracer stats panel.
type Model struct {
	scene    *trace.Scene
	views    []tracerView
	canvas   *Canvas
	dt       float64
	t        float64
	paused   bool
	showHelp bool
}

func NewModel(cfg *config.Config) (Model, error) {
	scene := trace.NewScene()
	views := make([]tracerView, 0, len(cfg.Tracers))

	for _, tc := range cfg.Tracers {
		sink := trace.NewBufferSink()
		tr, err := scene.Add(tc.AsTracer(), sink)
		if err != nil {
			return Model{}, err
		}
		color := tc.Color
		if color == "" {
			color = config.DefaultColor
		}
		views = append(views, tracerView{
			tracer: tr,
			sink:   sink,
			color:  lipgloss.NewStyle().Foreground(lipgloss.Color(color)),
		})
	}

	return Model{
		scene:  scene,
		views:  views,
		canvas: NewCanvas(canvasWidth, canvasHeight),
		dt:     cfg.Dt,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.scene.ForceReset()
			m.t = 0
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if !m.paused {
			m.scene.Step(m.dt)
			m.t += m.dt
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) View() string {
	m.canvas.Clear()

	lines := make([][]poly.Point, len(m.views))
	for i, v := range m.views {
		lines[i] = v.sink.Points()
	}
	vp := FitViewport(lines, 0.05)
	for _, pts := range lines {
		DrawPolyline(m.canvas, vp, pts)
	}

	header := headerStyle.Render(fmt.Sprintf("functrace  t=%.2f  counter=%d", m.t, m.scene.Counter().Count()))
	if m.paused {
		header += resetStyle.Render("  [paused]")
	}

	var stats strings.Builder
	for i, v := range m.views {
		tr := v.tracer
		state := "running"
		if tr.Resetting() {
			state = "resetting"
		}

		stats.WriteString(v.color.Render(fmt.Sprintf("■ %s", tr.ActiveTerm())))
		stats.WriteByte('\n')
		if tr.Order() > 0 {
			stats.WriteString(labelStyle.Render("original") + valueStyle.Render(tr.OriginalTerm().String()) + "\n")
		}
		stats.WriteString(labelStyle.Render("state") + valueStyle.Render(state) + "\n")
		stats.WriteString(labelStyle.Render("input") + valueStyle.Render(fmt.Sprintf("%.3f", tr.Input())) + "\n")
		stats.WriteString(labelStyle.Render("points") + valueStyle.Render(fmt.Sprintf("%d", len(tr.Points()))) + "\n")
		if i < len(m.views)-1 {
			stats.WriteByte('\n')
		}
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(stats.String()),
	)

	out := header + "\n" + body
	if m.showHelp {
		out += helpStyle.Render("\nspace pause   r reset   ? help   q quit")
	} else {
		out += helpStyle.Render("\n? for keys")
	}
	return out
}
