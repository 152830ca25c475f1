package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"functrace/internal/poly"
	"functrace/internal/storage"
)

func TestPolylinesToSVG(t *testing.T) {
	lines := [][]poly.Point{
		{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: 8}},
		{{X: 0, Y: 0}, {X: 1, Y: 6}},
	}

	svg := PolylinesToSVG(lines, 400, 300)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if strings.Count(svg, "<polyline") != 2 {
		t.Errorf("expected 2 polylines, got %d", strings.Count(svg, "<polyline"))
	}
	if !strings.Contains(svg, "</svg>") {
		t.Error("unterminated SVG document")
	}
}

func TestPolylinesToSVGSkipsNonFinite(t *testing.T) {
	inf := poly.Eval(poly.Term{Coefficient: 1, Exponent: -1}, 0).Y
	lines := [][]poly.Point{{{X: 0, Y: inf}}}

	svg := PolylinesToSVG(lines, 100, 100)
	if strings.Contains(svg, "<polyline") {
		t.Error("polyline emitted for entirely non-finite trace")
	}
}

func TestWriteJSON(t *testing.T) {
	meta := &storage.RunMetadata{
		ID: "trace_1", Dt: 0.016, Duration: 10,
		Tracers: []storage.TracerMetadata{
			{Term: poly.Term{Coefficient: 2, Exponent: 3}, Order: 1, Color: "86"},
		},
	}
	lines := [][]poly.Point{{{X: 0.1, Y: 0.06}}}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, meta, lines); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var data RunData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if data.ID != "trace_1" || len(data.Tracers) != 1 {
		t.Errorf("unexpected run data: %+v", data)
	}
	if len(data.Tracers[0].Points) != 1 || data.Tracers[0].Points[0][1] != 0.06 {
		t.Errorf("points lost in export: %+v", data.Tracers[0].Points)
	}
}
