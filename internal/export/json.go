package export

import (
	"encoding/json"
	"io"

	"functrace/internal/poly"
	"functrace/internal/storage"
)

type TracerData struct {
	Term   poly.Term    `json:"term"`
	Order  int          `json:"order"`
	Color  string       `json:"color"`
	Points [][2]float64 `json:"points"`
}

type RunData struct {
	ID       string       `json:"id"`
	Dt       float64      `json:"dt"`
	Duration float64      `json:"duration"`
	Tracers  []TracerData `json:"tracers"`
}

// WriteJSON emits a run with its full point data.
func WriteJSON(w io.Writer, meta *storage.RunMetadata, lines [][]poly.Point) error {
	data := RunData{
		ID:       meta.ID,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Tracers:  make([]TracerData, 0, len(meta.Tracers)),
	}

	for i, tm := range meta.Tracers {
		td := TracerData{Term: tm.Term, Order: tm.Order, Color: tm.Color}
		if i < len(lines) {
			td.Points = make([][2]float64, 0, len(lines[i]))
			for _, p := range lines[i] {
				td.Points = append(td.Points, [2]float64{p.X, p.Y})
			}
		}
		data.Tracers = append(data.Tracers, td)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
