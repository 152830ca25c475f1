package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"functrace/internal/config"
	"functrace/internal/poly"
)

// Store persists traced runs under a data directory, one subdirectory
// per run holding metadata.json and points.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type TracerMetadata struct {
	Term   poly.Term `json:"term"`
	Order  int       `json:"order"`
	Speed  float64   `json:"speed"`
	Color  string    `json:"color"`
	Points int       `json:"points"`
}

type RunMetadata struct {
	ID        string           `json:"id"`
	Timestamp time.Time        `json:"timestamp"`
	Dt        float64          `json:"dt"`
	Duration  float64          `json:"duration"`
	Tracers   []TracerMetadata `json:"tracers"`
}

// Save writes one run: the configuration it was produced from plus the
// final polyline of every tracer, in configuration order.
func (s *Store) Save(cfg *config.Config, lines [][]poly.Point) (string, error) {
	runID := fmt.Sprintf("trace_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Tracers:   make([]TracerMetadata, 0, len(cfg.Tracers)),
	}
	for i, tc := range cfg.Tracers {
		n := 0
		if i < len(lines) {
			n = len(lines[i])
		}
		meta.Tracers = append(meta.Tracers, TracerMetadata{
			Term:   tc.Term,
			Order:  tc.Order,
			Speed:  tc.Speed,
			Color:  tc.Color,
			Points: n,
		})
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "points.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"tracer", "index", "x", "y"}); err != nil {
		return "", err
	}
	for ti, pts := range lines {
		for pi, p := range pts {
			row := []string{
				strconv.Itoa(ti),
				strconv.Itoa(pi),
				strconv.FormatFloat(p.X, 'f', 6, 64),
				strconv.FormatFloat(p.Y, 'f', 6, 64),
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadPoints reads back the per-tracer polylines of a run.
func (s *Store) LoadPoints(runID string) ([][]poly.Point, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "points.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	lines := make([][]poly.Point, 0, 4)
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 4 {
			continue
		}
		ti, err := strconv.Atoi(rec[0])
		if err != nil || ti < 0 {
			continue
		}
		x, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			continue
		}
		y, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			continue
		}
		for len(lines) <= ti {
			lines = append(lines, nil)
		}
		lines[ti] = append(lines[ti], poly.Point{X: x, Y: y})
	}
	return lines, nil
}
