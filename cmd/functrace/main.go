package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"functrace/internal/config"
	"functrace/internal/export"
	"functrace/internal/gui"
	"functrace/internal/metrics"
	"functrace/internal/poly"
	"functrace/internal/storage"
	"functrace/internal/trace"
	"functrace/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	duration   float64

	coefficient float64
	exponent    float64
	intercept   float64
	order       int
	speed       float64
	boundary    float64
	startX      float64
	startY      float64
	resetDelay  float64

	svgOut     string
	svgWidth   float64
	svgHeight  float64
	sweepCount int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "functrace",
		Short: "animated power-function tracing lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live view with the default curve.
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".functrace", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "trace headlessly and persist the run",
		RunE:  runTrace,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "trace with live terminal visualization",
		RunE:  runLive,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "trace in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg)
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "trace successive derivative orders concurrently",
		RunE:  sweepOrders,
	}
	sweepCmd.Flags().IntVar(&sweepCount, "orders", 4, "number of derivative orders to trace")

	for _, c := range []*cobra.Command{runCmd, liveCmd, guiCmd, sweepCmd, rootCmd} {
		c.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		c.Flags().StringVar(&preset, "preset", "", "use preset configuration")
		c.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
		c.Flags().Float64Var(&duration, "time", config.DefaultDuration, "trace duration")
		c.Flags().Float64Var(&coefficient, "coeff", 2, "term coefficient")
		c.Flags().Float64Var(&exponent, "exp", 3, "term exponent")
		c.Flags().Float64Var(&intercept, "intercept", 0, "term intercept")
		c.Flags().IntVar(&order, "order", 0, "derivative order")
		c.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "trace speed")
		c.Flags().Float64Var(&boundary, "boundary", config.DefaultBoundary, "lower y boundary")
		c.Flags().Float64Var(&startX, "start-x", 0, "starting x offset")
		c.Flags().Float64Var(&startY, "start-y", 0, "starting y offset")
		c.Flags().Float64Var(&resetDelay, "delay", config.DefaultResetDelay, "reset delay")
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run points to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run polylines to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().Float64Var(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().Float64Var(&svgHeight, "height", 600, "image height")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, sweepCmd, listCmd, plotCmd, presetsCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig merges preset, config file, and single-tracer flags.
// A preset wins over a config file; with neither, a single tracer is
// built from the term flags. dt and time flags apply whenever set.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config

	switch {
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	case configFile != "":
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	default:
		cfg = config.DefaultConfig()
		tc := &cfg.Tracers[0]
		tc.Term.Coefficient = coefficient
		tc.Term.Exponent = exponent
		tc.Term.Intercept = intercept
		tc.Order = order
		tc.Speed = speed
		tc.Boundary = boundary
		tc.Start = config.StartConfig{X: startX, Y: startY}
		tc.ResetDelay = resetDelay
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	return cfg, nil
}

func buildScene(cfg *config.Config) (*trace.Scene, []*trace.BufferSink, error) {
	scene := trace.NewScene()
	sinks := make([]*trace.BufferSink, 0, len(cfg.Tracers))
	for _, tc := range cfg.Tracers {
		sink := trace.NewBufferSink()
		if _, err := scene.Add(tc.AsTracer(), sink); err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, sink)
	}
	return scene, sinks, nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	scene, sinks, err := buildScene(cfg)
	if err != nil {
		return err
	}
	scene.AddMetric(metrics.NewPoints())
	scene.AddMetric(metrics.NewResets())
	scene.AddMetric(metrics.NewExtent())

	fmt.Printf("tracing %d function(s) for %.1fs...\n", len(cfg.Tracers), cfg.Duration)
	start := time.Now()

	if err := scene.Run(context.Background(), cfg.Duration, cfg.Dt, nil); err != nil {
		return err
	}

	elapsed := time.Since(start)

	// Snapshot: sinks are cleared on the next reset, the stored run
	// keeps whatever the final tick left behind.
	lines := make([][]poly.Point, len(sinks))
	for i, s := range sinks {
		pts := s.Points()
		lines[i] = append([]poly.Point(nil), pts...)
	}

	runID, err := st.Save(cfg, lines)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	for i, tr := range scene.Tracers() {
		fmt.Printf("  tracer %d: %s  points: %d\n", i, tr.ActiveTerm(), len(lines[i]))
	}
	fmt.Println("\nmetrics:")
	for name, val := range scene.MetricValues() {
		fmt.Printf("  %s: %.4f\n", name, val)
	}
	return nil
}

func sweepOrders(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	base := cfg.Tracers[0]
	cfgs := make([]trace.Config, sweepCount)
	for i := range cfgs {
		tc := base
		tc.Order = i
		cfgs[i] = tc.AsTracer()
	}

	lines, err := trace.RunBatch(context.Background(), cfgs, cfg.Duration, cfg.Dt)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tTERM\tPOINTS\tFINAL_Y")
	for i, pts := range lines {
		term := poly.DerivativeN(base.Term, i)
		finalY := "-"
		if len(pts) > 0 {
			finalY = strconv.FormatFloat(pts[len(pts)-1].Y, 'f', 4, 64)
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", i, term, len(pts), finalY)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tTRACERS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			len(run.Tracers),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	lines, err := st.LoadPoints(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n\n", meta.ID)

	for i, pts := range lines {
		if len(pts) == 0 {
			continue
		}
		data := make([]float64, len(pts))
		for j, p := range pts {
			data[j] = p.Y
		}

		caption := fmt.Sprintf("tracer %d", i)
		if i < len(meta.Tracers) {
			tm := meta.Tracers[i]
			caption = poly.DerivativeN(tm.Term, tm.Order).String()
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	lines, err := st.LoadPoints(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"tracer", "index", "x", "y"}); err != nil {
		return err
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
				return err
			}
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	lines, err := st.LoadPoints(args[0])
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, meta, lines)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	lines, err := st.LoadPoints(args[0])
	if err != nil {
		return err
	}

	svg := export.PolylinesToSVG(lines, svgWidth, svgHeight)
	if svgOut == "" {
		fmt.Print(svg)
		return nil
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}
