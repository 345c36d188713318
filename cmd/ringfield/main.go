package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ringfield/internal/config"
	"github.com/san-kum/ringfield/internal/export"
	"github.com/san-kum/ringfield/internal/field"
	"github.com/san-kum/ringfield/internal/geom"
	"github.com/san-kum/ringfield/internal/probe"
	"github.com/san-kum/ringfield/internal/storage"
	"github.com/san-kum/ringfield/internal/viz"
)

var (
	dataDir    string
	configFile string
	dt         float64
	duration   float64
	integrator string
	// scan flags
	scanAngle   float64
	scanFrom    float64
	scanTo      float64
	scanSamples int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ringfield",
		Short: "gravity field engine for fractured ringworlds",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ringfield", "data directory")

	dropCmd := &cobra.Command{
		Use:   "drop [preset]",
		Short: "drop a probe through a field and record the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDrop,
	}
	dropCmd.Flags().StringVar(&configFile, "config", "", "field config file (yaml)")
	dropCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	dropCmd.Flags().Float64Var(&duration, "time", 0, "duration override")
	dropCmd.Flags().StringVar(&integrator, "integrator", "", "integrator override (euler, rk4)")

	scanCmd := &cobra.Command{
		Use:   "scan [preset]",
		Short: "plot gravity magnitude along a radial line",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	scanCmd.Flags().StringVar(&configFile, "config", "", "field config file (yaml)")
	scanCmd.Flags().Float64Var(&scanAngle, "angle", 0, "centerline angle (radians)")
	scanCmd.Flags().Float64Var(&scanFrom, "from", 900, "start distance from ring axis")
	scanCmd.Flags().Float64Var(&scanTo, "to", 1400, "end distance from ring axis")
	scanCmd.Flags().IntVar(&scanSamples, "samples", 120, "sample count")

	falloffCmd := &cobra.Command{
		Use:   "falloff [curve]",
		Short: "plot a falloff curve",
		Args:  cobra.ExactArgs(1),
		RunE:  runFalloff,
	}

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "watch a probe fall through the field",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "field config file (yaml)")
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	liveCmd.Flags().StringVar(&integrator, "integrator", "", "integrator override (euler, rk4)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the run's ring-plane trajectory as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available field presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-12s %d segment(s), %s falloff\n", name, len(cfg.Segments), cfg.Falloff)
			}
		},
	}

	rootCmd.AddCommand(dropCmd, scanCmd, falloffCmd, liveCmd, listCmd, plotCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadField resolves a preset name or config file into a built coordinator
// plus the config that produced it.
func loadField(args []string) (*config.Config, *field.Coordinator, string, error) {
	name := "ringworld"
	if len(args) > 0 {
		name = args[0]
	}

	var cfg *config.Config
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = "custom"
	} else {
		preset := config.GetPreset(name)
		if preset == nil {
			return nil, nil, "", fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		// Overrides below must not leak into the shared preset table.
		cfg = preset.Clone()
	}

	if dt > 0 {
		cfg.Dt = dt
	}
	if duration > 0 {
		cfg.Duration = duration
	}
	if integrator != "" {
		cfg.Integrator = integrator
	}

	coord, err := cfg.Build()
	if err != nil {
		return nil, nil, "", err
	}
	return cfg, coord, name, nil
}

func runDrop(cmd *cobra.Command, args []string) error {
	cfg, coord, name, err := loadField(args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	start := probe.State{
		Position: cfg.Probe.Position.Vec(),
		Velocity: cfg.Probe.Velocity.Vec(),
	}

	fmt.Printf("dropping probe through %s (%d segments)...\n", name, coord.Count())
	began := time.Now()

	result, err := probe.Run(context.Background(), coord, probe.NewIntegrator(cfg.Integrator),
		start, probe.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil {
		return err
	}

	runID, err := st.Save(storage.RunMetadata{
		Preset:     name,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Integrator: cfg.Integrator,
		Falloff:    cfg.Falloff,
		Segments:   coord.Count(),
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(began))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(result.Steps))

	gs := make([]float64, len(result.Steps))
	for i, s := range result.Steps {
		gs[i] = s.GMag
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(gs,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("|g| along the trajectory"),
	))
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	_, coord, name, err := loadField(args)
	if err != nil {
		return err
	}
	if scanSamples < 2 {
		return fmt.Errorf("need at least 2 samples, got %d", scanSamples)
	}

	sin, cos := math.Sincos(scanAngle)
	gs := make([]float64, scanSamples)
	for i := range gs {
		d := scanFrom + (scanTo-scanFrom)*float64(i)/float64(scanSamples-1)
		p := geom.Vec3{X: cos * d, Z: -sin * d}
		gs[i] = coord.GravityAt(p).Acceleration.Length()
	}

	fmt.Printf("field: %s, angle %.3f rad, distance %.0f..%.0f\n\n", name, scanAngle, scanFrom, scanTo)
	fmt.Println(asciigraph.Plot(gs,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("|g| vs distance from ring axis"),
	))
	return nil
}

func runFalloff(cmd *cobra.Command, args []string) error {
	curve, err := field.ParseFalloff(args[0])
	if err != nil {
		return err
	}

	const radius = 1.0
	data := make([]float64, 101)
	for i := range data {
		data[i] = field.Influence(float64(i)/100*radius, radius, curve)
	}

	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s influence vs distance", curve)),
	))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, coord, name, err := loadField(args)
	if err != nil {
		return err
	}

	start := probe.State{
		Position: cfg.Probe.Position.Vec(),
		Velocity: cfg.Probe.Velocity.Vec(),
	}
	m := viz.NewModel(coord, probe.NewIntegrator(cfg.Integrator), start, cfg.Dt, name)

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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tDT\tINTEG\tSEGMENTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Segments,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, _, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(samples))

	plots := []struct {
		caption string
		col     int
	}{
		{"gravity magnitude", -1},
		{"influence", 10},
		{"surface distance", 11},
	}

	for _, p := range plots {
		data := make([]float64, len(samples))
		for i, row := range samples {
			if p.col == -1 {
				g := geom.Vec3{X: row[7], Y: row[8], Z: row[9]}
				data[i] = g.Length()
			} else {
				data[i] = row[p.col]
			}
			if math.IsInf(data[i], 0) {
				data[i] = 0
			}
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		))
		fmt.Println()
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, dominant, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time", "px", "py", "pz", "vx", "vy", "vz",
		"gx", "gy", "gz", "influence", "surface_distance", "dominant"}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, row := range samples {
		out := make([]string, 0, len(row)+1)
		for _, v := range row {
			out = append(out, strconv.FormatFloat(v, 'f', 6, 64))
		}
		out = append(out, dominant[i])
		if err := w.Write(out); err != nil {
			return err
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
	samples, dominant, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, samples, dominant)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, _, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	points := make([]export.Point, len(samples))
	for i, row := range samples {
		points[i] = export.Point{X: row[1], Y: row[3]} // ring plane: px, pz
	}

	svg := export.TrajectorySVG(points, 800, 600, "#00ff88")
	if svg == "" {
		return fmt.Errorf("run %s has too few samples to render", args[0])
	}
	fmt.Println(svg)
	return nil
}
