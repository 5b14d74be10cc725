package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/galaxy/internal/analysis"
	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/export"
	"github.com/san-kum/galaxy/internal/galaxy"
	"github.com/san-kum/galaxy/internal/logger"
	"github.com/san-kum/galaxy/internal/storage"
	"github.com/san-kum/galaxy/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	logLevel   string
	logJSON    bool
	logFile    string
	theme      string
	maxPoints  int

	count           int
	size            float64
	radius          float64
	branches        int
	spin            float64
	randomness      float64
	randomnessPower float64
	insideColor     string
	outsideColor    string

	saveRun    bool
	runs       int
	width      int
	height     int
	svgSize    int
	output     string
	showColor  bool
	densityMap bool

	log       *slog.Logger
	logCloser io.Closer
)

// main registers the commands and runs the interactive explorer when no
// subcommand is given. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:               "galaxy",
		Short:             "spiral galaxy point-cloud generator",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
		RunE: runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.BoolVar(&logJSON, "log-json", false, "log as JSON")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.IntVar(&maxPoints, "max-points", config.DefaultMaxPoints, "largest galaxy to allocate (0 for no cap)")

	rootCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	rootCmd.Flags().StringVar(&theme, "theme", "", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "generate a galaxy and print its summary",
		RunE:  runGenerate,
	}
	addGalaxyFlags(generateCmd)
	generateCmd.Flags().BoolVar(&saveRun, "save", false, "save the galaxy to the data directory")
	generateCmd.Flags().IntVar(&runs, "runs", 1, "generate this many galaxies on consecutive seeds")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "print a one-shot snapshot of a galaxy",
		RunE:  runRender,
	}
	addGalaxyFlags(renderCmd)
	renderCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "columns")
	renderCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "rows")
	renderCmd.Flags().BoolVar(&showColor, "color", true, "colored output")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved galaxies",
		RunE:  listRuns,
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect [run_id]",
		Short: "shape statistics for a saved galaxy",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectRun,
	}
	inspectCmd.Flags().BoolVar(&densityMap, "map", false, "also print a top-down density map")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a saved galaxy as a top-down SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 800, "image size in pixels")
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved galaxy as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved galaxy as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark generation",
		RunE:  benchGenerate,
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(generateCmd, renderCmd, listCmd, inspectCmd,
		exportSVGCmd, exportJSONCmd, exportCSVCmd, presetsCmd, benchCmd, initConfigCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func addGalaxyFlags(cmd *cobra.Command) {
	def := galaxy.DefaultParameters()
	f := cmd.Flags()
	f.StringVar(&preset, "preset", "", "start from a preset")
	f.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	f.IntVar(&count, "count", def.Count, "number of points")
	f.Float64Var(&size, "size", def.PointSize, "point size")
	f.Float64Var(&radius, "radius", def.Radius, "galaxy radius")
	f.IntVar(&branches, "branches", def.Branches, "number of arms")
	f.Float64Var(&spin, "spin", def.Spin, "arm twist per unit radius")
	f.Float64Var(&randomness, "randomness", def.Randomness, "jitter scale")
	f.Float64Var(&randomnessPower, "randomness-power", def.RandomnessPower, "jitter concentration exponent")
	f.StringVar(&insideColor, "inside-color", def.InsideColor.Hex(), "core color")
	f.StringVar(&outsideColor, "outside-color", def.OutsideColor.Hex(), "rim color")
}

// setupLogging builds the logger. The interactive view owns the terminal,
// so without --log-file its logs are dropped.
func setupLogging(cmd *cobra.Command, args []string) error {
	opts := logger.Options{Level: logLevel, JSON: logJSON, File: logFile}
	if configFile != "" {
		if cfg, err := config.Load(configFile); err == nil {
			if !cmd.Flags().Changed("log-level") && cfg.Log.Level != "" {
				opts.Level = cfg.Log.Level
			}
			if !cmd.Flags().Changed("log-json") {
				opts.JSON = cfg.Log.JSON
			}
			if !cmd.Flags().Changed("log-file") && cfg.Log.File != "" {
				opts.File = cfg.Log.File
			}
		}
	}
	if cmd == cmd.Root() && opts.File == "" {
		log = logger.Discard()
		return nil
	}
	closer, err := logger.Init(opts)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	logCloser = closer
	log = slog.Default()
	return nil
}

// resolve merges config file, preset and flags, in increasing priority.
func resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Galaxy = *p
	}

	flags := cmd.Flags()
	if flags.Lookup("count") != nil {
		if flags.Changed("count") {
			cfg.Galaxy.Count = count
		}
		if flags.Changed("size") {
			cfg.Galaxy.Size = size
		}
		if flags.Changed("radius") {
			cfg.Galaxy.Radius = radius
		}
		if flags.Changed("branches") {
			cfg.Galaxy.Branches = branches
		}
		if flags.Changed("spin") {
			cfg.Galaxy.Spin = spin
		}
		if flags.Changed("randomness") {
			cfg.Galaxy.Randomness = randomness
		}
		if flags.Changed("randomness-power") {
			cfg.Galaxy.RandomnessPower = randomnessPower
		}
		if flags.Changed("inside-color") {
			cfg.Galaxy.InsideColor = insideColor
		}
		if flags.Changed("outside-color") {
			cfg.Galaxy.OutsideColor = outsideColor
		}
	}

	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = galaxy.TimeSeed()
	}
	if flags.Changed("max-points") {
		if maxPoints < 0 {
			return nil, fmt.Errorf("--max-points must not be negative, got %d", maxPoints)
		}
		cfg.MaxPoints = maxPoints
	}
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

// build resolves the configuration and runs one generation.
func build(cmd *cobra.Command) (*config.Config, *galaxy.Generator, *galaxy.Buffers, error) {
	cfg, err := resolve(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	params, err := cfg.Galaxy.Parameters()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid parameters: %w", err)
	}
	surface := viz.NewSurface()
	gen := galaxy.NewGenerator(surface,
		galaxy.WithSource(galaxy.NewSource(cfg.Seed)),
		galaxy.WithLogger(log),
		galaxy.WithMaxPoints(cfg.MaxPoints),
	)
	b, err := gen.Generate(params)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("generation failed: %w", err)
	}
	return cfg, gen, b, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd)
	if err != nil {
		return err
	}

	opts := viz.Options{
		Seed:      cfg.Seed,
		MaxPoints: cfg.MaxPoints,
		Render:    cfg.Render,
		Store:     storage.New(cfg.DataDir),
		Logger:    log,
		Theme:     theme,
	}
	if configFile != "" || preset != "" {
		params, err := cfg.Galaxy.Parameters()
		if err != nil {
			return fmt.Errorf("invalid parameters: %w", err)
		}
		opts.Params = &params
	}
	return viz.RunInteractive(opts)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if runs > 1 {
		return runEnsemble(cmd)
	}

	start := time.Now()
	cfg, _, b, err := build(cmd)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "points\t%d\n", b.Len())
	fmt.Fprintf(w, "branches\t%d\n", b.Params.Branches)
	fmt.Fprintf(w, "radius\t%.2f\n", b.Params.Radius)
	fmt.Fprintf(w, "colors\t%s → %s\n", b.Params.InsideColor.Hex(), b.Params.OutsideColor.Hex())
	fmt.Fprintf(w, "seed\t%d\n", cfg.Seed)
	fmt.Fprintf(w, "time\t%v\n", elapsed)
	if err := w.Flush(); err != nil {
		return err
	}

	if !saveRun {
		return nil
	}
	return saveAll(cfg.DataDir, []*galaxy.Buffers{b}, func(int) int64 { return cfg.Seed })
}

func runEnsemble(cmd *cobra.Command) error {
	cfg, err := resolve(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.Galaxy.Parameters()
	if err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}

	ens := galaxy.NewEnsemble(runs, cfg.Seed, log, galaxy.WithMaxPoints(cfg.MaxPoints))
	start := time.Now()
	results, err := ens.Run(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSEED\tPOINTS\tMEAN |Y|\tEXTENT")
	for i, b := range results {
		s := analysis.Measure(b)
		fmt.Fprintf(w, "%d\t%d\t%d\t%.4f\t%.3f\n", i, ens.Seed(i), s.Points, s.MeanAbsY, s.Extent)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d galaxies in %v\n", len(results), elapsed)

	if !saveRun {
		return nil
	}
	return saveAll(cfg.DataDir, results, ens.Seed)
}

func saveAll(dir string, results []*galaxy.Buffers, seedOf func(int) int64) error {
	st := storage.New(dir)
	if err := st.Init(); err != nil {
		return err
	}
	for i, b := range results {
		id, err := st.Save(b, seedOf(i))
		if err != nil {
			return fmt.Errorf("failed to save: %w", err)
		}
		log.Info("saved galaxy", "id", id, "points", b.Len())
		fmt.Printf("saved: %s\n", id)
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, gen, b, err := build(cmd)
	if err != nil {
		return err
	}
	surface := gen.Surface().(*viz.Surface)
	surface.Camera.RotX = cfg.Render.Tilt
	surface.Camera.Extent = b.Params.Radius * 1.15

	canvas := surface.Snapshot(width, height)
	if showColor {
		fmt.Print(canvas.Render())
	} else {
		fmt.Print(canvas.String())
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
		fmt.Println("no galaxies found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPOINTS\tARMS\tRADIUS\tSPIN\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2f\t%.2f\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Count,
			run.Params.Branches,
			run.Params.Radius,
			run.Params.Spin,
			run.Seed,
		)
	}
	return w.Flush()
}

func loadRun(id string) (*storage.RunMetadata, *galaxy.Buffers, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", id, err)
	}
	b, err := st.LoadPoints(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load points for %s: %w", id, err)
	}
	return meta, b, nil
}

func inspectRun(cmd *cobra.Command, args []string) error {
	meta, b, err := loadRun(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s (seed %d, %s)\n\n", meta.ID, meta.Seed, meta.Timestamp.Format(time.RFC3339))
	fmt.Print(analysis.Report(b))
	if densityMap {
		fmt.Println()
		fmt.Print(analysis.DensityMap(b, 60, 30))
	}
	return nil
}

// openOutput returns stdout when no --output path was given.
func openOutput() (io.WriteCloser, error) {
	if output == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(output)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func exportSVG(cmd *cobra.Command, args []string) error {
	_, b, err := loadRun(args[0])
	if err != nil {
		return err
	}
	out, err := openOutput()
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.WriteString(out, export.BuffersToSVG(b, svgSize))
	return err
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, b, err := loadRun(args[0])
	if err != nil {
		return err
	}
	out, err := openOutput()
	if err != nil {
		return err
	}
	defer out.Close()
	return export.WriteJSON(out, meta.ID, meta.Seed, b)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, b, err := loadRun(args[0])
	if err != nil {
		return err
	}
	out, err := openOutput()
	if err != nil {
		return err
	}
	defer out.Close()
	return storage.WritePoints(out, b)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPOINTS\tARMS\tRADIUS\tSPIN\tRANDOMNESS\tPOWER\tCOLORS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%s %s\n",
			name, p.Count, p.Branches, p.Radius, p.Spin, p.Randomness, p.RandomnessPower,
			p.InsideColor, p.OutsideColor)
	}
	return w.Flush()
}

func benchGenerate(cmd *cobra.Command, args []string) error {
	counts := []int{1000, 10000, 100000, 1000000}
	armCounts := []int{3, 7}

	fmt.Println("benchmarking generation")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POINTS\tARMS\tTIME\tPOINTS/SEC")

	gen := galaxy.NewGenerator(nil, galaxy.WithSource(galaxy.NewSource(42)), galaxy.WithLogger(log))
	for _, n := range counts {
		for _, arms := range armCounts {
			p := galaxy.DefaultParameters()
			p.Count = n
			p.Branches = arms

			start := time.Now()
			if _, err := gen.Generate(p); err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", n, arms, elapsed, float64(n)/elapsed.Seconds())
		}
	}
	gen.Surface().Detach()
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(args[0]); err == nil {
		return fmt.Errorf("%s already exists", args[0])
	}
	if err := config.Save(args[0], config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
