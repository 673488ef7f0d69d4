package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rampsim/internal/analysis"
	"github.com/san-kum/rampsim/internal/config"
	"github.com/san-kum/rampsim/internal/control"
	"github.com/san-kum/rampsim/internal/engine"
	_ "github.com/san-kum/rampsim/internal/engine/box2d"
	_ "github.com/san-kum/rampsim/internal/engine/chipmunk"
	"github.com/san-kum/rampsim/internal/export"
	"github.com/san-kum/rampsim/internal/geom"
	"github.com/san-kum/rampsim/internal/gui"
	"github.com/san-kum/rampsim/internal/logging"
	"github.com/san-kum/rampsim/internal/metrics"
	"github.com/san-kum/rampsim/internal/optim"
	"github.com/san-kum/rampsim/internal/render"
	"github.com/san-kum/rampsim/internal/sim"
	"github.com/san-kum/rampsim/internal/storage"
	"github.com/san-kum/rampsim/internal/stream"
	"github.com/san-kum/rampsim/internal/terrain"
	"github.com/san-kum/rampsim/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir    string
	configFile string
	preset     string
	engineName string
	logLevel   string
	logFile    string

	scriptFile string
	duration   float64
	frameDt    float64
	outFile    string
	format     string
	addr       string
	parallel   int

	baseSpeeds []float64
	brakeGains []float64
	metricName string
	minimize   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "rampsim",
		Short:         "2D car on an editable ramp",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runMenu,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".rampsim", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&engineName, "engine", "", "physics engine ("+strings.Join(engine.Names(), ", ")+")")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "log destination (default stderr; data dir for interactive views)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "drive in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "drive in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scripted drive headless and store the trace",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run (json, csv or svg path)",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "json, csv or svg")
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	terrainCmd := &cobra.Command{
		Use:   "terrain [3a.dx 3a.dy 3b.dx 3b.dy 3c.dx 3c.dy]",
		Short: "show the terrain, optionally after an edit in cm",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != terrain.FieldCount {
				return fmt.Errorf("want 0 or %d values, got %d", terrain.FieldCount, len(args))
			}
			return nil
		},
		RunE: showTerrain,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render the scene after a scripted drive to SVG",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	addRunFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "snapshot.svg", "output file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream live simulations over websockets",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	batchCmd := &cobra.Command{
		Use:   "batch [preset...]",
		Short: "run the script on several presets concurrently",
		RunE:  batch,
	}
	addRunFlags(batchCmd)
	batchCmd.Flags().IntVar(&parallel, "parallel", 4, "runs in flight")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "pitch and speed spectrum of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search the motor gains",
		Args:  cobra.NoArgs,
		RunE:  tune,
	}
	addRunFlags(tuneCmd)
	tuneCmd.Flags().Float64SliceVar(&baseSpeeds, "base-speed", []float64{8, 12, 16}, "base motor speeds to try (rad/s)")
	tuneCmd.Flags().Float64SliceVar(&brakeGains, "brake-gain", []float64{1, 2, 4}, "brake gains to try")
	tuneCmd.Flags().StringVar(&metricName, "metric", "distance", "metric to optimize")
	tuneCmd.Flags().BoolVar(&minimize, "minimize", false, "minimize instead of maximize")
	tuneCmd.Flags().IntVar(&parallel, "parallel", 4, "runs in flight")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(tuiCmd, guiCmd, runCmd, listCmd, plotCmd, exportCmd,
		terrainCmd, snapshotCmd, serveCmd, batchCmd, analyzeCmd, tuneCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&scriptFile, "script", "", "key script (yaml); default drives, brakes and reverses")
	cmd.Flags().Float64Var(&duration, "time", 0, "duration in seconds (default from config)")
	cmd.Flags().Float64Var(&frameDt, "frame-dt", 0, "frame interval in seconds (default from config)")
}

// loadConfig resolves --config, then --preset, then the defaults, and
// applies --engine on top.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (have %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	default:
		cfg = config.DefaultConfig()
	}
	if engineName != "" {
		cfg.Engine = engineName
	}
	if duration > 0 {
		cfg.Duration = duration
	}
	if frameDt > 0 {
		cfg.FrameDt = frameDt
	}
	return cfg, cfg.Validate()
}

// newLogger logs to stderr unless interactive, where a file under the data
// directory keeps the terminal clean.
func newLogger(cfg *config.Config, interactive bool) (*zap.Logger, error) {
	opts := logging.Options{Level: cfg.LogLevel, Encoding: "console", Output: logFile}
	if logLevel != "" {
		opts.Level = logLevel
	}
	if interactive && opts.Output == "" {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, err
		}
		opts.Output = filepath.Join(dataDir, "rampsim.log")
		opts.Encoding = "json"
	}
	return logging.New(opts)
}

func openContext(cfg *config.Config, log *zap.Logger, scale float64) (*sim.Context, error) {
	w, err := engine.Open(cfg.Engine, cfg.GravityVec())
	if err != nil {
		return nil, err
	}
	opts := sim.OptionsFromConfig(cfg)
	opts.Logger = log
	if scale > 0 {
		opts.Camera.Scale = scale
	}
	return sim.NewContext(opts, w)
}

func loadScript() (control.Script, error) {
	if scriptFile == "" {
		return control.DefaultScript(), nil
	}
	s, err := control.LoadScript(scriptFile)
	if err != nil {
		return control.Script{}, err
	}
	return *s, nil
}

func defaultMetrics(c *sim.Context, cfg *config.Config) []sim.Metric {
	verts := c.Terrain.Vertices()
	ground := func(x float64) float64 { return terrain.HeightAt(verts, x) }
	return metrics.Default(ground, cfg.Vehicle.WheelR, cfg.Gravity)
}

func runMenu(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer log.Sync()

	launch := func(name string) (*sim.Context, error) {
		pc := config.GetPreset(name)
		if pc == nil {
			return nil, fmt.Errorf("unknown preset %q", name)
		}
		if engineName != "" {
			pc.Engine = engineName
		}
		return openContext(pc, log.With(zap.String("preset", name)), viz.TerminalScale)
	}
	return viz.RunInteractive(config.ListPresets(), launch)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer log.Sync()

	c, err := openContext(cfg, log, viz.TerminalScale)
	if err != nil {
		return err
	}
	return viz.Run(c)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	c, err := openContext(cfg, log, 0)
	if err != nil {
		return err
	}
	return gui.Run(c, log)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	script, err := loadScript()
	if err != nil {
		return err
	}
	c, err := openContext(cfg, log, 0)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, err := sim.RunScript(ctx, c, script, cfg.Duration, cfg.FrameDt, defaultMetrics(c, cfg)...)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.RunMetadata{
		Script:      script.Name,
		Preset:      preset,
		Engine:      cfg.Engine,
		FrameDt:     cfg.FrameDt,
		Duration:    cfg.Duration,
		Fingerprint: terrain.Fingerprint(c.Terrain.Vertices()),
	}, res)
	if err != nil {
		return err
	}
	log.Info("run stored", zap.String("id", id), zap.Int("steps", res.Steps))

	fmt.Printf("run: %s\n", id)
	fmt.Printf("frames: %d  steps: %d\n\n", len(res.Frames), res.Steps)
	return printMetrics(res.Metrics)
}

func printMetrics(m map[string]float64) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range sortedKeys(m) {
		fmt.Fprintf(w, "%s\t%.4f\n", name, m[name])
	}
	return w.Flush()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
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
	fmt.Fprintln(w, "ID\tSCRIPT\tPRESET\tENGINE\tTIME\tDURATION\tDISTANCE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2fs\t%.2fm\n",
			run.ID,
			run.Script,
			run.Preset,
			run.Engine,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Metrics["distance"],
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
	frames, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("script: %s  engine: %s\n", meta.Script, meta.Engine)
	fmt.Printf("samples: %d\n\n", len(frames))

	series := []struct {
		caption string
		value   func(sim.Frame) float64
	}{
		{"chassis x (m)", func(f sim.Frame) float64 { return f.Chassis.X }},
		{"speed (m/s)", sim.Frame.Speed},
		{"pitch (rad)", func(f sim.Frame) float64 { return f.Chassis.Angle }},
		{"rear motor speed (rad/s)", func(f sim.Frame) float64 { return f.Rear.MotorSpeed }},
	}
	for _, s := range series {
		data := make([]float64, len(frames))
		for i, f := range frames {
			data[i] = s.value(f)
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		))
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "json":
		return storage.ExportJSON(out, *meta, frames)
	case "csv":
		return storage.WriteTrace(out, frames)
	case "svg":
		path := make([]geom.Vec2, len(frames))
		for i, f := range frames {
			path[i] = geom.V(f.Chassis.X, f.Chassis.Y)
		}
		_, err := fmt.Fprintln(out, export.TrajectoryToSVG(path, 800, 300, "#1ecf7c"))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func showTerrain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p := cfg.Terrain
	if len(args) == terrain.FieldCount {
		var fields [terrain.FieldCount]string
		copy(fields[:], args)
		vals, err := terrain.ParseFields(fields)
		if err != nil {
			return err
		}
		p = p.WithValues(vals)
	}

	verts := terrain.Build(p)
	for _, line := range terrain.PanelLines(verts) {
		fmt.Println(line)
	}
	if a, b, ok := terrain.Endpoints(verts); ok {
		fmt.Printf("A=(%s, %s) cm  B=(%s, %s) cm\n", a.X, a.Y, b.X, b.Y)
	}
	fmt.Printf("fingerprint: %016x\n", terrain.Fingerprint(verts))
	return nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	script, err := loadScript()
	if err != nil {
		return err
	}
	c, err := openContext(cfg, log, 0)
	if err != nil {
		return err
	}
	if _, err := sim.RunScript(cmd.Context(), c, script, cfg.Duration, cfg.FrameDt); err != nil {
		return err
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.Snapshot(f, render.New(), c.Scene()); err != nil {
		return err
	}
	fmt.Printf("wrote %s at t=%.2fs\n", outFile, c.Time())
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	srv := stream.NewServer(func() (*sim.Context, error) {
		return openContext(cfg, log, 0)
	}, log)
	srv.Interval = secondsToDuration(cfg.FrameDt)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return srv.ListenAndServe(ctx, addr)
}

func batch(cmd *cobra.Command, args []string) error {
	base, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(base, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	script, err := loadScript()
	if err != nil {
		return err
	}
	names := args
	if len(names) == 0 {
		names = config.ListPresets()
	}

	cfgs := make(map[string]*config.Config, len(names))
	jobs := make([]sim.Job, 0, len(names))
	for _, name := range names {
		cfg := config.GetPreset(name)
		if cfg == nil {
			return fmt.Errorf("unknown preset %q", name)
		}
		if engineName != "" {
			cfg.Engine = engineName
		}
		cfg.FrameDt = base.FrameDt
		if duration > 0 {
			cfg.Duration = duration
		}
		cfgs[name] = cfg

		opts := sim.OptionsFromConfig(cfg)
		opts.Logger = log.With(zap.String("preset", name))
		verts := terrain.Build(cfg.Terrain)
		wheelR, gravity := cfg.Vehicle.WheelR, cfg.Gravity
		jobs = append(jobs, sim.Job{
			Name:     name,
			Options:  opts,
			Script:   script,
			Duration: cfg.Duration,
			FrameDt:  cfg.FrameDt,
			Metrics: func() []sim.Metric {
				ground := func(x float64) float64 { return terrain.HeightAt(verts, x) }
				return metrics.Default(ground, wheelR, gravity)
			},
		})
	}

	open := func(job sim.Job) (engine.World, error) {
		cfg := cfgs[job.Name]
		return engine.Open(cfg.Engine, cfg.GravityVec())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	results, err := sim.Batch(ctx, open, jobs, parallel)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSTEPS\tDISTANCE\tMAX SPEED\tMAX PITCH\tAIRTIME")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\t%.3f\t%.2f\n",
			r.Script, r.Steps, r.Metrics["distance"], r.Metrics["max_speed"],
			r.Metrics["max_pitch"], r.Metrics["airtime"])
	}
	for _, r := range results {
		log.Debug("batch result", zap.String("preset", r.Script), zap.Any("metrics", r.Metrics))
	}
	return w.Flush()
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	pitch := make([]float64, len(frames))
	speed := make([]float64, len(frames))
	for i, f := range frames {
		pitch[i] = f.Chassis.Angle
		speed[i] = f.Speed()
	}

	fmt.Printf("run: %s  frame dt: %.4fs\n\n", meta.ID, meta.FrameDt)
	freqs, amps, err := analysis.Spectrum(pitch, meta.FrameDt)
	if err != nil {
		return err
	}
	fmt.Println(asciigraph.Plot(amps,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("pitch spectrum, 0-%.1f Hz", freqs[len(freqs)-1])),
	))
	fmt.Println()

	hz, amp := analysis.Dominant(pitch, meta.FrameDt)
	fmt.Printf("pitch: dominant %.2f Hz, amplitude %.4f rad\n", hz, amp)
	hz, amp = analysis.Dominant(speed, meta.FrameDt)
	fmt.Printf("speed: dominant %.2f Hz, amplitude %.4f m/s\n", hz, amp)
	return nil
}

func tune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	script, err := loadScript()
	if err != nil {
		return err
	}

	verts := terrain.Build(cfg.Terrain)
	build := func(params map[string]float64) (sim.Job, error) {
		opts := sim.OptionsFromConfig(cfg)
		opts.Logger = log
		opts.Gains = optim.ApplyGains(opts.Gains, params)
		return sim.Job{
			Name:     fmt.Sprintf("base=%g brake=%g", opts.Gains.BaseSpeed, opts.Gains.BrakeGain),
			Options:  opts,
			Script:   script,
			Duration: cfg.Duration,
			FrameDt:  cfg.FrameDt,
			Metrics: func() []sim.Metric {
				ground := func(x float64) float64 { return terrain.HeightAt(verts, x) }
				return metrics.Default(ground, cfg.Vehicle.WheelR, cfg.Gravity)
			},
		}, nil
	}
	open := func(sim.Job) (engine.World, error) {
		return engine.Open(cfg.Engine, cfg.GravityVec())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	g := optim.NewGridSearch([]string{"base_speed", "brake_gain"}, [][]float64{baseSpeeds, brakeGains})
	best, err := g.Search(ctx, open, build, metricName, !minimize, parallel)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "BASE SPEED\tBRAKE GAIN\t%s\n", strings.ToUpper(metricName))
	for _, t := range best.Trials {
		fmt.Fprintf(w, "%g\t%g\t%.4f\n", t.Params["base_speed"], t.Params["brake_gain"], t.Metrics[metricName])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nbest: base_speed=%g brake_gain=%g %s=%.4f\n",
		best.Params["base_speed"], best.Params["brake_gain"], metricName, best.Value)
	return nil
}
