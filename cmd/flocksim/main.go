package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/flocksim/internal/automation"
	"github.com/san-kum/flocksim/internal/config"
	"github.com/san-kum/flocksim/internal/experiment"
	"github.com/san-kum/flocksim/internal/export"
	"github.com/san-kum/flocksim/internal/logging"
	"github.com/san-kum/flocksim/internal/metrics"
	"github.com/san-kum/flocksim/internal/optim"
	"github.com/san-kum/flocksim/internal/sim"
	"github.com/san-kum/flocksim/internal/viz"
)

// Headless runs have no terminal to size against, so the arena is derived
// from a nominal surface unless --width/--height are given.
const (
	headlessCols = 100
	headlessRows = 30
	svgScale     = 10
	seriesWidth  = 800
	seriesHeight = 300
	seriesColor  = "#00ffff"
)

var (
	configFile string
	preset     string
	seed       int64
	agents     int
	width      float64
	height     float64
	theme      string
	logLevel   string
	logFile    string

	ticks       int
	runs        int
	metricNames []string
	csvPath     string
	svgPath     string
	jsonPath    string
	plot        bool
	scriptPath  string
	seriesDir   string
	showFrame   bool

	sweepParams []string
	sweepMetric string
	minimize    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "flocksim",
		Short:         "terminal flocking simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.IntVar(&agents, "agents", 0, "agents spawned at start")
	pf.Float64Var(&width, "width", 0, "arena width (0 = derive)")
	pf.Float64Var(&height, "height", 0, "arena height (0 = derive)")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level: info, debug, trace")
	pf.StringVar(&logFile, "log-file", "", "log file path")
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme: "+strings.Join(viz.ThemeNames(), ", "))

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the simulation headlessly and report metrics",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", config.DefaultRunTicks, "ticks to simulate")
	runCmd.Flags().IntVar(&runs, "runs", 1, "independent runs with consecutive seeds")
	runCmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to record (default all)")
	runCmd.Flags().StringVar(&csvPath, "csv", "", "write the per-tick metric trace to a CSV file")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame to an SVG file")
	runCmd.Flags().StringVar(&seriesDir, "series-svg", "", "write one SVG plot per metric series into a directory")
	runCmd.Flags().StringVar(&jsonPath, "json", "", "write a JSON summary to a file (- for stdout)")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot each metric series")
	runCmd.Flags().BoolVar(&showFrame, "frame", false, "print the final frame as text")
	runCmd.Flags().StringVar(&scriptPath, "script", "", "replay a YAML scenario of timed commands")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search config parameters for the best metric value",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "parameter range, e.g. agents=10,20,40 (repeatable)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", metrics.NamePolarization, "metric to optimize")
	sweepCmd.Flags().BoolVar(&minimize, "minimize", false, "minimize the metric instead of maximizing")
	sweepCmd.Flags().IntVar(&ticks, "ticks", config.DefaultRunTicks, "ticks per trial")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	metricsCmd := &cobra.Command{
		Use:   "metrics",
		Short: "list available metrics",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range experiment.NewRegistry().ListMetrics() {
				fmt.Println(name)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file (the default, or --preset)",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, sweepCmd, presetsCmd, metricsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers the configuration: defaults, then --preset, then
// --config, then any flag set explicitly on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadInto(cfg, configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("agents") {
		cfg.Agents = agents
	}
	if flags.Changed("width") {
		cfg.Arena.Width = width
	}
	if flags.Changed("height") {
		cfg.Arena.Height = height
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("ticks") {
		cfg.Run.Ticks = ticks
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Open(cfg.Log.Level, cfg.Log.File, nil)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	return viz.Run(cfg, logger)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Run.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Run.Ticks)
	}

	logger, closeLog, err := logging.Open(cfg.Log.Level, cfg.Log.File, os.Stderr)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	arena, err := cfg.ArenaFor(headlessCols, headlessRows)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg, arena, metricNames...)
	if err != nil {
		return err
	}
	if scriptPath != "" {
		scenario, err := automation.LoadScenario(scriptPath)
		if err != nil {
			return fmt.Errorf("failed to load scenario: %w", err)
		}
		script, err := scenario.Compile()
		if err != nil {
			return fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		if script.LastTick() >= uint64(cfg.Run.Ticks) {
			logger.Warn("scenario extends past the run", "last", script.LastTick(), "ticks", cfg.Run.Ticks)
		}
		logger.Debug("scenario loaded", "name", scenario.Name, "commands", script.Len())
		exp.WithScript(script)
	}

	runSeed := cfg.Seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running",
		"arena", fmt.Sprintf("%vx%v", arena.Width, arena.Height),
		"agents", cfg.Agents,
		"pois", len(cfg.POIs),
		"ticks", cfg.Run.Ticks,
		"runs", runs,
		"seed", runSeed)

	start := time.Now()
	var results []*sim.Result
	if runs > 1 {
		results, err = exp.RunEnsemble(ctx, runSeed, runs)
	} else {
		var r *sim.Result
		r, err = exp.Run(ctx, runSeed, traceTicks(logger))
		if r != nil {
			results = []*sim.Result{r}
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		logger.Warn("interrupted, reporting partial results")
	}
	logger.Info("completed", "wall", time.Since(start).Round(time.Millisecond))

	if err := printSummary(results, runSeed); err != nil {
		return err
	}
	if first := firstResult(results); first != nil {
		if showFrame {
			fmt.Println()
			fmt.Println(viz.Frame(first.Final))
		}
		if plot {
			plotSeries(first)
		}
	}
	return writeOutputs(results, exp.RunConfig(), runSeed)
}

func traceTicks(logger *slog.Logger) sim.Observer {
	return sim.ObserverFunc(func(s sim.Snapshot) {
		logger.Log(context.Background(), logging.LevelTrace, "tick",
			"tick", s.Tick,
			"agents", s.AgentCount,
			"elapsed", s.Elapsed)
	})
}

func printSummary(results []*sim.Result, firstSeed int64) error {
	first := firstResult(results)
	if first == nil {
		fmt.Println("no results")
		return nil
	}

	names := first.MetricNames()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tTICKS\tAGENTS\t"+strings.ToUpper(strings.Join(names, "\t")))
	for i, r := range results {
		if r == nil {
			continue
		}
		fmt.Fprintf(w, "%d\t%d\t%d", firstSeed+int64(i), r.TicksTaken, r.Final.AgentCount)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func plotSeries(r *sim.Result) {
	for _, name := range r.MetricNames() {
		data := r.Series[name]
		if len(data) < 2 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs tick"),
		)
		fmt.Println()
		fmt.Println(graph)
	}
}

// firstResult is the lowest-seed run that produced a result. After an
// interrupt some ensemble runs may be missing.
func firstResult(results []*sim.Result) *sim.Result {
	for _, r := range results {
		if r != nil {
			return r
		}
	}
	return nil
}

func writeOutputs(results []*sim.Result, cfg sim.RunConfig, firstSeed int64) error {
	first := firstResult(results)
	if first == nil {
		return nil
	}

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteCSV(f, first); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		fmt.Printf("trace written to %s\n", csvPath)
	}

	if svgPath != "" {
		svg := export.SnapshotToSVG(first.Final, svgScale)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("final frame written to %s\n", svgPath)
	}

	if seriesDir != "" {
		paths, err := export.WriteSeriesSVGs(seriesDir, first, seriesWidth, seriesHeight, seriesColor)
		if err != nil {
			return fmt.Errorf("write series svg: %w", err)
		}
		fmt.Printf("%d series plots written to %s\n", len(paths), seriesDir)
	}

	if jsonPath != "" {
		summaries := make([]export.Summary, 0, len(results))
		for i, r := range results {
			if r != nil {
				summaries = append(summaries, export.NewSummary(firstSeed+int64(i), cfg, r))
			}
		}
		if jsonPath == "-" {
			return export.WriteJSON(os.Stdout, summaries...)
		}
		f, err := os.Create(jsonPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteJSON(f, summaries...); err != nil {
			return err
		}
		fmt.Printf("summary written to %s\n", jsonPath)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(sweepParams) == 0 {
		return fmt.Errorf("at least one --param is required")
	}
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(sweepParams))
	ranges := make([][]float64, 0, len(sweepParams))
	for _, p := range sweepParams {
		name, values, err := optim.ParseRange(p)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}
	search, err := optim.NewGridSearch(names, ranges, !minimize)
	if err != nil {
		return err
	}

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		cfg, err := optim.ApplyParams(base, params)
		if err != nil {
			return nil, err
		}
		arena, err := cfg.ArenaFor(headlessCols, headlessRows)
		if err != nil {
			return nil, err
		}
		return experiment.New(cfg, arena, sweepMetric)
	}

	runSeed := base.Seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	best, trials, err := search.Search(ctx, build, sweepMetric, runSeed)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(sweepMetric))
	for _, t := range trials {
		for _, name := range names {
			fmt.Fprintf(w, "%g\t", t.Params[name])
		}
		fmt.Fprintf(w, "%.4f\n", t.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest %s = %.4f at", sweepMetric, best.Value)
	for _, k := range optim.SortedKeys(best.Params) {
		fmt.Printf(" %s=%g", k, best.Params[k])
	}
	fmt.Println()
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tAGENTS\tPOIS\tTHEME")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", name, p.Agents, len(p.POIs), p.Theme)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("config written to %s\n", path)
	return nil
}
