package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ropestate/internal/analyzer"
	"github.com/san-kum/ropestate/internal/config"
	"github.com/san-kum/ropestate/internal/dataset"
	"github.com/san-kum/ropestate/internal/logging"
	"github.com/san-kum/ropestate/internal/metrics"
	"github.com/san-kum/ropestate/internal/storage"
	"github.com/san-kum/ropestate/internal/viz"
	"github.com/spf13/cobra"
)

var (
	csvDir      string
	outDir      string
	fps         int
	particles   int
	dpi         int
	imageFormat string
	ffmpegPath  string
	workers     int
	configFile  string
	preset      string
	preview     bool
	logLevel    string
)

// main registers the commands and runs the root command, which analyzes
// every simulation file when no subcommand is given. It exits with status 1
// on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "ropestate [dir]",
		Short:        "rope simulation analysis",
		Args:         cobra.MaximumNArgs(1),
		RunE:         analyzeAll,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&csvDir, "dir", ".", "directory holding *simulation.csv files")
	pf.StringVar(&outDir, "out", "", "output directory (default <dir>/result)")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "video frame rate")
	pf.IntVar(&particles, "particles", config.DefaultParticles, "particles per file (0 = from file)")
	pf.IntVar(&dpi, "dpi", config.DefaultDPI, "image resolution")
	pf.StringVar(&imageFormat, "format", config.DefaultImageFormat, "image format (png, svg)")
	pf.StringVar(&ffmpegPath, "ffmpeg", config.DefaultFFmpeg, "ffmpeg binary")
	pf.IntVar(&workers, "workers", 1, "frames rendered concurrently")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "render preset")
	pf.BoolVar(&preview, "preview", false, "print a terminal chart of each length series")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (error, warn, info, debug, trace)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [dir]",
		Short: "analyze every simulation file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeAll,
	}

	trajectoriesCmd := &cobra.Command{
		Use:   "trajectories [file]",
		Short: "plot particle trajectories of one file",
		Args:  cobra.ExactArgs(1),
		RunE: withAnalyzer(func(ctx context.Context, a *analyzer.Analyzer, args []string) error {
			_, err := a.PlotTrajectories(args[0])
			return err
		}),
	}

	combinedCmd := &cobra.Command{
		Use:   "combined",
		Short: "plot trajectories of all files together",
		Args:  cobra.NoArgs,
		RunE: withAnalyzer(func(ctx context.Context, a *analyzer.Analyzer, args []string) error {
			_, err := a.PlotAllTrajectoriesCombined()
			return err
		}),
	}

	animateCmd := &cobra.Command{
		Use:   "animate [file]",
		Short: "render the 3D rope animation of one file",
		Args:  cobra.ExactArgs(1),
		RunE: withAnalyzer(func(ctx context.Context, a *analyzer.Analyzer, args []string) error {
			_, err := a.Create3DRopeVisualization(ctx, args[0])
			return err
		}),
	}

	lengthCmd := &cobra.Command{
		Use:   "length [file]",
		Short: "analyze the rope length of one file",
		Args:  cobra.ExactArgs(1),
		RunE: withAnalyzer(func(ctx context.Context, a *analyzer.Analyzer, args []string) error {
			_, err := a.AnalyzeRopeProperties(args[0])
			return err
		}),
	}

	reportCmd := &cobra.Command{
		Use:   "report [file]",
		Short: "run every analysis on one file",
		Args:  cobra.ExactArgs(1),
		RunE: withAnalyzer(func(ctx context.Context, a *analyzer.Analyzer, args []string) error {
			return a.CreateComprehensiveAnalysis(ctx, args[0])
		}),
	}

	filesCmd := &cobra.Command{
		Use:   "files",
		Short: "list simulation files",
		Args:  cobra.NoArgs,
		RunE:  listFiles,
	}

	summariesCmd := &cobra.Command{
		Use:   "summaries",
		Short: "list saved length summaries",
		Args:  cobra.NoArgs,
		RunE:  listSummaries,
	}

	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "export a saved summary as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSummary,
	}

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [file]",
		Short: "frequency analysis of a saved length series",
		Args:  cobra.ExactArgs(1),
		RunE:  spectrum,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list render presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFPS\tDPI\tVIDEO DPI\tFORMAT")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", name, p.FPS, p.DPI, p.VideoDPI, p.ImageFormat)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(analyzeCmd, trajectoriesCmd, combinedCmd, animateCmd, lengthCmd, reportCmd,
		filesCmd, summariesCmd, exportCmd, spectrumCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges defaults, the preset, the config file and the flags
// set on the command line, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		p.Apply(cfg)
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.CSVDir = csvDir
	}
	if flags.Changed("out") {
		cfg.OutputDir = outDir
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("particles") {
		cfg.Particles = particles
	}
	if flags.Changed("dpi") {
		cfg.DPI = dpi
	}
	if flags.Changed("format") {
		cfg.ImageFormat = strings.ToLower(imageFormat)
	}
	if flags.Changed("ffmpeg") {
		cfg.FFmpeg = ffmpegPath
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("preview") {
		cfg.Preview = preview
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.LogLevel, os.Stderr)
}

func newAnalyzer(cmd *cobra.Command) (*analyzer.Analyzer, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return analyzer.New(cfg, analyzer.WithLogger(newLogger(cfg)))
}

// withAnalyzer builds an analyzer from the merged config and runs fn with
// a context cancelled on SIGINT or SIGTERM.
func withAnalyzer(fn func(ctx context.Context, a *analyzer.Analyzer, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newAnalyzer(cmd)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return fn(ctx, a, args)
	}
}

func analyzeAll(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		if err := cmd.Flags().Set("dir", args[0]); err != nil {
			return err
		}
	}

	a, err := newAnalyzer(cmd)
	if err != nil {
		return err
	}
	if len(a.Files()) == 0 {
		fmt.Println("No simulation files found! Please run the simulation first.")
		fmt.Printf("Looking for files ending with '%s'\n", dataset.Suffix)
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := a.AnalyzeAllSimulations(ctx)
	if err != nil {
		return err
	}

	fmt.Println(viz.Banner("ANALYSIS COMPLETE!", 80))
	fmt.Println("Generated files:")
	fmt.Println("  - *_trajectories.*: Particle trajectory plots")
	fmt.Println("  - *_3d_visualization.mp4: 3D rope animation videos")
	fmt.Println("  - *_length_analysis.*: Rope length analysis")
	fmt.Printf("Processed %d of %d file(s) into %s\n", len(report.Processed), len(a.Files()), a.SaveDir())
	fmt.Println(strings.Repeat("=", 80))

	return report.Err()
}

func listFiles(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	files, err := dataset.Discover(cfg.CSVDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("no simulation files found")
		return nil
	}
	for _, f := range files {
		fmt.Println(filepath.Base(f))
	}
	return nil
}

func listSummaries(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.ResultDir())
	summaries, err := st.List()
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Println("no summaries found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSTEPS\tPARTICLES\tMEAN\tSTD\tDRIFT\tLENGTH")

	for _, s := range summaries {
		spark := ""
		if lengths, err := st.LoadLengths(s.ID); err == nil {
			spark = viz.SparklineChart(lengths, 24)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.3f\t%.3f\t%.2e\t%s\n",
			s.ID,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Steps,
			s.Particles,
			s.MeanLength,
			s.StdLength,
			s.MaxDrift,
			spark,
		)
	}

	return w.Flush()
}

func exportSummary(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.ResultDir())
	return st.ExportJSON(os.Stdout, dataset.Stem(filepath.Base(args[0])))
}

func spectrum(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.ResultDir())
	id := dataset.Stem(filepath.Base(args[0]))

	lengths, err := st.LoadLengths(id)
	if err != nil {
		return err
	}
	ps, err := metrics.PowerSpectrum(lengths)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", id)
	fmt.Printf("samples: %d\n\n", len(lengths))

	// the low quarter holds the rope's stretch modes
	plotData := ps[:min(max(len(ps)/4, 2), len(ps))]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (rope length)"),
	)
	fmt.Println(graph)
	fmt.Println()

	if period, ok := metrics.DominantPeriod(lengths); ok {
		fmt.Printf("dominant period: %.1f steps (%.2f s at %d fps)\n", period, period/float64(cfg.FPS), cfg.FPS)
	} else {
		fmt.Println("no dominant oscillation")
	}
	return nil
}
