// Package analyzer renders diagnostics for a directory of rope simulation
// traces: trajectory plots, a 3D animation and a rope-length analysis per
// file, plus one combined trajectory plot across files.
//
// The Analyzer is a sequential pipeline. Single-file operations return
// their errors; AnalyzeAllSimulations logs a failing file and moves on to
// the next one.
package analyzer

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/san-kum/ropestate/internal/config"
	"github.com/san-kum/ropestate/internal/dataset"
	"github.com/san-kum/ropestate/internal/logging"
	"github.com/san-kum/ropestate/internal/storage"
	"github.com/san-kum/ropestate/internal/video"
	"github.com/san-kum/ropestate/internal/viz"
)

const (
	bannerWidth      = 60
	batchBannerWidth = 80

	CombinedName = "combined_trajectories"
)

type Analyzer struct {
	cfg     config.Config
	saveDir string
	files   []string

	out     io.Writer
	logger  *slog.Logger
	encoder video.Encoder
	store   *storage.Store
}

type Option func(*Analyzer)

// WithOutput sets where report lines are printed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(a *Analyzer) { a.out = w }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithEncoder replaces the ffmpeg video encoder.
func WithEncoder(enc video.Encoder) Option {
	return func(a *Analyzer) { a.encoder = enc }
}

// New validates cfg, creates the result directory and discovers the
// simulation files once. The file list is not refreshed afterwards.
func New(cfg *config.Config, opts ...Option) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Analyzer{
		cfg:     *cfg,
		saveDir: cfg.ResultDir(),
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logging.Discard()
	}
	if a.encoder == nil {
		a.encoder = video.NewFFmpeg(cfg.FFmpeg, a.logger)
	}

	a.store = storage.New(a.saveDir)
	if err := a.store.Init(); err != nil {
		return nil, fmt.Errorf("analyzer: cannot create result directory: %w", err)
	}

	files, err := a.findSimulationFiles()
	if err != nil {
		return nil, err
	}
	a.files = files
	return a, nil
}

func (a *Analyzer) findSimulationFiles() ([]string, error) {
	files, err := dataset.Discover(a.cfg.CSVDir)
	if err != nil {
		return nil, fmt.Errorf("analyzer: discover %s: %w", a.cfg.CSVDir, err)
	}
	fmt.Fprintf(a.out, "Found %d simulation files:\n", len(files))
	for _, f := range files {
		fmt.Fprintf(a.out, "  - %s\n", filepath.Base(f))
	}
	a.logger.Debug("discovered simulation files", "dir", a.cfg.CSVDir, "count", len(files))
	return files, nil
}

// Files returns the simulation files found at construction.
func (a *Analyzer) Files() []string {
	out := make([]string, len(a.files))
	copy(out, a.files)
	return out
}

// SaveDir is the directory every output is written to.
func (a *Analyzer) SaveDir() string { return a.saveDir }

// Store gives access to the saved analysis summaries.
func (a *Analyzer) Store() *storage.Store { return a.store }

func (a *Analyzer) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.cfg.CSVDir, name)
}

func (a *Analyzer) outputPath(name, suffix string) string {
	return filepath.Join(a.saveDir, dataset.Stem(name)+suffix)
}

// LoadSimulationData loads a trace by name, resolved against the CSV
// directory, and prints its step and particle counts.
func (a *Analyzer) LoadSimulationData(name string) (*dataset.Dataset, error) {
	ds, err := dataset.Load(a.resolve(name))
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "Loaded %s:\n", filepath.Base(name))
	fmt.Fprintf(a.out, "  - Steps: %d\n", ds.NumSteps)
	fmt.Fprintf(a.out, "  - Particles: %d\n", ds.NumParticles)
	return ds, nil
}

// ExtractParticlePositions returns the X, Y and Z series of one particle.
func (a *Analyzer) ExtractParticlePositions(ds *dataset.Dataset, particle int) (x, y, z []float64, err error) {
	return ds.Positions(particle)
}

// particleCount resolves how many particles per-file operations use: the
// configured count, which must match the file, or the file's own count
// when none is configured.
func (a *Analyzer) particleCount(ds *dataset.Dataset) (int, error) {
	n := a.cfg.Particles
	if n == 0 {
		n = ds.NumParticles
	}
	if err := ds.CheckParticles(n); err != nil {
		return 0, err
	}
	return n, nil
}

func (a *Analyzer) loadForAnalysis(name string) (*dataset.Dataset, int, error) {
	ds, err := a.LoadSimulationData(name)
	if err != nil {
		return nil, 0, err
	}
	if ds.NumSteps == 0 {
		return nil, 0, fmt.Errorf("%w: %s", dataset.ErrNoSteps, ds.Name)
	}
	n, err := a.particleCount(ds)
	if err != nil {
		return nil, 0, err
	}
	return ds, n, nil
}

func (a *Analyzer) banner(title string, width int) {
	fmt.Fprintln(a.out, viz.Banner(title, width))
}

func (a *Analyzer) reportFailure(file string, err error) {
	fmt.Fprintln(a.out, viz.ErrorStyle.Render(fmt.Sprintf("Error analyzing %s: %v", filepath.Base(file), err)))
	a.logger.Error("analysis failed", "file", file, "err", err)
}
