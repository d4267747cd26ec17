package analyzer

import (
	"fmt"
	"path/filepath"

	"github.com/san-kum/ropestate/internal/dataset"
	"github.com/san-kum/ropestate/internal/metrics"
	"github.com/san-kum/ropestate/internal/render"
	"github.com/san-kum/ropestate/internal/storage"
	"github.com/san-kum/ropestate/internal/viz"
)

// AnalyzeRopeProperties computes the rope length at every step, plots it
// against its mean, prints the statistics and saves them to the store.
func (a *Analyzer) AnalyzeRopeProperties(name string) (*storage.Summary, error) {
	ds, n, err := a.loadForAnalysis(name)
	if err != nil {
		return nil, err
	}

	frames, err := ds.Frames(n)
	if err != nil {
		return nil, err
	}
	lengths := metrics.LengthSeries(frames)
	stats, err := metrics.Summarize(lengths)
	if err != nil {
		return nil, err
	}

	p, err := render.LengthChart("Rope Length Over Time - "+filepath.Base(name), lengths, stats.Mean)
	if err != nil {
		return nil, err
	}
	path := a.outputPath(name, "_length_analysis"+a.cfg.ImageExt())
	if err := render.Save(path, p, render.LengthSize, a.cfg.DPI); err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "Length analysis plot saved as: %s\n", path)

	fmt.Fprintln(a.out, "Rope Length Statistics:")
	fmt.Fprintln(a.out, viz.Metric("Mean length", fmt.Sprintf("%.3f", stats.Mean)))
	fmt.Fprintln(a.out, viz.Metric("Std deviation", fmt.Sprintf("%.3f", stats.Std)))
	fmt.Fprintln(a.out, viz.Metric("Min length", fmt.Sprintf("%.3f", stats.Min)))
	fmt.Fprintln(a.out, viz.Metric("Max length", fmt.Sprintf("%.3f", stats.Max)))

	if a.cfg.Preview {
		fmt.Fprintln(a.out, viz.LengthPreview(filepath.Base(name), lengths, stats.Mean))
	}

	summary := &storage.Summary{
		ID:         dataset.Stem(name),
		File:       filepath.Base(name),
		Steps:      ds.NumSteps,
		Particles:  n,
		MeanLength: stats.Mean,
		StdLength:  stats.Std,
		MinLength:  stats.Min,
		MaxLength:  stats.Max,
		MaxDrift:   metrics.MaxDrift(lengths),
		Outputs:    map[string]string{"length_analysis": path},
	}
	if period, ok := metrics.DominantPeriod(lengths); ok {
		summary.Period = period
	}
	if err := a.store.Save(summary, lengths); err != nil {
		return nil, fmt.Errorf("analyzer: save summary: %w", err)
	}
	a.logger.Debug("length analysis saved", "id", summary.ID, "mean", stats.Mean, "drift", summary.MaxDrift, "period", summary.Period)
	return summary, nil
}
