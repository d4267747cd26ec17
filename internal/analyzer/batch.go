package analyzer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// BatchReport lists the outcome of AnalyzeAllSimulations.
type BatchReport struct {
	Processed []string
	Failed    map[string]error

	// Combined is the combined trajectory plot, empty when it failed.
	Combined    string
	CombinedErr error
}

// OK reports whether every file and the combined plot succeeded.
func (r *BatchReport) OK() bool {
	return r.Err() == nil
}

// Err summarizes what went wrong in the batch, or returns nil.
func (r *BatchReport) Err() error {
	var errs []error
	if r.CombinedErr != nil {
		errs = append(errs, fmt.Errorf("combined plot: %w", r.CombinedErr))
	}
	if len(r.Failed) > 0 {
		errs = append(errs, fmt.Errorf("%d file(s) failed", len(r.Failed)))
	}
	return errors.Join(errs...)
}

// CreateComprehensiveAnalysis runs the trajectory plot, the 3D video and
// the length analysis for one file, stopping at the first error.
func (a *Analyzer) CreateComprehensiveAnalysis(ctx context.Context, name string) error {
	a.banner("ANALYZING: "+filepath.Base(name), bannerWidth)

	if _, err := a.PlotTrajectories(name); err != nil {
		return err
	}
	if _, err := a.Create3DRopeVisualization(ctx, name); err != nil {
		return err
	}
	if _, err := a.AnalyzeRopeProperties(name); err != nil {
		return err
	}
	return nil
}

// AnalyzeAllSimulations draws the combined plot, then analyzes every
// discovered file in order. A failing file is reported and skipped; only
// cancellation of ctx stops the batch early.
func (a *Analyzer) AnalyzeAllSimulations(ctx context.Context) (*BatchReport, error) {
	report := &BatchReport{Failed: make(map[string]error)}
	if len(a.files) == 0 {
		fmt.Fprintln(a.out, "No simulation files found!")
		return report, nil
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	a.banner(fmt.Sprintf("COMPREHENSIVE ANALYSIS OF %d SIMULATION(S)", len(a.files)), batchBannerWidth)

	fmt.Fprintln(a.out, "\nCreating combined trajectory plot...")
	path, err := a.PlotAllTrajectoriesCombined()
	if err != nil {
		a.logger.Error("combined plot failed", "err", err)
		fmt.Fprintf(a.out, "Combined trajectory plot failed: %v\n", err)
		report.CombinedErr = err
	}
	report.Combined = path

	for _, file := range a.files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		name := filepath.Base(file)
		if err := a.CreateComprehensiveAnalysis(ctx, name); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			a.reportFailure(file, err)
			report.Failed[name] = err
			continue
		}
		report.Processed = append(report.Processed, name)
	}

	a.logger.Info("batch finished", "processed", len(report.Processed), "failed", len(report.Failed))
	return report, nil
}
