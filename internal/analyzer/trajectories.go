package analyzer

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/san-kum/ropestate/internal/dataset"
	"github.com/san-kum/ropestate/internal/render"
)

var errNothingPlotted = errors.New("analyzer: no trajectories could be plotted")

// PlotTrajectories draws the X, Y and Z trajectories of the first, middle
// and last particle of one file and returns the image path.
func (a *Analyzer) PlotTrajectories(name string) (string, error) {
	ds, n, err := a.loadForAnalysis(name)
	if err != nil {
		return "", err
	}

	roles := render.Roles(n)
	series := make([]render.Series, 0, len(roles))
	for _, role := range roles {
		x, y, z, err := a.ExtractParticlePositions(ds, role.Particle)
		if err != nil {
			return "", err
		}
		series = append(series, render.Series{
			Label: role.Name + " Particle",
			Color: role.Color,
			X:     x,
			Y:     y,
			Z:     z,
		})
	}

	fig, err := render.Trajectories("Particle Trajectories - "+filepath.Base(name), series)
	if err != nil {
		return "", err
	}

	path := a.outputPath(name, "_trajectories"+a.cfg.ImageExt())
	if err := render.Save(path, fig, render.TrajectorySize, a.cfg.DPI); err != nil {
		return "", err
	}
	fmt.Fprintf(a.out, "Trajectory plot saved as: %s\n", path)
	return path, nil
}

// PlotAllTrajectoriesCombined overlays the first, middle and last particle
// of every discovered file, using each file's own particle count. Files
// that cannot be read are reported and skipped.
func (a *Analyzer) PlotAllTrajectoriesCombined() (string, error) {
	if len(a.files) == 0 {
		fmt.Fprintln(a.out, "No simulation files found!")
		return "", nil
	}

	var series []render.Series
	for i, file := range a.files {
		s, err := a.combinedSeries(i, file)
		if err != nil {
			a.reportFailure(file, err)
			continue
		}
		series = append(series, s...)
	}
	if len(series) == 0 {
		return "", errNothingPlotted
	}

	fig, err := render.Trajectories("Combined Particle Trajectories - All Simulations", series)
	if err != nil {
		return "", err
	}

	path := filepath.Join(a.saveDir, CombinedName+a.cfg.ImageExt())
	if err := render.Save(path, fig, render.CombinedSize, a.cfg.DPI); err != nil {
		return "", err
	}
	fmt.Fprintf(a.out, "Combined trajectory plot saved as: %s\n", path)
	return path, nil
}

func (a *Analyzer) combinedSeries(index int, file string) ([]render.Series, error) {
	ds, err := a.LoadSimulationData(filepath.Base(file))
	if err != nil {
		return nil, err
	}
	if ds.NumParticles == 0 {
		return nil, fmt.Errorf("%w: %s", dataset.ErrNoParticles, ds.Name)
	}
	if ds.NumSteps == 0 {
		return nil, fmt.Errorf("%w: %s", dataset.ErrNoSteps, ds.Name)
	}

	color := render.Faded(render.PaletteColor(index))
	sim := dataset.SimName(file)

	var series []render.Series
	for _, role := range render.Roles(ds.NumParticles) {
		x, y, z, err := a.ExtractParticlePositions(ds, role.Particle)
		if err != nil {
			return nil, err
		}
		series = append(series, render.Series{
			Label: sim + " - " + role.Name,
			Color: color,
			X:     x,
			Y:     y,
			Z:     z,
		})
	}
	return series, nil
}
