// Package dataset loads rope simulation traces.
//
// A trace is a CSV file with one row per time step and three columns per
// particle named Particle<i>_X, Particle<i>_Y and Particle<i>_Z. Files are
// discovered by their "simulation.csv" suffix.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/ropestate/internal/geom"
)

const (
	// Suffix identifies simulation output files.
	Suffix = "simulation.csv"

	particlePrefix = "Particle"
	byteOrderMark  = "\ufeff"
)

// Dataset is one loaded simulation run. It is not modified after Load.
type Dataset struct {
	Name         string
	Path         string
	NumSteps     int
	NumParticles int

	header  []string
	columns map[string][]float64
}

// ColumnName returns the header name for a particle axis, axis being one of
// 'X', 'Y' or 'Z'.
func ColumnName(particle int, axis byte) string {
	return fmt.Sprintf("%s%d_%c", particlePrefix, particle, axis)
}

// Load reads the CSV at path. A missing file is reported as ErrFileNotFound
// before any parsing happens.
func Load(path string) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ds, err := Read(filepath.Base(path), file)
	if err != nil {
		return nil, err
	}
	ds.Path = path
	return ds, nil
}

// Read parses a trace from r. Every Particle column must hold numbers;
// other columns are kept as-is and ignored.
func Read(name string, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("dataset: %s: empty file", name)
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", name, err)
	}

	ds := &Dataset{
		Name:    name,
		header:  make([]string, len(header)),
		columns: make(map[string][]float64),
	}

	// files saved by Windows tools may start with a UTF-8 byte order mark
	header[0] = strings.TrimPrefix(header[0], byteOrderMark)

	particleCols := 0
	for i, h := range header {
		h = strings.TrimSpace(h)
		ds.header[i] = h
		if !strings.HasPrefix(h, particlePrefix) {
			continue
		}
		if _, dup := ds.columns[h]; dup {
			return nil, fmt.Errorf("%w: %s in %s", ErrDuplicateColumn, h, name)
		}
		particleCols++
		ds.columns[h] = nil
	}
	ds.NumParticles = particleCols / 3

	row := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: %s: %w", name, err)
		}
		row++

		for i, h := range ds.header {
			col, ok := ds.columns[h]
			if !ok {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
			if err != nil {
				return nil, &ParseError{File: name, Row: row, Column: h, Err: err}
			}
			ds.columns[h] = append(col, v)
		}
	}
	ds.NumSteps = row

	return ds, nil
}

// Column returns the values of a particle column in row order.
func (d *Dataset) Column(name string) ([]float64, error) {
	col, ok := d.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrMissingColumn, name, d.Name)
	}
	return col, nil
}

// Positions returns the X, Y and Z series of one particle.
func (d *Dataset) Positions(particle int) (x, y, z []float64, err error) {
	if x, err = d.Column(ColumnName(particle, 'X')); err != nil {
		return nil, nil, nil, err
	}
	if y, err = d.Column(ColumnName(particle, 'Y')); err != nil {
		return nil, nil, nil, err
	}
	if z, err = d.Column(ColumnName(particle, 'Z')); err != nil {
		return nil, nil, nil, err
	}
	return x, y, z, nil
}

// Frames extracts the rope configuration of particles 0..n-1 at every step,
// indexed [step][particle].
func (d *Dataset) Frames(n int) ([][]geom.Vec3, error) {
	frames := make([][]geom.Vec3, d.NumSteps)
	for s := range frames {
		frames[s] = make([]geom.Vec3, n)
	}
	for p := 0; p < n; p++ {
		x, y, z, err := d.Positions(p)
		if err != nil {
			return nil, err
		}
		for s := range frames {
			frames[s][p] = geom.Vec3{X: x[s], Y: y[s], Z: z[s]}
		}
	}
	return frames, nil
}

// CheckParticles verifies that the file carries exactly n particles.
func (d *Dataset) CheckParticles(n int) error {
	if d.NumParticles == 0 {
		return fmt.Errorf("%w: %s", ErrNoParticles, d.Name)
	}
	if n != d.NumParticles {
		return &ParticleCountError{File: d.Name, Configured: n, Found: d.NumParticles}
	}
	return nil
}
