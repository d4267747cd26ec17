package dataset

import (
	"errors"
	"fmt"
	"io/fs"
)

// Domain errors for loading and reading simulation files.
var (
	// ErrFileNotFound indicates the simulation file does not exist.
	// It also matches fs.ErrNotExist.
	ErrFileNotFound = fmt.Errorf("dataset: file not found: %w", fs.ErrNotExist)

	// ErrMissingColumn indicates a requested particle column is absent.
	ErrMissingColumn = errors.New("dataset: missing column")

	// ErrDuplicateColumn indicates a Particle column named more than once.
	ErrDuplicateColumn = errors.New("dataset: duplicate column")

	// ErrNoParticles indicates a file without any Particle columns.
	ErrNoParticles = errors.New("dataset: no particle columns")

	// ErrNoSteps indicates a file with a header but no data rows.
	ErrNoSteps = errors.New("dataset: no steps")

	// ErrParticleCountMismatch indicates the configured particle count
	// disagrees with the count derived from the file header.
	ErrParticleCountMismatch = errors.New("dataset: particle count mismatch")
)

// ParticleCountError reports a configured particle count that the file does
// not match.
type ParticleCountError struct {
	File       string
	Configured int
	Found      int
}

func (e *ParticleCountError) Error() string {
	return fmt.Sprintf("dataset: %s has %d particles, configured for %d", e.File, e.Found, e.Configured)
}

func (e *ParticleCountError) Is(target error) bool {
	return target == ErrParticleCountMismatch
}

// ParseError reports a cell that is not a number.
type ParseError struct {
	File   string
	Row    int // 1-based data row, header excluded
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dataset: %s row %d column %s: %v", e.File, e.Row, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
