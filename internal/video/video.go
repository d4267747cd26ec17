// Package video turns a sequence of rendered frames into a video file.
//
// Frames are written as numbered PNG files into a scratch directory in step
// order and then handed to an Encoder. The default encoder runs ffmpeg.
package video

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/san-kum/ropestate/internal/logging"
)

// FramePattern names frames inside the scratch directory.
const FramePattern = "frame_%06d.png"

var ErrEncoderUnavailable = errors.New("video: encoder unavailable")

// Encoder builds a video from numbered frames. pattern is a printf-style
// path such as /tmp/x/frame_%06d.png; frames start at 0.
type Encoder interface {
	Encode(ctx context.Context, pattern string, frames, fps int, out string) error
}

// FrameFunc writes the frame for one step.
type FrameFunc func(step int, w io.Writer) error

// Writer renders frames and encodes them.
type Writer struct {
	Encoder Encoder
	FPS     int
	Logger  *slog.Logger

	// ScratchDir is the parent of the per-video frame directory; empty
	// means os.TempDir.
	ScratchDir string

	// Workers splits the steps into this many contiguous chunks rendered
	// concurrently. Frame files are named by step, so the encoded order
	// does not depend on it. Values below 2 render sequentially.
	Workers int
}

// Write renders steps frames in order, with no skipping, and encodes them
// into out. The scratch frames are removed afterwards.
func (vw *Writer) Write(ctx context.Context, steps int, render FrameFunc, out string) error {
	if vw.Encoder == nil {
		return ErrEncoderUnavailable
	}
	if vw.FPS <= 0 {
		return fmt.Errorf("video: fps must be positive, got %d", vw.FPS)
	}
	if steps <= 0 {
		return fmt.Errorf("video: no frames to encode")
	}
	logger := vw.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	dir, err := os.MkdirTemp(vw.ScratchDir, "ropestate-frames-")
	if err != nil {
		return fmt.Errorf("video: cannot create frame directory: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := vw.renderFrames(ctx, dir, steps, render, logger); err != nil {
		return err
	}
	logger.Debug("frames rendered", "count", steps, "dir", dir)

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("video: cannot create output directory: %w", err)
	}
	return vw.Encoder.Encode(ctx, filepath.Join(dir, FramePattern), steps, vw.FPS, out)
}

func (vw *Writer) renderFrames(ctx context.Context, dir string, steps int, render FrameFunc, logger *slog.Logger) error {
	workers := min(max(vw.Workers, 1), steps)
	chunk := (steps + workers - 1) / workers

	errs := make([]error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start, end := w*chunk, min((w+1)*chunk, steps)
		go func(w, start, end int) {
			defer wg.Done()
			for step := start; step < end; step++ {
				if err := ctx.Err(); err != nil {
					errs[w] = err
					return
				}
				name := filepath.Join(dir, fmt.Sprintf(FramePattern, step))
				if err := writeFrame(name, step, render); err != nil {
					errs[w] = err
					return
				}
				logger.Log(ctx, logging.LevelTrace, "frame written", "step", step, "path", name)
			}
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func writeFrame(name string, step int, render FrameFunc) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("video: cannot create frame: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := render(step, bw); err != nil {
		return fmt.Errorf("video: frame %d: %w", step, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("video: frame %d: %w", step, err)
	}
	return f.Close()
}
