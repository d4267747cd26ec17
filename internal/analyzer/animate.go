package analyzer

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/san-kum/ropestate/internal/geom"
	"github.com/san-kum/ropestate/internal/render"
	"github.com/san-kum/ropestate/internal/video"
	"github.com/san-kum/ropestate/internal/viz"
)

const (
	// boundsPadding widens the fixed 3D axes by this fraction of each range.
	boundsPadding = 0.1

	sketchCols = 60
	sketchRows = 15
)

// Create3DRopeVisualization renders one frame per step with fixed axes
// over the whole run and encodes them into an MP4 at the configured FPS.
func (a *Analyzer) Create3DRopeVisualization(ctx context.Context, name string) (string, error) {
	ds, n, err := a.loadForAnalysis(name)
	if err != nil {
		return "", err
	}

	frames, err := ds.Frames(n)
	if err != nil {
		return "", err
	}
	bounds, ok := geom.BoundsOf(frames)
	if !ok {
		return "", fmt.Errorf("analyzer: %s has no finite positions", filepath.Base(name))
	}
	scene := render.NewScene("3D Rope Visualization - "+filepath.Base(name), geom.Pad(bounds, boundsPadding))

	out := a.outputPath(name, "_3d_visualization.mp4")
	fmt.Fprintf(a.out, "Creating video: %s\n", out)

	vw := &video.Writer{
		Encoder: a.encoder,
		FPS:     a.cfg.FPS,
		Logger:  a.logger,
		Workers: a.cfg.Workers,
	}
	err = vw.Write(ctx, ds.NumSteps, func(step int, w io.Writer) error {
		p, err := scene.Frame(step, frames[step])
		if err != nil {
			return err
		}
		return render.Write(w, "png", p, render.FrameSize, a.cfg.VideoDPI)
	}, out)
	if err != nil {
		return "", err
	}

	fmt.Fprintf(a.out, "Video saved as: %s\n", out)

	if a.cfg.Preview {
		last := ds.NumSteps - 1
		fmt.Fprintf(a.out, "Rope at step %d:\n", last)
		fmt.Fprintln(a.out, viz.RopeSketch(scene.Camera, frames[last], sketchCols, sketchRows))
	}
	return out, nil
}
