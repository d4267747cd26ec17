package video

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"

	"github.com/san-kum/ropestate/internal/logging"
)

// FFmpeg encodes H.264 MP4 files with the ffmpeg binary.
type FFmpeg struct {
	Path   string
	Logger *slog.Logger
}

func NewFFmpeg(path string, logger *slog.Logger) *FFmpeg {
	if path == "" {
		path = "ffmpeg"
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &FFmpeg{Path: path, Logger: logger}
}

// Args returns the ffmpeg command line for the given frames.
func (f *FFmpeg) Args(pattern string, frames, fps int, out string) []string {
	return []string{
		"-y",
		"-loglevel", "error",
		"-framerate", strconv.Itoa(fps),
		"-start_number", "0",
		"-i", pattern,
		"-frames:v", strconv.Itoa(frames),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		// libx264 needs even dimensions
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		out,
	}
}

func (f *FFmpeg) Encode(ctx context.Context, pattern string, frames, fps int, out string) error {
	bin, err := exec.LookPath(f.Path)
	if err != nil {
		return fmt.Errorf("%w: %s not found on PATH", ErrEncoderUnavailable, f.Path)
	}

	args := f.Args(pattern, frames, fps, out)
	f.Logger.Debug("running encoder", "bin", bin, "args", args)

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Env = os.Environ()
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("video: %s failed: %v\n%s", f.Path, err, string(output))
	}
	return nil
}
