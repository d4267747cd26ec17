package analyzer_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ropestate/internal/analyzer"
	"github.com/san-kum/ropestate/internal/config"
	"github.com/san-kum/ropestate/internal/dataset"
	"github.com/san-kum/ropestate/internal/dataset/datasettest"
	"github.com/san-kum/ropestate/internal/geom"
)

// fakeEncoder checks the frame sequence and writes a placeholder video.
type fakeEncoder struct {
	calls  int
	frames int
	fps    int
	err    error
}

func (e *fakeEncoder) Encode(_ context.Context, pattern string, frames, fps int, out string) error {
	e.calls++
	e.frames = frames
	e.fps = fps
	if e.err != nil {
		return e.err
	}
	for i := 0; i < frames; i++ {
		if _, err := os.Stat(fmt.Sprintf(pattern, i)); err != nil {
			return fmt.Errorf("missing frame %d: %w", i, err)
		}
	}
	return os.WriteFile(out, []byte("mp4"), 0644)
}

func straightRope(steps int) [][]geom.Vec3 {
	frames := make([][]geom.Vec3, steps)
	for s := range frames {
		frames[s] = []geom.Vec3{{X: 0}, {X: 1}, {X: 2}}
	}
	return frames
}

var _ = Describe("Analyzer", func() {
	var (
		dir string
		cfg *config.Config
		out *bytes.Buffer
		enc *fakeEncoder
	)

	newAnalyzer := func() *analyzer.Analyzer {
		a, err := analyzer.New(cfg, analyzer.WithOutput(out), analyzer.WithEncoder(enc))
		Expect(err).NotTo(HaveOccurred())
		return a
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		cfg = config.DefaultConfig()
		cfg.CSVDir = dir
		cfg.Particles = 3
		cfg.DPI = 30
		cfg.VideoDPI = 20
		out = &bytes.Buffer{}
		enc = &fakeEncoder{}
	})

	Describe("New", func() {
		It("rejects an invalid configuration", func() {
			cfg.FPS = 0
			_, err := analyzer.New(cfg, analyzer.WithOutput(out))
			Expect(err).To(MatchError(config.ErrInvalidFPS))
		})

		It("creates the result directory", func() {
			a := newAnalyzer()
			Expect(a.SaveDir()).To(Equal(filepath.Join(dir, config.ResultDirName)))
			Expect(a.SaveDir()).To(BeADirectory())
		})

		It("lists the discovered files in name order", func() {
			datasettest.WriteFrames(GinkgoT(), dir, "b_simulation.csv", straightRope(2))
			datasettest.WriteFrames(GinkgoT(), dir, "a_simulation.csv", straightRope(2))
			datasettest.WriteFrames(GinkgoT(), dir, "notes.csv", straightRope(2))

			a := newAnalyzer()
			Expect(a.Files()).To(Equal([]string{
				filepath.Join(dir, "a_simulation.csv"),
				filepath.Join(dir, "b_simulation.csv"),
			}))
			Expect(out.String()).To(ContainSubstring("Found 2 simulation files:\n  - a_simulation.csv\n  - b_simulation.csv\n"))
		})
	})

	Describe("LoadSimulationData", func() {
		It("prints the step and particle counts", func() {
			datasettest.WriteFrames(GinkgoT(), dir, "run_simulation.csv", straightRope(4))
			a := newAnalyzer()

			ds, err := a.LoadSimulationData("run_simulation.csv")
			Expect(err).NotTo(HaveOccurred())
			Expect(ds.NumSteps).To(Equal(4))
			Expect(out.String()).To(ContainSubstring("Loaded run_simulation.csv:\n  - Steps: 4\n  - Particles: 3\n"))
		})

		It("reports a missing file", func() {
			a := newAnalyzer()
			_, err := a.LoadSimulationData("gone_simulation.csv")
			Expect(err).To(MatchError(dataset.ErrFileNotFound))
		})
	})

	Describe("AnalyzeRopeProperties", func() {
		It("computes the statistics of a straight rope", func() {
			datasettest.WriteFrames(GinkgoT(), dir, "run_simulation.csv", straightRope(3))
			a := newAnalyzer()

			summary, err := a.AnalyzeRopeProperties("run_simulation.csv")
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.MeanLength).To(BeNumerically("~", 2.0, 1e-12))
			Expect(summary.StdLength).To(BeNumerically("~", 0, 1e-12))
			Expect(summary.MinLength).To(BeNumerically("~", 2.0, 1e-12))
			Expect(summary.MaxLength).To(BeNumerically("~", 2.0, 1e-12))
			Expect(summary.Steps).To(Equal(3))

			Expect(filepath.Join(a.SaveDir(), "run_simulation_length_analysis.png")).To(BeARegularFile())
			Expect(out.String()).To(ContainSubstring("Rope Length Statistics:"))
			Expect(out.String()).To(ContainSubstring("Mean length: 2.000"))
			Expect(out.String()).To(ContainSubstring("Std deviation: 0.000"))

			saved, err := a.Store().Load("run_simulation")
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.MeanLength).To(BeNumerically("~", 2.0, 1e-12))
			lengths, err := a.Store().LoadLengths("run_simulation")
			Expect(err).NotTo(HaveOccurred())
			Expect(lengths).To(HaveLen(3))
		})

		It("rejects a configured particle count the file does not have", func() {
			cfg.Particles = 10
			datasettest.WriteFrames(GinkgoT(), dir, "run_simulation.csv", straightRope(3))
			a := newAnalyzer()

			_, err := a.AnalyzeRopeProperties("run_simulation.csv")
			Expect(err).To(MatchError(dataset.ErrParticleCountMismatch))
			var pce *dataset.ParticleCountError
			Expect(errors.As(err, &pce)).To(BeTrue())
			Expect(pce.Found).To(Equal(3))
		})

		It("uses the file's particle count when none is configured", func() {
			cfg.Particles = 0
			datasettest.WriteFrames(GinkgoT(), dir, "run_simulation.csv", straightRope(2))
			a := newAnalyzer()

			summary, err := a.AnalyzeRopeProperties("run_simulation.csv")
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Particles).To(Equal(3))
		})

		It("fails on a file without steps", func() {
			Expect(os.WriteFile(filepath.Join(dir, "run_simulation.csv"),
				[]byte("Particle0X,Particle0Y,Particle0Z\n"), 0644)).To(Succeed())
			cfg.Particles = 1
			a := newAnalyzer()

			_, err := a.AnalyzeRopeProperties("run_simulation.csv")
			Expect(err).To(MatchError(dataset.ErrNoSteps))
		})
	})

	Describe("PlotTrajectories", func() {
		It("writes the trajectory image", func() {
			datasettest.WriteFrames(GinkgoT(), dir, "run_simulation.csv", datasettest.HangingRope(5, 3))
			a := newAnalyzer()

			path, err := a.PlotTrajectories("run_simulation.csv")
			Expect(err).NotTo(HaveOccurred())
			Expect(path).To(Equal(filepath.Join(a.SaveDir(), "run_simulation_trajectories.png")))
			Expect(path).To(BeARegularFile())
			Expect(out.String()).To(ContainSubstring("Trajectory plot saved as: " + path))
		})
	})

	Describe("Create3DRopeVisualization", func() {
		It("encodes one frame per step at the configured rate", func() {
			cfg.FPS = 12
			datasettest.WriteFrames(GinkgoT(), dir, "run_simulation.csv", datasettest.HangingRope(4, 3))
			a := newAnalyzer()

			path, err := a.Create3DRopeVisualization(context.Background(), "run_simulation.csv")
			Expect(err).NotTo(HaveOccurred())
			Expect(path).To(Equal(filepath.Join(a.SaveDir(), "run_simulation_3d_visualization.mp4")))
			Expect(path).To(BeARegularFile())
			Expect(enc.frames).To(Equal(4))
			Expect(enc.fps).To(Equal(12))
			Expect(out.String()).To(ContainSubstring("Creating video: " + path))
			Expect(out.String()).To(ContainSubstring("Video saved as: " + path))
		})

		It("prints a sketch of the last step in preview mode", func() {
			cfg.Preview = true
			datasettest.WriteFrames(GinkgoT(), dir, "run_simulation.csv", datasettest.HangingRope(3, 4))
			a := newAnalyzer()

			_, err := a.Create3DRopeVisualization(context.Background(), "run_simulation.csv")
			Expect(err).NotTo(HaveOccurred())
			Expect(out.String()).To(ContainSubstring("Rope at step 2:"))
		})

		It("rejects a file whose positions are all NaN", func() {
			nan := math.NaN()
			frames := [][]geom.Vec3{{{X: nan, Y: nan, Z: nan}, {X: nan, Y: nan, Z: nan}, {X: nan, Y: nan, Z: nan}}}
			datasettest.WriteFrames(GinkgoT(), dir, "run_simulation.csv", frames)
			a := newAnalyzer()

			_, err := a.Create3DRopeVisualization(context.Background(), "run_simulation.csv")
			Expect(err).To(MatchError(ContainSubstring("has no finite positions")))
			Expect(enc.calls).To(BeZero())
		})

		It("returns the encoder error", func() {
			enc.err = errors.New("boom")
			datasettest.WriteFrames(GinkgoT(), dir, "run_simulation.csv", straightRope(2))
			a := newAnalyzer()

			_, err := a.Create3DRopeVisualization(context.Background(), "run_simulation.csv")
			Expect(err).To(MatchError(ContainSubstring("boom")))
		})
	})

	Describe("CreateComprehensiveAnalysis", func() {
		It("stops before the length analysis when the video fails", func() {
			enc.err = errors.New("no encoder")
			datasettest.WriteFrames(GinkgoT(), dir, "run_simulation.csv", straightRope(2))
			a := newAnalyzer()

			err := a.CreateComprehensiveAnalysis(context.Background(), "run_simulation.csv")
			Expect(err).To(HaveOccurred())
			Expect(filepath.Join(a.SaveDir(), "run_simulation_trajectories.png")).To(BeARegularFile())
			Expect(filepath.Join(a.SaveDir(), "run_simulation_length_analysis.png")).NotTo(BeAnExistingFile())
			Expect(out.String()).To(ContainSubstring("ANALYZING: run_simulation.csv"))
		})
	})

	Describe("AnalyzeAllSimulations", func() {
		It("reports an empty directory", func() {
			a := newAnalyzer()
			report, err := a.AnalyzeAllSimulations(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(report.OK()).To(BeTrue())
			Expect(report.Processed).To(BeEmpty())
			Expect(out.String()).To(ContainSubstring("No simulation files found!"))
			Expect(enc.calls).To(BeZero())
		})

		It("keeps going past a broken file", func() {
			datasettest.WriteFrames(GinkgoT(), dir, "good_simulation.csv", datasettest.HangingRope(3, 3))
			Expect(os.WriteFile(filepath.Join(dir, "bad_simulation.csv"),
				[]byte("Particle0X,Particle0Y,Particle0Z\nabc,0,0\n"), 0644)).To(Succeed())
			a := newAnalyzer()

			report, err := a.AnalyzeAllSimulations(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Processed).To(Equal([]string{"good_simulation.csv"}))
			Expect(report.Failed).To(HaveKey("bad_simulation.csv"))
			Expect(report.CombinedErr).NotTo(HaveOccurred())
			Expect(report.OK()).To(BeFalse())
			Expect(report.Err()).To(MatchError("1 file(s) failed"))

			for _, name := range []string{
				"good_simulation_trajectories.png",
				"good_simulation_3d_visualization.mp4",
				"good_simulation_length_analysis.png",
				"combined_trajectories.png",
			} {
				Expect(filepath.Join(a.SaveDir(), name)).To(BeARegularFile())
			}
			Expect(report.Combined).To(Equal(filepath.Join(a.SaveDir(), "combined_trajectories.png")))
			Expect(out.String()).To(ContainSubstring("COMPREHENSIVE ANALYSIS OF 2 SIMULATION(S)"))
			Expect(out.String()).To(ContainSubstring("Error analyzing bad_simulation.csv"))
		})

		It("reports a combined plot failure when every file succeeds", func() {
			datasettest.WriteFrames(GinkgoT(), dir, "run_simulation.csv", straightRope(2))
			a := newAnalyzer()
			// a directory in the way of the combined image
			Expect(os.Mkdir(filepath.Join(a.SaveDir(), analyzer.CombinedName+".png"), 0o755)).To(Succeed())

			report, err := a.AnalyzeAllSimulations(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Processed).To(Equal([]string{"run_simulation.csv"}))
			Expect(report.Failed).To(BeEmpty())
			Expect(report.CombinedErr).To(HaveOccurred())
			Expect(report.Combined).To(BeEmpty())
			Expect(report.Err()).To(MatchError(ContainSubstring("combined plot:")))
			Expect(report.Err().Error()).NotTo(ContainSubstring("file(s) failed"))
			Expect(out.String()).To(ContainSubstring("Combined trajectory plot failed"))
		})

		It("stops when the context is cancelled", func() {
			datasettest.WriteFrames(GinkgoT(), dir, "run_simulation.csv", straightRope(2))
			a := newAnalyzer()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := a.AnalyzeAllSimulations(ctx)
			Expect(err).To(MatchError(context.Canceled))
			Expect(enc.calls).To(BeZero())
		})
	})

	Describe("PlotAllTrajectoriesCombined", func() {
		It("plots files with different particle counts", func() {
			cfg.Particles = 0
			datasettest.WriteFrames(GinkgoT(), dir, "a_simulation.csv", datasettest.HangingRope(3, 3))
			datasettest.WriteFrames(GinkgoT(), dir, "b_simulation.csv", datasettest.HangingRope(3, 6))
			a := newAnalyzer()

			path, err := a.PlotAllTrajectoriesCombined()
			Expect(err).NotTo(HaveOccurred())
			Expect(path).To(BeARegularFile())
			Expect(out.String()).To(ContainSubstring("Combined trajectory plot saved as: " + path))
		})
	})
})
