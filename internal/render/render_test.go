package render

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/ropestate/internal/geom"
)

const testDPI = 30

func sampleSeries(offset float64) []Series {
	series := make([]Series, 0, 3)
	for _, role := range Roles(10) {
		s := Series{Label: role.Name + " Particle", Color: role.Color}
		for step := 0; step < 20; step++ {
			v := offset + float64(role.Particle) + math.Sin(float64(step)/3)
			s.X = append(s.X, v)
			s.Y = append(s.Y, 2*v)
			s.Z = append(s.Z, -v)
		}
		series = append(series, s)
	}
	return series
}

func renderPNG(t *testing.T, d Drawer, size Size) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, "png", d, size, testDPI); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return buf.Bytes()
}

func TestTrajectoriesPNG(t *testing.T) {
	fig, err := Trajectories("Particle Trajectories - a_simulation.csv", sampleSeries(0))
	if err != nil {
		t.Fatalf("trajectories: %v", err)
	}
	if len(fig.Plots) != 3 {
		t.Fatalf("expected 3 charts, got %d", len(fig.Plots))
	}
	if fig.Plots[2].X.Label.Text != "Simulation Step" {
		t.Errorf("bottom chart missing step label")
	}

	data := renderPNG(t, fig, TrajectorySize)
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 12*testDPI || b.Dy() != 10*testDPI {
		t.Errorf("unexpected image size %dx%d", b.Dx(), b.Dy())
	}
}

func TestTrajectoriesDoNotShareState(t *testing.T) {
	build := func(offset float64) *Stack {
		fig, err := Trajectories("T", sampleSeries(offset))
		if err != nil {
			t.Fatal(err)
		}
		return fig
	}

	first := renderPNG(t, build(0), TrajectorySize)
	other := renderPNG(t, build(100), TrajectorySize)
	again := renderPNG(t, build(0), TrajectorySize)

	if !bytes.Equal(first, again) {
		t.Error("re-rendering the same data after another figure produced different output")
	}
	if bytes.Equal(first, other) {
		t.Error("different data produced identical output")
	}
}

func TestSaveChoosesFormatByExtension(t *testing.T) {
	dir := t.TempDir()
	p, err := LengthChart("Rope Length Over Time - a", []float64{2, 2.1, 1.9, 2}, 2)
	if err != nil {
		t.Fatal(err)
	}

	svgPath := filepath.Join(dir, "nested", "a_length_analysis.svg")
	if err := Save(svgPath, p, LengthSize, testDPI); err != nil {
		t.Fatalf("save svg: %v", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, "svg", p, LengthSize, testDPI); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Error("svg output missing <svg element")
	}

	if err := Save(filepath.Join(dir, "a.gif"), p, LengthSize, testDPI); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestLengthChartLegend(t *testing.T) {
	p, err := LengthChart("L", []float64{2, 2, 2}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if p.Y.Min >= p.Y.Max {
		t.Errorf("flat series should still get a Y range, got %f..%f", p.Y.Min, p.Y.Max)
	}
	renderPNG(t, p, LengthSize)

	if _, err := LengthChart("L", []float64{1, math.NaN()}, 1); err == nil {
		t.Error("expected error for NaN length")
	}
}

func TestRoles(t *testing.T) {
	roles := Roles(10)
	want := []int{0, 5, 9}
	for i, r := range roles {
		if r.Particle != want[i] {
			t.Errorf("role %s: expected particle %d, got %d", r.Name, want[i], r.Particle)
		}
	}
	if roles[0].Color != Red || roles[1].Color != Blue || roles[2].Color != Green {
		t.Error("unexpected role colors")
	}
}

func TestPaletteCycles(t *testing.T) {
	if PaletteColor(0) != PaletteColor(len(Palette)) {
		t.Error("palette should cycle")
	}
	if PaletteColor(1) != Blue {
		t.Error("second simulation should be blue")
	}
	faded := Faded(Red).(color.NRGBA)
	if faded.A != 204 || faded.R != 0xff {
		t.Errorf("unexpected faded color %+v", faded)
	}
}

func TestSceneFramesKeepFixedRange(t *testing.T) {
	b := geom.Pad(geom.Bounds{Min: geom.Vec3{X: 0, Y: -1, Z: -2}, Max: geom.Vec3{X: 9, Y: 1, Z: 0}}, 0.1)
	scene := NewScene("3D Rope Visualization - a_simulation.csv", b)

	ropeA := []geom.Vec3{{X: 0}, {X: 1}, {X: 2}}
	ropeB := []geom.Vec3{{X: 0, Z: -2}, {X: 5, Y: 1}, {X: 9, Y: -1, Z: -1}}

	pa, err := scene.Frame(0, ropeA)
	if err != nil {
		t.Fatal(err)
	}
	pb, err := scene.Frame(7, ropeB)
	if err != nil {
		t.Fatal(err)
	}

	if pa.X.Min != pb.X.Min || pa.X.Max != pb.X.Max || pa.Y.Min != pb.Y.Min || pa.Y.Max != pb.Y.Max {
		t.Error("frame ranges changed between steps")
	}
	if !strings.HasSuffix(pb.Title.Text, "(Step 7)") {
		t.Errorf("unexpected title %q", pb.Title.Text)
	}

	data := renderPNG(t, pb, FrameSize)
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("frame is not a PNG: %v", err)
	}
}
