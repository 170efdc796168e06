package render

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"trajview/internal/trajectory"
)

func testOptions() Options {
	return Options{
		Width:            320,
		Height:           240,
		BoxLength:        10,
		MarkerRadius:     3,
		ElevationDeg:     30,
		AzimuthDeg:       -60,
		SnapshotInterval: 10,
	}
}

func countAtomPixels(img *image.RGBA) int {
	count := 0
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r == 0 && g == 0 && b == 0xffff {
				count++
			}
		}
	}
	return count
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	if _, err := New(Options{Width: 0, Height: 240, BoxLength: 10}); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := New(Options{Width: 320, Height: 240, BoxLength: 0}); err == nil {
		t.Fatal("expected error for zero box length")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r, err := New(testOptions())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	snap := trajectory.Snapshot{{X: 2, Y: 3, Z: 4}, {X: 7, Y: 1, Z: 9}}

	a := r.Render(5, snap)
	b := r.Render(5, snap)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("rendering the same snapshot twice produced different images")
	}
	if a.Bounds().Dx() != 320 || a.Bounds().Dy() != 240 {
		t.Fatalf("unexpected frame dimensions %v", a.Bounds())
	}
}

func TestRenderMarkerCoverageScalesWithAtoms(t *testing.T) {
	r, err := New(testOptions())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	one := countAtomPixels(r.Render(0, trajectory.Snapshot{{X: 5, Y: 5, Z: 5}}))
	// The legend swatch contributes a constant disc; subtract it via a
	// zero-atom baseline.
	baseline := countAtomPixels(r.Render(0, trajectory.Snapshot{}))
	two := countAtomPixels(r.Render(0, trajectory.Snapshot{{X: 2, Y: 2, Z: 2}, {X: 8, Y: 8, Z: 8}}))

	if one <= baseline {
		t.Fatalf("expected atom pixels beyond the legend baseline, got %d <= %d", one, baseline)
	}
	if got, want := two-baseline, 2*(one-baseline); got != want {
		t.Fatalf("expected two well-separated atoms to cover twice one atom's pixels: got %d, want %d", got, want)
	}
}

func TestRenderBoxCornersStayInBounds(t *testing.T) {
	opts := testOptions()
	r, err := New(opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	snap := trajectory.Snapshot{
		{X: 0, Y: 0, Z: 0},
		{X: opts.BoxLength, Y: opts.BoxLength, Z: opts.BoxLength},
	}
	img := r.Render(0, snap)
	if countAtomPixels(img) == 0 {
		t.Fatal("expected boundary atoms to be drawn")
	}

	for _, p := range snap {
		x, y, _ := r.project(p)
		if x < 0 || x >= float64(opts.Width) || y < 0 || y >= float64(opts.Height) {
			t.Fatalf("corner %+v projected out of bounds to (%f, %f)", p, x, y)
		}
	}
}

func TestRenderToleratesNonFinitePositions(t *testing.T) {
	r, err := New(testOptions())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	snap := trajectory.Snapshot{
		{X: math.NaN(), Y: 1, Z: 1},
		{X: 2, Y: math.Inf(1), Z: 2},
		{X: 50, Y: -30, Z: 500}, // far outside the box: clips, never crashes
		{X: 5, Y: 5, Z: 5},
	}
	img := r.Render(0, snap)
	if img == nil {
		t.Fatal("expected an image despite bad positions")
	}
}

func TestRenderTitleVariesWithIndex(t *testing.T) {
	r, err := New(testOptions())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	snap := trajectory.Snapshot{{X: 5, Y: 5, Z: 5}}
	if bytes.Equal(r.Render(0, snap).Pix, r.Render(1, snap).Pix) {
		t.Fatal("frames with different indices should differ in their title")
	}
}

func TestConcurrentRendersMatchSequential(t *testing.T) {
	r, err := New(testOptions())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	snaps := []trajectory.Snapshot{
		{{X: 1, Y: 1, Z: 1}, {X: 2, Y: 2, Z: 2}},
		{{X: 3, Y: 3, Z: 3}, {X: 4, Y: 4, Z: 4}},
		{{X: 5, Y: 6, Z: 7}, {X: 8, Y: 9, Z: 1}},
	}

	sequential := make([]*image.RGBA, len(snaps))
	for i, snap := range snaps {
		sequential[i] = r.Render(i, snap)
	}

	concurrent := make([]*image.RGBA, len(snaps))
	var wg sync.WaitGroup
	for i, snap := range snaps {
		wg.Add(1)
		go func(i int, snap trajectory.Snapshot) {
			defer wg.Done()
			concurrent[i] = r.Render(i, snap)
		}(i, snap)
	}
	wg.Wait()

	for i := range snaps {
		if !bytes.Equal(sequential[i].Pix, concurrent[i].Pix) {
			t.Fatalf("frame %d differs between sequential and concurrent rendering", i)
		}
	}
}

func TestRenderPNGWritesDecodableFile(t *testing.T) {
	r, err := New(testOptions())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	path := filepath.Join(t.TempDir(), FrameFileName(7))
	if err := r.RenderPNG(7, trajectory.Snapshot{{X: 5, Y: 5, Z: 5}}, path); err != nil {
		t.Fatalf("RenderPNG returned error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open frame: %v", err)
	}
	defer file.Close()
	cfg, err := png.DecodeConfig(file)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if cfg.Width != 320 || cfg.Height != 240 {
		t.Fatalf("unexpected frame dimensions %dx%d", cfg.Width, cfg.Height)
	}
}

func TestFrameFileName(t *testing.T) {
	if got := FrameFileName(7); got != "frame_0007.png" {
		t.Fatalf("expected frame_0007.png, got %q", got)
	}
	if got := FrameFileName(12345); got != "frame_12345.png" {
		t.Fatalf("expected frame_12345.png, got %q", got)
	}
}
