package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"sort"

	"trajview/internal/services"
	"trajview/internal/trajectory"
)

const renderStage = "render"

// Options holds the immutable parameters every frame is rendered with.
// Workers receive Options by value; nothing here is mutated after New.
type Options struct {
	Width            int
	Height           int
	BoxLength        float64
	MarkerRadius     float64
	ElevationDeg     float64
	AzimuthDeg       float64
	SnapshotInterval int
}

var (
	backgroundColor = color.RGBA{255, 255, 255, 255}
	boxEdgeColor    = color.RGBA{190, 190, 190, 255}
	atomColor       = color.RGBA{0, 0, 255, 255}
	labelColor      = color.RGBA{60, 60, 60, 255}
	titleColor      = color.RGBA{0, 0, 0, 255}
)

// Renderer rasterizes snapshots into fixed-axes 3D scatter frames. It is
// read-only after construction and safe for concurrent use; every Render call
// builds and discards its own canvas.
type Renderer struct {
	opts  Options
	view  viewTransform
	scale float64
	cx    float64
	cy    float64
}

// New validates the options and precomputes the view transform.
func New(opts Options) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, services.Wrap(services.ErrConfiguration, renderStage, "new", fmt.Sprintf("frame size %dx%d must be positive", opts.Width, opts.Height), nil)
	}
	if opts.BoxLength <= 0 {
		return nil, services.Wrap(services.ErrConfiguration, renderStage, "new", "box length must be positive", nil)
	}
	if opts.MarkerRadius <= 0 {
		opts.MarkerRadius = 3
	}

	view := newViewTransform(opts.ElevationDeg, opts.AzimuthDeg)

	// The rotated box fits inside a sphere of radius L*sqrt(3)/2. Leave room
	// for the title row above and the axis labels below.
	const margin = 36.0
	half := opts.BoxLength * sqrt3 / 2
	limit := float64(minInt(opts.Width, opts.Height))/2 - margin
	if limit < 1 {
		limit = 1
	}

	return &Renderer{
		opts:  opts,
		view:  view,
		scale: limit / half,
		cx:    float64(opts.Width) / 2,
		cy:    float64(opts.Height)/2 + margin/4,
	}, nil
}

// Render rasterizes one snapshot. Axes span [0, BoxLength] on all three
// dimensions regardless of the data; non-finite positions are skipped and
// out-of-box positions clip at the canvas edge rather than failing.
func (r *Renderer) Render(index int, snap trajectory.Snapshot) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.opts.Width, r.opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	r.drawBox(img)
	r.drawAtoms(img, snap)
	r.drawTitle(img, index)
	r.drawLegend(img)
	return img
}

// RenderPNG rasterizes one snapshot and writes it to path.
func (r *Renderer) RenderPNG(index int, snap trajectory.Snapshot, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return services.Wrap(services.ErrRender, renderStage, "write frame", fmt.Sprintf("snapshot %d", index), err)
	}
	if err := r.WritePNG(file, index, snap); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return services.Wrap(services.ErrRender, renderStage, "flush frame", fmt.Sprintf("snapshot %d", index), err)
	}
	return nil
}

// WritePNG rasterizes one snapshot and encodes it to w. Used by the
// sequential mode to stream frames without touching the filesystem.
func (r *Renderer) WritePNG(w io.Writer, index int, snap trajectory.Snapshot) error {
	if err := png.Encode(w, r.Render(index, snap)); err != nil {
		return services.Wrap(services.ErrRender, renderStage, "encode frame", fmt.Sprintf("snapshot %d", index), err)
	}
	return nil
}

// project maps a world position to screen coordinates plus a depth used for
// painter ordering (larger depth = nearer the viewer).
func (r *Renderer) project(p trajectory.Position) (float64, float64, float64) {
	half := r.opts.BoxLength / 2
	u, v, depth := r.view.apply(p.X-half, p.Y-half, p.Z-half)
	return r.cx + u*r.scale, r.cy - v*r.scale, depth
}

func (r *Renderer) drawBox(img *image.RGBA) {
	l := r.opts.BoxLength
	corners := [8]trajectory.Position{
		{X: 0, Y: 0, Z: 0}, {X: l, Y: 0, Z: 0}, {X: l, Y: l, Z: 0}, {X: 0, Y: l, Z: 0},
		{X: 0, Y: 0, Z: l}, {X: l, Y: 0, Z: l}, {X: l, Y: l, Z: l}, {X: 0, Y: l, Z: l},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	var pts [8][2]float64
	for i, c := range corners {
		x, y, _ := r.project(c)
		pts[i] = [2]float64{x, y}
	}
	for _, e := range edges {
		drawLine(img, pts[e[0]][0], pts[e[0]][1], pts[e[1]][0], pts[e[1]][1], boxEdgeColor)
	}

	// Axis labels sit at the midpoints of the three front-facing base edges,
	// matching the source data's angstrom units.
	r.drawAxisLabel(img, "X (angstrom)", corners[0], corners[1])
	r.drawAxisLabel(img, "Y (angstrom)", corners[1], corners[2])
	r.drawAxisLabel(img, "Z (angstrom)", corners[1], corners[5])
}

func (r *Renderer) drawAxisLabel(img *image.RGBA, label string, a, b trajectory.Position) {
	mid := trajectory.Position{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2, Z: (a.Z + b.Z) / 2}
	x, y, _ := r.project(mid)
	drawText(img, label, int(x)-len(label)*glyphWidth/2, int(y)+16, labelColor)
}

func (r *Renderer) drawAtoms(img *image.RGBA, snap trajectory.Snapshot) {
	type marker struct {
		x, y, depth float64
	}
	markers := make([]marker, 0, len(snap))
	for _, p := range snap {
		if !p.Finite() {
			continue
		}
		x, y, depth := r.project(p)
		markers = append(markers, marker{x: x, y: y, depth: depth})
	}
	// Painter order: far atoms first so near ones overdraw them.
	sort.Slice(markers, func(i, j int) bool { return markers[i].depth < markers[j].depth })
	for _, m := range markers {
		fillCircle(img, m.x, m.y, r.opts.MarkerRadius, atomColor)
	}
}

func (r *Renderer) drawTitle(img *image.RGBA, index int) {
	title := fmt.Sprintf("Timestep %d", index*r.opts.SnapshotInterval)
	drawText(img, title, r.opts.Width/2-len(title)*glyphWidth/2, 20, titleColor)
}

func (r *Renderer) drawLegend(img *image.RGBA) {
	const label = "Argon Atoms"
	x := r.opts.Width - len(label)*glyphWidth - 24
	y := 20
	fillCircle(img, float64(x-8), float64(y-4), 3, atomColor)
	drawText(img, label, x, y, labelColor)
}

// FrameFileName returns the deterministic, zero-padded file name for a
// snapshot index, e.g. frame_0007.png.
func FrameFileName(index int) string {
	return fmt.Sprintf("frame_%04d.png", index)
}

// FramePattern is the printf-style sequence pattern the assembler hands to
// ffmpeg. It must agree with FrameFileName.
const FramePattern = "frame_%04d.png"

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
