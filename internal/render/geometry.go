package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/mat"
)

const sqrt3 = 1.7320508075688772

// glyphWidth is the advance of the basicfont face used for titles and labels.
const glyphWidth = 7

// viewTransform is the orthographic elevation/azimuth rotation applied to
// box-centered coordinates before projecting onto the canvas.
type viewTransform struct {
	m [9]float64
}

// newViewTransform composes a rotation about the vertical axis (azimuth)
// followed by a tilt toward the viewer (elevation), mirroring the default
// matplotlib 3D view.
func newViewTransform(elevationDeg, azimuthDeg float64) viewTransform {
	el := elevationDeg * math.Pi / 180
	az := azimuthDeg * math.Pi / 180

	rz := mat.NewDense(3, 3, []float64{
		math.Cos(az), math.Sin(az), 0,
		-math.Sin(az), math.Cos(az), 0,
		0, 0, 1,
	})
	rx := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, math.Cos(el), math.Sin(el),
		0, -math.Sin(el), math.Cos(el),
	})

	var composed mat.Dense
	composed.Mul(rx, rz)

	var t viewTransform
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			t.m[row*3+col] = composed.At(row, col)
		}
	}
	return t
}

// apply rotates a centered world point and returns (screen-u, screen-v, depth).
// Depth increases toward the viewer.
func (t viewTransform) apply(x, y, z float64) (float64, float64, float64) {
	u := t.m[0]*x + t.m[1]*y + t.m[2]*z
	depth := t.m[3]*x + t.m[4]*y + t.m[5]*z
	v := t.m[6]*x + t.m[7]*y + t.m[8]*z
	return u, v, -depth
}

// drawLine rasterizes a line segment by uniform stepping. Out-of-bounds
// pixels are dropped by the image's own bounds check.
func drawLine(img *image.RGBA, x0, y0, x1, y1 float64, c color.RGBA) {
	dx := x1 - x0
	dy := y1 - y0
	steps := int(math.Max(math.Abs(dx), math.Abs(dy))) + 1
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		img.Set(int(math.Round(x0+dx*f)), int(math.Round(y0+dy*f)), c)
	}
}

// fillCircle rasterizes a filled disc centered at (cx, cy).
func fillCircle(img *image.RGBA, cx, cy, radius float64, c color.RGBA) {
	if radius <= 0 || math.IsNaN(cx) || math.IsNaN(cy) {
		return
	}
	r := int(math.Ceil(radius))
	rsq := radius * radius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) <= rsq {
				img.Set(int(cx)+dx, int(cy)+dy, c)
			}
		}
	}
}

// drawText renders a label with the fixed 7x13 face. (x, y) is the baseline
// origin of the first glyph.
func drawText(img *image.RGBA, text string, x, y int, c color.RGBA) {
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}
