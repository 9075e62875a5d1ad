package grid

import (
	"image"
	"image/color"

	"github.com/ironsheep/image-grid-mcp/internal/detection"
)

// Edges says which sides of a tile's frame rectangle get a line.
type Edges struct {
	Top, Bottom, Left, Right bool
}

// Any reports whether at least one edge is eligible.
func (e Edges) Any() bool {
	return e.Top || e.Bottom || e.Left || e.Right
}

// FrameEdges returns the edges eligible for cell (r, c).
//
// Only sides on the physical border of the assembled grid qualify, so the
// lines of all tiles join into one border around the whole post. A side
// that carries edge padding never qualifies: the image does not reach it.
func FrameEdges(p *LayoutPlan, r, c int) Edges {
	padLeft, padRight := p.Padding(c)
	return Edges{
		Top:    r == 0,
		Bottom: r == p.Rows()-1,
		Left:   c == 0 && padLeft == 0,
		Right:  c == p.Cols()-1 && padRight == 0,
	}
}

// DrawFrame strokes the eligible edges of b onto dst.
//
// Each logical edge is a 1-pixel line covering whole pixels (a vector canvas
// would offset it by half a pixel to get the same crisp result). Thickness
// repeats the edge at successive 1-pixel insets t = 0..thickness-1, moving
// toward the inside of b. Strokes overwrite; there is no blending. Lines are
// clipped to dst.
func DrawFrame(dst *image.NRGBA, b detection.Bounds, edges Edges, thickness int, c color.Color) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	for t := 0; t < thickness; t++ {
		if edges.Top {
			hline(dst, b.X1, b.X2, b.Y1+t, nc)
		}
		if edges.Bottom {
			hline(dst, b.X1, b.X2, b.Y2-t, nc)
		}
		if edges.Left {
			vline(dst, b.X1+t, b.Y1, b.Y2, nc)
		}
		if edges.Right {
			vline(dst, b.X2-t, b.Y1, b.Y2, nc)
		}
	}
}

// hline sets pixels x1..x2 (inclusive) on row y.
func hline(dst *image.NRGBA, x1, x2, y int, c color.NRGBA) {
	r := dst.Bounds()
	if y < r.Min.Y || y >= r.Max.Y {
		return
	}
	x1 = max(x1, r.Min.X)
	x2 = min(x2, r.Max.X-1)
	for x := x1; x <= x2; x++ {
		setPixel(dst, x, y, c)
	}
}

// vline sets pixels y1..y2 (inclusive) on column x.
func vline(dst *image.NRGBA, x, y1, y2 int, c color.NRGBA) {
	r := dst.Bounds()
	if x < r.Min.X || x >= r.Max.X {
		return
	}
	y1 = max(y1, r.Min.Y)
	y2 = min(y2, r.Max.Y-1)
	for y := y1; y <= y2; y++ {
		setPixel(dst, x, y, c)
	}
}

func setPixel(dst *image.NRGBA, x, y int, c color.NRGBA) {
	i := dst.PixOffset(x, y)
	dst.Pix[i+0] = c.R
	dst.Pix[i+1] = c.G
	dst.Pix[i+2] = c.B
	dst.Pix[i+3] = c.A
}
