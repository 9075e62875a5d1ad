package grid

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// resampleFilter is the interpolation used for all scaling.
var resampleFilter = imaging.Lanczos

// roundingSlack absorbs float error when converting target sizes back to
// source pixels.
const roundingSlack = 1e-9

// Resize scales src into a w×h buffer under the given mode.
//
// Cover scales by the larger ratio and keeps the centred w×h window, so no
// background is visible. The source is cropped before scaling so memory
// follows the output size, not the overflow. Fit scales by the smaller ratio (dimensions
// rounded to nearest) and centres the result on a background-filled canvas.
// w and h must be positive; src must not be empty.
func Resize(src image.Image, w, h int, mode Mode) *image.NRGBA {
	if mode == ModeFit {
		return resizeFit(src, w, h)
	}
	return resizeCover(src, w, h)
}

func resizeCover(src image.Image, w, h int) *image.NRGBA {
	cw, ch := coverCropSize(src.Bounds().Dx(), src.Bounds().Dy(), w, h)
	return imaging.Resize(imaging.CropCenter(src, cw, ch), w, h, resampleFilter)
}

// coverCropSize returns the centred source region, in source pixels, that
// cover scaling keeps. It has the target's aspect ratio and spans the full
// source along one axis, so scaling happens after the overflow is dropped.
func coverCropSize(sw, sh, w, h int) (cw, ch int) {
	scale := math.Max(float64(w)/float64(sw), float64(h)/float64(sh))
	cw = clampInt(int(math.Round(float64(w)/scale+roundingSlack)), 1, sw)
	ch = clampInt(int(math.Round(float64(h)/scale+roundingSlack)), 1, sh)
	return cw, ch
}

func resizeFit(src image.Image, w, h int) *image.NRGBA {
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	scale := math.Min(float64(w)/float64(sw), float64(h)/float64(sh))
	newW := clampInt(int(math.Round(float64(sw)*scale)), 1, w)
	newH := clampInt(int(math.Round(float64(sh)*scale)), 1, h)

	canvas := imaging.New(w, h, Background)
	scaled := imaging.Resize(src, newW, newH, resampleFilter)
	return imaging.Paste(canvas, scaled, image.Pt((w-newW)/2, (h-newH)/2))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
