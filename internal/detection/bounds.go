package detection

import (
	"image"
)

// NearBlackThreshold is the channel value at or below which a pixel counts as
// background. A pixel is content when any of R, G or B exceeds it.
const NearBlackThreshold = 5

// Bounds represents a rectangular bounding box in pixel coordinates.
//
// Unlike image.Rectangle, both corners are inclusive: (X2, Y2) is the last
// content pixel, which is where a frame line is drawn.
type Bounds struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (inclusive)
	Y2 int `json:"y2"` // Bottom edge (inclusive)
}

// Width returns the number of pixel columns covered.
func (b Bounds) Width() int { return b.X2 - b.X1 + 1 }

// Height returns the number of pixel rows covered.
func (b Bounds) Height() int { return b.Y2 - b.Y1 + 1 }

// ContentBounds finds the tight bounding box of content pixels inside region.
//
// Parameters:
//   - img: The rendered tile to scan. Alpha is ignored.
//   - region: The rectangle to scan, in img's coordinate space. It is clipped
//     to img's bounds.
//   - threshold: Channel cutoff; see NearBlackThreshold.
//
// Returns the bounding box in img's coordinate space and true, or a zero
// Bounds and false when every pixel in the region is at or below threshold
// on all channels. An empty result is not an error: fit-mode letterboxing
// or a black source legitimately produce it.
func ContentBounds(img *image.NRGBA, region image.Rectangle, threshold uint8) (Bounds, bool) {
	region = region.Intersect(img.Bounds())
	if region.Empty() {
		return Bounds{}, false
	}

	minX, minY := region.Max.X, region.Max.Y
	maxX, maxY := region.Min.X-1, region.Min.Y-1

	for y := region.Min.Y; y < region.Max.Y; y++ {
		i := img.PixOffset(region.Min.X, y)
		for x := region.Min.X; x < region.Max.X; x++ {
			if img.Pix[i] > threshold || img.Pix[i+1] > threshold || img.Pix[i+2] > threshold {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
			i += 4
		}
	}

	if maxX < region.Min.X {
		return Bounds{}, false
	}
	return Bounds{X1: minX, Y1: minY, X2: maxX, Y2: maxY}, true
}
