package detection

import (
	"image"
	"image/color"
	"testing"
)

// createBlackImage returns an opaque black NRGBA image.
func createBlackImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

func TestContentBounds_AllBlack(t *testing.T) {
	img := createBlackImage(50, 40)

	if b, ok := ContentBounds(img, img.Bounds(), NearBlackThreshold); ok {
		t.Errorf("expected no content, got %+v", b)
	}
}

func TestContentBounds_SinglePixel(t *testing.T) {
	img := createBlackImage(50, 40)
	img.SetNRGBA(10, 20, color.NRGBA{R: 6, A: 255})

	b, ok := ContentBounds(img, img.Bounds(), NearBlackThreshold)
	if !ok {
		t.Fatal("expected content")
	}
	want := Bounds{X1: 10, Y1: 20, X2: 10, Y2: 20}
	if b != want {
		t.Errorf("got %+v, want %+v", b, want)
	}
	if b.Width() != 1 || b.Height() != 1 {
		t.Errorf("size: got %dx%d, want 1x1", b.Width(), b.Height())
	}
}

func TestContentBounds_ThresholdIsInclusive(t *testing.T) {
	img := createBlackImage(20, 20)
	img.SetNRGBA(5, 5, color.NRGBA{R: 5, G: 5, B: 5, A: 255})

	if _, ok := ContentBounds(img, img.Bounds(), NearBlackThreshold); ok {
		t.Error("pixel at threshold should count as background")
	}
	if _, ok := ContentBounds(img, img.Bounds(), 0); !ok {
		t.Error("pixel above zero threshold should count as content")
	}
}

func TestContentBounds_AnyChannel(t *testing.T) {
	tests := []struct {
		name string
		c    color.NRGBA
	}{
		{"red", color.NRGBA{R: 200, A: 255}},
		{"green", color.NRGBA{G: 200, A: 255}},
		{"blue", color.NRGBA{B: 200, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createBlackImage(10, 10)
			img.SetNRGBA(3, 4, tt.c)
			if _, ok := ContentBounds(img, img.Bounds(), NearBlackThreshold); !ok {
				t.Errorf("%s channel should count as content", tt.name)
			}
		})
	}
}

func TestContentBounds_TightBox(t *testing.T) {
	img := createBlackImage(100, 100)
	for y := 30; y < 70; y++ {
		for x := 15; x < 85; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}

	b, ok := ContentBounds(img, img.Bounds(), NearBlackThreshold)
	if !ok {
		t.Fatal("expected content")
	}
	want := Bounds{X1: 15, Y1: 30, X2: 84, Y2: 69}
	if b != want {
		t.Errorf("got %+v, want %+v", b, want)
	}
	if b.Width() != 70 || b.Height() != 40 {
		t.Errorf("size: got %dx%d, want 70x40", b.Width(), b.Height())
	}
}

func TestContentBounds_RegionLimitsScan(t *testing.T) {
	img := createBlackImage(100, 100)
	img.SetNRGBA(5, 5, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(60, 70, color.NRGBA{R: 255, A: 255})

	b, ok := ContentBounds(img, image.Rect(50, 50, 100, 100), NearBlackThreshold)
	if !ok {
		t.Fatal("expected content")
	}
	want := Bounds{X1: 60, Y1: 70, X2: 60, Y2: 70}
	if b != want {
		t.Errorf("got %+v, want %+v", b, want)
	}

	if _, ok := ContentBounds(img, image.Rect(10, 10, 50, 50), NearBlackThreshold); ok {
		t.Error("region without content should report none")
	}
}

func TestContentBounds_RegionClipped(t *testing.T) {
	img := createBlackImage(20, 20)
	img.SetNRGBA(19, 19, color.NRGBA{G: 255, A: 255})

	b, ok := ContentBounds(img, image.Rect(-10, -10, 100, 100), NearBlackThreshold)
	if !ok || b != (Bounds{X1: 19, Y1: 19, X2: 19, Y2: 19}) {
		t.Errorf("got %+v (%v)", b, ok)
	}

	if _, ok := ContentBounds(img, image.Rect(30, 30, 40, 40), NearBlackThreshold); ok {
		t.Error("region outside the image should report none")
	}
}

func TestContentBounds_IgnoresAlpha(t *testing.T) {
	img := createBlackImage(10, 10)
	img.SetNRGBA(2, 2, color.NRGBA{A: 0})

	if _, ok := ContentBounds(img, img.Bounds(), NearBlackThreshold); ok {
		t.Error("alpha alone should not count as content")
	}
}
