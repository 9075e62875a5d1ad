package grid

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-grid-mcp/internal/detection"
	"github.com/ironsheep/image-grid-mcp/internal/logging"
)

// Tile is one finished grid cell. Image is always TileWidth×TileHeight.
type Tile struct {
	// Index is the 1-based position in row-major order.
	Index int
	Row   int
	Col   int
	Image *image.NRGBA
}

// Result is the output of one render pass.
type Result struct {
	// Tiles are in row-major order; Tiles[i].Index == i+1.
	Tiles []Tile

	// Preview is the assembled grid, (Cols*TileWidth)×(Rows*TileHeight).
	Preview *image.NRGBA

	// Plan is the layout the tiles were cut with.
	Plan *LayoutPlan
}

// Render slices src into a grid of tiles according to cfg.
//
// Configuration is validated first; a *ConfigError is returned before any
// pixel work and no partial output is produced. Every other step is total.
// Render keeps no state between calls and never modifies src.
func Render(src image.Image, cfg Config) (*Result, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, &ConfigError{Field: "source", Reason: "image is empty"}
	}
	plan, err := Plan(cfg)
	if err != nil {
		return nil, err
	}

	canvasW, canvasH := plan.CanvasSize()
	log := logging.Logger()
	log.Debug("grid render",
		"tiles", cfg.TileCount,
		"mode", cfg.Mode.String(),
		"source", src.Bounds().Size().String(),
		"canvas_w", canvasW,
		"canvas_h", canvasH,
	)

	canvas := Resize(flatten(src), canvasW, canvasH, cfg.Mode)

	tiles := make([]Tile, 0, cfg.TileCount)
	index := 1
	for r := 0; r < plan.Rows(); r++ {
		for c := 0; c < plan.Cols(); c++ {
			tiles = append(tiles, Tile{
				Index: index,
				Row:   r,
				Col:   c,
				Image: composeTile(canvas, plan, cfg, r, c),
			})
			index++
		}
	}

	return &Result{
		Tiles:   tiles,
		Preview: Preview(tiles, plan.Rows()),
		Plan:    plan,
	}, nil
}

// composeTile builds the tile for cell (r, c) from the shared canvas.
func composeTile(canvas *image.NRGBA, plan *LayoutPlan, cfg Config, r, c int) *image.NRGBA {
	tileW, tileH := plan.TileSize()
	tile := imaging.New(tileW, tileH, Background)

	dst := plan.ImageRect(r, c)
	draw.Draw(tile, dst, canvas, plan.SourceRect(r, c).Min, draw.Src)

	if !cfg.FrameEnabled {
		return tile
	}

	edges := FrameEdges(plan, r, c)
	if !edges.Any() {
		return tile
	}

	box := detection.Bounds{X1: dst.Min.X, Y1: dst.Min.Y, X2: dst.Max.X - 1, Y2: dst.Max.Y - 1}
	if cfg.FrameStyle == FrameIndividual && cfg.Mode == ModeFit {
		// Letterboxing leaves background inside the reserved rectangle;
		// the frame follows the image that is actually there.
		found, ok := detection.ContentBounds(tile, dst, detection.NearBlackThreshold)
		if !ok {
			return tile
		}
		box = found
	}

	DrawFrame(tile, box, edges, cfg.FrameThickness, cfg.frameColor())
	return tile
}

// Preview assembles tiles into one image, placing each at (col*W, row*H)
// over a background-filled canvas of Cols×rows tiles.
func Preview(tiles []Tile, rows int) *image.NRGBA {
	preview := imaging.New(Cols*TileWidth, rows*TileHeight, Background)
	for _, t := range tiles {
		at := image.Pt(t.Col*TileWidth, t.Row*TileHeight)
		draw.Draw(preview, image.Rectangle{Min: at, Max: at.Add(t.Image.Bounds().Size())}, t.Image, t.Image.Bounds().Min, draw.Src)
	}
	return preview
}

// flatten lays src over the opaque background so transparent areas render
// as background rather than leaking through the resampler.
func flatten(src image.Image) image.Image {
	if o, ok := src.(interface{ Opaque() bool }); ok && o.Opaque() {
		return src
	}
	b := src.Bounds()
	dst := imaging.New(b.Dx(), b.Dy(), Background)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}
