package grid

import (
	"fmt"
	"image"
)

// LayoutPlan holds the derived geometry of one render. It is computed fresh
// by Plan and never modified afterwards.
//
// Widths are per column, heights per row. "Content" is the tile area left
// after outer margins; "actual" is the image-bearing part of it after edge
// padding. Only actual sizes contribute to the resized canvas.
type LayoutPlan struct {
	rows, cols    int
	tileW, tileH  int
	contentWidths []int
	padLeft       []int
	padRight      []int
	actualWidths  []int
	marginLeft    []int
	heights       []int
	marginTop     []int
	cumW          []int
	cumH          []int
	canvasW       int
	canvasH       int
}

// Plan validates cfg and computes the layout for canonical tile dimensions.
// It returns a *ConfigError when margins or padding leave no room for content.
func Plan(cfg Config) (*LayoutPlan, error) {
	return planWithSize(cfg, TileWidth, TileHeight)
}

func planWithSize(cfg Config, w, h int) (*LayoutPlan, error) {
	if err := validate(cfg, w, h); err != nil {
		return nil, err
	}

	rows := cfg.Rows()
	side := cfg.MarginSide
	tb := cfg.MarginTopBottom
	pad := cfg.edgePadding()

	p := &LayoutPlan{
		rows:          rows,
		cols:          Cols,
		tileW:         w,
		tileH:         h,
		contentWidths: make([]int, Cols),
		padLeft:       make([]int, Cols),
		padRight:      make([]int, Cols),
		actualWidths:  make([]int, Cols),
		marginLeft:    make([]int, Cols),
		heights:       make([]int, rows),
		marginTop:     make([]int, rows),
		cumW:          make([]int, Cols),
		cumH:          make([]int, rows),
	}

	for c := 0; c < Cols; c++ {
		left, right := 0, 0
		if c == 0 {
			left = side
		}
		if c == Cols-1 {
			right = side
		}
		p.marginLeft[c] = left
		p.contentWidths[c] = w - left - right

		// Padding sits on the inner seam next to each outer column.
		if c == 0 {
			p.padRight[c] = pad
		}
		if c == Cols-1 {
			p.padLeft[c] = pad
		}
		p.actualWidths[c] = p.contentWidths[c] - p.padLeft[c] - p.padRight[c]

		if c > 0 {
			p.cumW[c] = p.cumW[c-1] + p.actualWidths[c-1]
		}
		p.canvasW += p.actualWidths[c]
	}

	for r := 0; r < rows; r++ {
		top, bottom := rowMargins(r, rows, tb)
		p.marginTop[r] = top
		p.heights[r] = h - top - bottom
		if r > 0 {
			p.cumH[r] = p.cumH[r-1] + p.heights[r-1]
		}
		p.canvasH += p.heights[r]
	}

	return p, nil
}

// rowMargins returns the top and bottom margin of row r. A single row is
// bordered on both sides; otherwise only the true outer rows get a margin.
func rowMargins(r, rows, tb int) (top, bottom int) {
	if rows == 1 {
		return tb, tb
	}
	if r == 0 {
		top = tb
	}
	if r == rows-1 {
		bottom = tb
	}
	return top, bottom
}

func validate(cfg Config, w, h int) error {
	if cfg.TileCount < Cols || cfg.TileCount%Cols != 0 {
		return &ConfigError{Field: "tile_count", Reason: fmt.Sprintf("%d is not a positive multiple of %d", cfg.TileCount, Cols)}
	}
	if cfg.MarginSide < 0 {
		return &ConfigError{Field: "margin_side", Reason: "must not be negative"}
	}
	if cfg.MarginTopBottom < 0 {
		return &ConfigError{Field: "margin_top_bottom", Reason: "must not be negative"}
	}
	if cfg.MarginSide*2 >= w {
		return &ConfigError{Field: "margin_side", Reason: fmt.Sprintf("side margins too large (%d*2 >= %d)", cfg.MarginSide, w)}
	}
	rows := cfg.Rows()
	if rows == 1 && cfg.MarginTopBottom*2 >= h {
		return &ConfigError{Field: "margin_top_bottom", Reason: fmt.Sprintf("top/bottom margins too large (%d*2 >= %d)", cfg.MarginTopBottom, h)}
	}
	if rows > 1 && cfg.MarginTopBottom >= h {
		return &ConfigError{Field: "margin_top_bottom", Reason: fmt.Sprintf("top/bottom margin too large (%d >= %d)", cfg.MarginTopBottom, h)}
	}
	if cfg.FrameEnabled && cfg.FrameThickness < 1 {
		return &ConfigError{Field: "frame_thickness", Reason: "must be at least 1 when the frame is enabled"}
	}
	if cfg.EdgePaddingEnabled {
		if cfg.EdgePaddingAmount < 0 {
			return &ConfigError{Field: "edge_padding", Reason: "must not be negative"}
		}
		if cfg.EdgePaddingAmount >= w-cfg.MarginSide {
			return &ConfigError{Field: "edge_padding", Reason: fmt.Sprintf("padding %d leaves no image width in the outer columns", cfg.EdgePaddingAmount)}
		}
	}
	return nil
}

// Rows returns the number of grid rows.
func (p *LayoutPlan) Rows() int { return p.rows }

// Cols returns the number of grid columns (always 3).
func (p *LayoutPlan) Cols() int { return p.cols }

// TileSize returns the canonical tile dimensions the plan was built for.
func (p *LayoutPlan) TileSize() (w, h int) { return p.tileW, p.tileH }

// CanvasSize returns the size of the single resized canvas: the sum of the
// actual (image-bearing) widths and the sum of the row heights.
func (p *LayoutPlan) CanvasSize() (w, h int) { return p.canvasW, p.canvasH }

// ContentWidth returns column c's width after outer margins.
func (p *LayoutPlan) ContentWidth(c int) int { return p.contentWidths[c] }

// ActualWidth returns column c's image-bearing width after edge padding.
func (p *LayoutPlan) ActualWidth(c int) int { return p.actualWidths[c] }

// Padding returns the edge padding applied on the left and right of column c.
func (p *LayoutPlan) Padding(c int) (left, right int) { return p.padLeft[c], p.padRight[c] }

// RowHeight returns row r's content height after outer margins.
func (p *LayoutPlan) RowHeight(r int) int { return p.heights[r] }

// MarginLeft returns the outer margin to the left of column c.
func (p *LayoutPlan) MarginLeft(c int) int { return p.marginLeft[c] }

// MarginTop returns the outer margin above row r.
func (p *LayoutPlan) MarginTop(r int) int { return p.marginTop[r] }

// SourceRect returns the rectangle of the resized canvas that feeds cell (r, c).
// The source rectangles of all cells tile the canvas with no gap or overlap.
func (p *LayoutPlan) SourceRect(r, c int) image.Rectangle {
	x0, y0 := p.cumW[c], p.cumH[r]
	return image.Rect(x0, y0, x0+p.actualWidths[c], y0+p.heights[r])
}

// ImageRect returns where cell (r, c)'s image lands inside its tile: offset
// by the left/top margin plus any left edge padding.
func (p *LayoutPlan) ImageRect(r, c int) image.Rectangle {
	x0 := p.marginLeft[c] + p.padLeft[c]
	y0 := p.marginTop[r]
	return image.Rect(x0, y0, x0+p.actualWidths[c], y0+p.heights[r])
}
