package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/image-grid-mcp/internal/export"
	"github.com/ironsheep/image-grid-mcp/internal/grid"
	"github.com/ironsheep/image-grid-mcp/internal/imaging"
	"github.com/ironsheep/image-grid-mcp/internal/logging"
)

// DefaultPreviewWidth bounds the preview thumbnail returned by grid_render.
const DefaultPreviewWidth = 540

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "grid_render").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		logging.Logger().Warn("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images or cached renders as needed
//  4. Calls the grid engine or an exporter
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "grid_layout":
		return s.handleGridLayout(args)
	case "grid_render":
		return s.handleGridRender(args)
	case "grid_tile":
		return s.handleGridTile(args)
	case "grid_export":
		return s.handleGridExport(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Source Image Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Grid Configuration ===

// gridConfigArgs mirrors grid.Config. Numeric and boolean fields are pointers
// because zero is a meaningful value (no margin, frame off) and must not be
// mistaken for "use the default".
type gridConfigArgs struct {
	TileCount         *int   `json:"tile_count"`
	Mode              string `json:"mode"`
	MarginTopBottom   *int   `json:"margin_top_bottom"`
	MarginSide        *int   `json:"margin_side"`
	Frame             *bool  `json:"frame"`
	FrameStyle        string `json:"frame_style"`
	FrameThickness    *int   `json:"frame_thickness"`
	FrameColor        string `json:"frame_color"`
	EdgePadding       *bool  `json:"edge_padding"`
	EdgePaddingAmount *int   `json:"edge_padding_amount"`
}

// config overlays the supplied arguments on grid.DefaultConfig.
func (a gridConfigArgs) config() (grid.Config, error) {
	cfg := grid.DefaultConfig()

	if a.TileCount != nil {
		cfg.TileCount = *a.TileCount
	}
	if a.Mode != "" {
		mode, err := grid.ParseMode(a.Mode)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = mode
	}
	if a.MarginTopBottom != nil {
		cfg.MarginTopBottom = *a.MarginTopBottom
	}
	if a.MarginSide != nil {
		cfg.MarginSide = *a.MarginSide
	}
	if a.Frame != nil {
		cfg.FrameEnabled = *a.Frame
	}
	if a.FrameStyle != "" {
		style, err := grid.ParseFrameStyle(a.FrameStyle)
		if err != nil {
			return cfg, err
		}
		cfg.FrameStyle = style
	}
	if a.FrameThickness != nil {
		cfg.FrameThickness = *a.FrameThickness
	}
	if a.FrameColor != "" {
		c, err := imaging.ParseHexColor(a.FrameColor)
		if err != nil {
			return cfg, &grid.ConfigError{Field: "frame_color", Reason: err.Error()}
		}
		cfg.FrameColor = c
	}
	if a.EdgePadding != nil {
		cfg.EdgePaddingEnabled = *a.EdgePadding
	}
	if a.EdgePaddingAmount != nil {
		cfg.EdgePaddingAmount = *a.EdgePaddingAmount
	}
	return cfg, nil
}

// ColumnInfo describes one grid column of a layout.
type ColumnInfo struct {
	Index        int `json:"index"`
	MarginLeft   int `json:"margin_left"`
	ContentWidth int `json:"content_width"`
	PadLeft      int `json:"pad_left"`
	PadRight     int `json:"pad_right"`
	ImageWidth   int `json:"image_width"`
}

// RowInfo describes one grid row of a layout.
type RowInfo struct {
	Index     int `json:"index"`
	MarginTop int `json:"margin_top"`
	Height    int `json:"height"`
}

// LayoutSummary is the JSON view of a grid.LayoutPlan.
type LayoutSummary struct {
	Rows         int          `json:"rows"`
	Cols         int          `json:"cols"`
	TileWidth    int          `json:"tile_width"`
	TileHeight   int          `json:"tile_height"`
	CanvasWidth  int          `json:"canvas_width"`
	CanvasHeight int          `json:"canvas_height"`
	PreviewSize  [2]int       `json:"preview_size"`
	Columns      []ColumnInfo `json:"columns"`
	RowDetails   []RowInfo    `json:"row_details"`
}

func summarizeLayout(p *grid.LayoutPlan) LayoutSummary {
	tw, th := p.TileSize()
	cw, ch := p.CanvasSize()
	sum := LayoutSummary{
		Rows:         p.Rows(),
		Cols:         p.Cols(),
		TileWidth:    tw,
		TileHeight:   th,
		CanvasWidth:  cw,
		CanvasHeight: ch,
		PreviewSize:  [2]int{p.Cols() * tw, p.Rows() * th},
	}
	for c := 0; c < p.Cols(); c++ {
		padLeft, padRight := p.Padding(c)
		sum.Columns = append(sum.Columns, ColumnInfo{
			Index:        c,
			MarginLeft:   p.MarginLeft(c),
			ContentWidth: p.ContentWidth(c),
			PadLeft:      padLeft,
			PadRight:     padRight,
			ImageWidth:   p.ActualWidth(c),
		})
	}
	for r := 0; r < p.Rows(); r++ {
		sum.RowDetails = append(sum.RowDetails, RowInfo{
			Index:     r,
			MarginTop: p.MarginTop(r),
			Height:    p.RowHeight(r),
		})
	}
	return sum
}

// === Grid Handlers ===

func (s *Server) handleGridLayout(args json.RawMessage) (interface{}, error) {
	var a gridConfigArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	plan, err := grid.Plan(cfg)
	if err != nil {
		return nil, err
	}
	return summarizeLayout(plan), nil
}

type gridRenderArgs struct {
	Path string `json:"path"`
	Name string `json:"name"`
	gridConfigArgs
	PreviewWidth int `json:"preview_width"`
}

// GridRenderResult is returned by grid_render.
type GridRenderResult struct {
	RenderID  string                `json:"render_id"`
	Name      string                `json:"name"`
	TileCount int                   `json:"tile_count"`
	Mode      string                `json:"mode"`
	Layout    LayoutSummary         `json:"layout"`
	Preview   *imaging.EncodedImage `json:"preview"`
}

func (s *Server) handleGridRender(args json.RawMessage) (interface{}, error) {
	var a gridRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.PreviewWidth == 0 {
		a.PreviewWidth = DefaultPreviewWidth
	}
	if a.Name == "" {
		a.Name = export.BaseName(a.Path)
	}

	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	res, err := grid.Render(img, cfg)
	if err != nil {
		return nil, err
	}

	preview, err := imaging.EncodePNGBase64(res.Preview, a.PreviewWidth)
	if err != nil {
		return nil, err
	}

	id := s.storeRender(&render{Name: a.Name, Config: cfg, Result: res})
	logging.Logger().Info("grid rendered", "render_id", id, "path", a.Path, "tiles", cfg.TileCount)

	return &GridRenderResult{
		RenderID:  id,
		Name:      a.Name,
		TileCount: cfg.TileCount,
		Mode:      cfg.Mode.String(),
		Layout:    summarizeLayout(res.Plan),
		Preview:   preview,
	}, nil
}

type gridTileArgs struct {
	RenderID string `json:"render_id"`
	Index    int    `json:"index"`
	MaxWidth int    `json:"max_width"`
}

// GridTileResult is returned by grid_tile.
type GridTileResult struct {
	RenderID string `json:"render_id"`
	Index    int    `json:"index"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	*imaging.EncodedImage
}

func (s *Server) handleGridTile(args json.RawMessage) (interface{}, error) {
	var a gridTileArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	r, err := s.lookupRender(a.RenderID)
	if err != nil {
		return nil, err
	}
	tiles := r.Result.Tiles
	if a.Index < 1 || a.Index > len(tiles) {
		return nil, fmt.Errorf("tile index %d out of range (1-%d)", a.Index, len(tiles))
	}

	tile := tiles[a.Index-1]
	enc, err := imaging.EncodePNGBase64(tile.Image, a.MaxWidth)
	if err != nil {
		return nil, err
	}
	return &GridTileResult{
		RenderID:     a.RenderID,
		Index:        tile.Index,
		Row:          tile.Row,
		Col:          tile.Col,
		EncodedImage: enc,
	}, nil
}

type gridExportArgs struct {
	RenderID  string `json:"render_id"`
	Strategy  string `json:"strategy"`
	OutputDir string `json:"output_dir"`
	Format    string `json:"format"`
}

func (s *Server) handleGridExport(args json.RawMessage) (interface{}, error) {
	var a gridExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputDir == "" {
		return nil, fmt.Errorf("output_dir is required")
	}
	r, err := s.lookupRender(a.RenderID)
	if err != nil {
		return nil, err
	}

	format, err := export.ParseFormat(a.Format)
	if err != nil {
		return nil, err
	}
	exp, err := export.New(a.Strategy, a.OutputDir, format)
	if err != nil {
		return nil, err
	}

	return exp.Export(context.Background(), export.TileSet{
		Name:      r.Name,
		TileCount: r.Config.TileCount,
		Tiles:     r.Result.Tiles,
		Preview:   r.Result.Preview,
	})
}
