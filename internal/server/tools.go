package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// gridConfigProperties returns the schema properties shared by every tool
// that accepts a grid configuration.
func gridConfigProperties() map[string]interface{} {
	return map[string]interface{}{
		"tile_count": map[string]interface{}{
			"type":        "integer",
			"description": "Number of tiles, a positive multiple of 3 (3 columns, tile_count/3 rows). Default 6",
			"default":     6,
		},
		"mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"cover", "fit"},
			"description": "cover fills every tile and crops overflow; fit keeps the whole image and letterboxes with black. Default cover",
			"default":     "cover",
		},
		"margin_top_bottom": map[string]interface{}{
			"type":        "integer",
			"description": "Black margin above the first row and below the last row, in pixels. Default 80",
			"default":     80,
		},
		"margin_side": map[string]interface{}{
			"type":        "integer",
			"description": "Black margin on the outer side of the left and right columns, in pixels. Default 80",
			"default":     80,
		},
		"frame": map[string]interface{}{
			"type":        "boolean",
			"description": "Draw frame lines along the outer border of the grid. Default true",
			"default":     true,
		},
		"frame_style": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"outer", "individual"},
			"description": "outer frames the image area; individual in fit mode hugs the visible image. Default outer",
			"default":     "outer",
		},
		"frame_thickness": map[string]interface{}{
			"type":        "integer",
			"description": "Frame line thickness in pixels (at least 1). Default 4",
			"default":     4,
		},
		"frame_color": map[string]interface{}{
			"type":        "string",
			"description": "Frame color as #RRGGBB. Default #FFFFFF",
			"default":     "#FFFFFF",
		},
		"edge_padding": map[string]interface{}{
			"type":        "boolean",
			"description": "Insert a black band on the inner seam of the left and right columns. Default false",
			"default":     false,
		},
		"edge_padding_amount": map[string]interface{}{
			"type":        "integer",
			"description": "Width of the edge padding band in pixels. Default 40",
			"default":     40,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	renderProps := gridConfigProperties()
	renderProps["path"] = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the source image",
	}
	renderProps["name"] = map[string]interface{}{
		"type":        "string",
		"description": "Base name for exported files. Defaults to the source file name without extension",
	}
	renderProps["preview_width"] = map[string]interface{}{
		"type":        "integer",
		"description": "Maximum width of the returned preview thumbnail. Default 540",
		"default":     DefaultPreviewWidth,
	}

	return []Tool{
		{
			Name:        "image_load",
			Description: "Load a source image and return its dimensions, format and aspect ratio.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "grid_layout",
			Description: "Validate a grid configuration and return the computed layout (column widths, row heights, canvas size) without rendering.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": gridConfigProperties(),
			},
		},
		{
			Name:        "grid_render",
			Description: "Split an image into a 3-column grid of 1080x1350 tiles. Returns a render_id for grid_tile and grid_export, the layout, and a preview thumbnail as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": renderProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "grid_tile",
			Description: "Return one tile of a previous render as base64 PNG. Tiles are numbered 1..tile_count in reading order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"render_id": map[string]interface{}{
						"type":        "string",
						"description": "ID returned by grid_render",
					},
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "1-based tile index",
					},
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Optional maximum width; the tile is downscaled to fit. 0 returns full size",
						"default":     0,
					},
				},
				"required": []string{"render_id", "index"},
			},
		},
		{
			Name:        "grid_export",
			Description: "Write the tiles and preview of a previous render to disk, as one zip archive or as individual files. Returns the written paths and the posting order (last tile first).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"render_id": map[string]interface{}{
						"type":        "string",
						"description": "ID returned by grid_render",
					},
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory to write into; created if missing",
					},
					"strategy": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"zip", "files"},
						"description": "zip writes one archive; files writes each image separately. Default zip",
						"default":     "zip",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "jpeg"},
						"description": "Image encoding. Default png",
						"default":     "png",
					},
				},
				"required": []string{"render_id", "output_dir"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
