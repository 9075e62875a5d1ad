package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-grid-mcp/internal/export"
	"github.com/ironsheep/image-grid-mcp/internal/grid"
	"github.com/ironsheep/image-grid-mcp/internal/imaging"
	"github.com/ironsheep/image-grid-mcp/internal/logging"
)

// splitOptions holds the split command's flags.
type splitOptions struct {
	count          int
	mode           string
	marginTB       int
	marginSide     int
	frame          bool
	frameStyle     string
	frameThickness int
	frameColor     string
	edgePadding    int

	out      string
	strategy string
	format   string
	name     string
}

func newSplitCmd() *cobra.Command {
	def := grid.DefaultConfig()
	opts := &splitOptions{}

	cmd := &cobra.Command{
		Use:   "split <image>",
		Short: "Render an image into grid tiles and export them",
		Long: `Render an image into a 3-column grid of 1080x1350 tiles and write the tiles
plus a preview of the whole grid.

Tiles are numbered in reading order. A profile page shows the most recent
post first, so upload them in the printed posting order (last tile first).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.count, "count", "n", def.TileCount, "number of tiles, a multiple of 3")
	f.StringVarP(&opts.mode, "mode", "m", def.Mode.String(), "resize mode: cover or fit")
	f.IntVar(&opts.marginTB, "margin-tb", def.MarginTopBottom, "black margin above the first and below the last row")
	f.IntVar(&opts.marginSide, "margin-side", def.MarginSide, "black margin outside the left and right columns")
	f.BoolVar(&opts.frame, "frame", def.FrameEnabled, "draw frame lines along the outer border")
	f.StringVar(&opts.frameStyle, "frame-style", def.FrameStyle.String(), "frame style: outer or individual")
	f.IntVar(&opts.frameThickness, "frame-thickness", def.FrameThickness, "frame line thickness in pixels")
	f.StringVar(&opts.frameColor, "frame-color", imaging.HexString(grid.DefaultFrameColor), "frame color as #RRGGBB")
	f.IntVar(&opts.edgePadding, "edge-padding", 0, "black band on the inner seam of the outer columns, 0 disables")
	f.StringVarP(&opts.out, "out", "o", ".", "output directory")
	f.StringVar(&opts.strategy, "strategy", export.StrategyZip, "export strategy: zip or files")
	f.StringVar(&opts.format, "format", string(export.FormatPNG), "image format: png or jpeg")
	f.StringVar(&opts.name, "name", "", "base name for output files (default: source file name)")

	return cmd
}

// config converts the flags into a grid configuration.
func (o *splitOptions) config() (grid.Config, error) {
	mode, err := grid.ParseMode(o.mode)
	if err != nil {
		return grid.Config{}, err
	}
	style, err := grid.ParseFrameStyle(o.frameStyle)
	if err != nil {
		return grid.Config{}, err
	}
	color, err := imaging.ParseHexColor(o.frameColor)
	if err != nil {
		return grid.Config{}, &grid.ConfigError{Field: "frame_color", Reason: err.Error()}
	}

	return grid.Config{
		TileCount:          o.count,
		Mode:               mode,
		MarginTopBottom:    o.marginTB,
		MarginSide:         o.marginSide,
		FrameEnabled:       o.frame,
		FrameStyle:         style,
		FrameThickness:     o.frameThickness,
		FrameColor:         color,
		EdgePaddingEnabled: o.edgePadding != 0,
		EdgePaddingAmount:  o.edgePadding,
	}, nil
}

func runSplit(cmd *cobra.Command, opts *splitOptions, path string) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	exp, err := export.New(opts.strategy, opts.out, format)
	if err != nil {
		return err
	}

	src, err := imaging.NewImageCache().Load(path)
	if err != nil {
		return err
	}

	res, err := grid.Render(src, cfg)
	if err != nil {
		return err
	}

	name := opts.name
	if name == "" {
		name = export.BaseName(path)
	}
	logging.Logger().Info("exporting grid", "name", name, "tiles", cfg.TileCount, "strategy", opts.strategy)

	result, err := exp.Export(cmd.Context(), export.TileSet{
		Name:      name,
		TileCount: cfg.TileCount,
		Tiles:     res.Tiles,
		Preview:   res.Preview,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %d tiles to %s\n", len(result.Files), result.Path)
	if result.Preview != "" {
		fmt.Fprintf(out, "Preview: %s\n", result.Preview)
	}
	fmt.Fprintln(out, "Posting order:")
	for i, f := range result.PostingOrder {
		fmt.Fprintf(out, "  %d. %s\n", i+1, f)
	}
	return nil
}
