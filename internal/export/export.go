package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/image-grid-mcp/internal/grid"
)

// Strategy names accepted by New.
const (
	StrategyZip   = "zip"
	StrategyFiles = "files"
)

// JPEGQuality is used for every JPEG tile.
const JPEGQuality = 95

// Format is the on-disk encoding of tiles and preview.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// ParseFormat accepts "png", "jpeg" or "jpg". An empty string means PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	}
	return "", fmt.Errorf("unknown format %q (want png or jpeg)", s)
}

// ext returns the file extension for f, including the dot.
func (f Format) ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return ".png"
}

func (f Format) encoder() imgio.Encoder {
	if f == FormatJPEG {
		return imgio.JPEGEncoder(JPEGQuality)
	}
	return imgio.PNGEncoder()
}

// TileSet is one finished render ready to be written out.
type TileSet struct {
	// Name is the base name used for every output file, usually the source
	// image name without directory or extension.
	Name      string
	TileCount int
	// Tiles are in row-major order.
	Tiles   []grid.Tile
	Preview image.Image
}

// Result describes what an exporter wrote.
type Result struct {
	// Path is the archive file for zip exports, or the output directory.
	Path string `json:"path"`

	// Files lists tile names in index order: archive entry names for zip
	// exports, file paths otherwise.
	Files []string `json:"files"`

	// Preview is the preview's entry name or file path.
	Preview string `json:"preview,omitempty"`

	// PostingOrder is Files reversed. A profile grid shows the most recent
	// post top-left, so tiles are uploaded last-to-first.
	PostingOrder []string `json:"posting_order"`
}

// Exporter writes a TileSet somewhere durable.
type Exporter interface {
	Export(ctx context.Context, set TileSet) (*Result, error)
}

// New returns the exporter for strategy ("zip" or "files") writing format
// files into dir. An empty strategy means zip.
func New(strategy, dir string, format Format) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "", StrategyZip:
		return &ZipExporter{Dir: dir, Format: format}, nil
	case StrategyFiles, "folder":
		return &FolderExporter{Dir: dir, Format: format, Interval: DefaultInterval}, nil
	}
	return nil, fmt.Errorf("unknown export strategy %q (want zip or files)", strategy)
}

// PostingOrder returns names in reverse.
func PostingOrder(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[len(names)-1-i] = n
	}
	return out
}

// BaseName strips the directory and extension from a source path. It falls
// back to "image" when nothing is left.
func BaseName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "image"
	}
	return base
}

func validate(set TileSet) error {
	if len(set.Tiles) == 0 {
		return fmt.Errorf("nothing to export: tile set is empty")
	}
	if set.TileCount != len(set.Tiles) {
		return fmt.Errorf("tile set declares %d tiles but holds %d", set.TileCount, len(set.Tiles))
	}
	return nil
}

// encodeAll encodes images concurrently and returns the encoded bytes in
// input order. Encoding a full tile as PNG dominates export time.
func encodeAll(ctx context.Context, images []image.Image, enc imgio.Encoder) ([][]byte, error) {
	out := make([][]byte, len(images))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())

	for i, img := range images {
		i, img := i, img
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := enc(&buf, img); err != nil {
				return fmt.Errorf("failed to encode image %d: %w", i+1, err)
			}
			out[i] = buf.Bytes()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// images returns the tiles followed by the preview, when there is one.
func (s TileSet) images() []image.Image {
	imgs := make([]image.Image, 0, len(s.Tiles)+1)
	for _, t := range s.Tiles {
		imgs = append(imgs, t.Image)
	}
	if s.Preview != nil {
		imgs = append(imgs, s.Preview)
	}
	return imgs
}
