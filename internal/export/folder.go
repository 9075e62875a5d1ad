package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/ironsheep/image-grid-mcp/internal/logging"
)

// DefaultInterval spaces out individual file writes.
const DefaultInterval = 100 * time.Millisecond

// FolderExporter writes each tile and the preview as separate files.
//
// Files are named <name>_grid<count>_01.png ... and <name>_grid<count>_preview.png
// and are written one at a time, at most one per Interval.
type FolderExporter struct {
	Dir      string
	Format   Format
	Interval time.Duration
}

// Export encodes the tile set and writes the files in index order.
func (e *FolderExporter) Export(ctx context.Context, set TileSet) (*Result, error) {
	if err := validate(set); err != nil {
		return nil, err
	}
	format := e.Format
	if format == "" {
		format = FormatPNG
	}

	encoded, err := encodeAll(ctx, set.images(), format.encoder())
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var limiter *rate.Limiter
	if e.Interval > 0 {
		limiter = rate.NewLimiter(rate.Every(e.Interval), 1)
	}
	write := func(name string, data []byte) (string, error) {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return "", err
			}
		}
		path := filepath.Join(e.Dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", name, err)
		}
		return path, nil
	}

	prefix := fmt.Sprintf("%s_grid%d", set.Name, set.TileCount)
	result := &Result{Path: e.Dir}

	for i := range set.Tiles {
		path, err := write(fmt.Sprintf("%s_%02d%s", prefix, i+1, format.ext()), encoded[i])
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
	}
	if set.Preview != nil {
		path, err := write(prefix+"_preview"+format.ext(), encoded[len(set.Tiles)])
		if err != nil {
			return nil, err
		}
		result.Preview = path
	}

	result.PostingOrder = PostingOrder(result.Files)
	logging.Logger().Info("exported grid files", "dir", e.Dir, "tiles", len(set.Tiles))
	return result, nil
}
