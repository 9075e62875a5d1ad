package export

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ironsheep/image-grid-mcp/internal/logging"
)

// createFile opens the archive for writing. Tests replace it to simulate
// write failures.
var createFile = func(path string) (*os.File, error) { return os.Create(path) }

// ZipExporter writes all tiles and the preview into a single archive.
//
// The archive is <Dir>/<name>_grid_<count>.zip and holds one folder
// <name>_grid_<count>/ containing grid_01.png, grid_02.png, ... and
// preview_grid.png.
type ZipExporter struct {
	Dir    string
	Format Format
}

// Export encodes the tile set and writes the archive.
func (z *ZipExporter) Export(ctx context.Context, set TileSet) (*Result, error) {
	if err := validate(set); err != nil {
		return nil, err
	}
	format := z.Format
	if format == "" {
		format = FormatPNG
	}

	encoded, err := encodeAll(ctx, set.images(), format.encoder())
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(z.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	folder := fmt.Sprintf("%s_grid_%d", set.Name, set.TileCount)
	path := filepath.Join(z.Dir, folder+".zip")

	f, err := createFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}

	result, err := writeArchive(f, folder, set, encoded, format)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close archive: %w", cerr)
	}
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			logging.Logger().Warn("failed to remove partial archive", "path", path, "err", rmErr)
		}
		return nil, err
	}
	result.Path = path
	result.PostingOrder = PostingOrder(result.Files)
	logging.Logger().Info("exported grid archive", "path", path, "tiles", len(set.Tiles))
	return result, nil
}

// writeArchive writes every encoded image into w as a zip under folder/.
func writeArchive(w io.Writer, folder string, set TileSet, encoded [][]byte, format Format) (*Result, error) {
	zw := zip.NewWriter(w)
	result := &Result{}

	for i := range set.Tiles {
		name := fmt.Sprintf("%s/grid_%02d%s", folder, i+1, format.ext())
		if err := writeEntry(zw, name, encoded[i]); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, name)
	}
	if set.Preview != nil {
		name := fmt.Sprintf("%s/preview_grid%s", folder, format.ext())
		if err := writeEntry(zw, name, encoded[len(set.Tiles)]); err != nil {
			return nil, err
		}
		result.Preview = name
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}
	return result, nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	// Image data is already compressed.
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
