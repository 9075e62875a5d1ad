package export

import (
	"context"
	"image"
	"image/color"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-grid-mcp/internal/grid"
)

// createTileSet returns a small tile set with one distinct colour per tile.
// Exporters do not care about tile size, so the tiles are tiny.
func createTileSet(name string, count int) TileSet {
	tiles := make([]grid.Tile, count)
	for i := range tiles {
		tiles[i] = grid.Tile{
			Index: i + 1,
			Row:   i / grid.Cols,
			Col:   i % grid.Cols,
			Image: imaging.New(12, 15, color.NRGBA{R: uint8(20 * (i + 1)), G: 40, B: 60, A: 255}),
		}
	}
	return TileSet{
		Name:      name,
		TileCount: count,
		Tiles:     tiles,
		Preview:   imaging.New(36, 15*count/grid.Cols, color.NRGBA{A: 255}),
	}
}

func TestPostingOrder(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"a", "b", "c"}, []string{"c", "b", "a"}},
		{[]string{"only"}, []string{"only"}},
		{[]string{}, []string{}},
	}

	for _, tt := range tests {
		if got := PostingOrder(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("PostingOrder(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPostingOrder_DoesNotModifyInput(t *testing.T) {
	in := []string{"1", "2", "3"}
	PostingOrder(in)
	if !reflect.DeepEqual(in, []string{"1", "2", "3"}) {
		t.Errorf("input modified: %v", in)
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/photos/beach.jpg", "beach"},
		{"beach.png", "beach"},
		{"/photos/archive.tar.gz", "archive.tar"},
		{"/photos/noext", "noext"},
		{"", "image"},
		{"/", "image"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := BaseName(tt.path); got != tt.want {
				t.Errorf("BaseName(%q): got %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatPNG, false},
		{"png", FormatPNG, false},
		{"JPEG", FormatJPEG, false},
		{"jpg", FormatJPEG, false},
		{"gif", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q): err %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	e, err := New("zip", dir, FormatPNG)
	if err != nil {
		t.Fatalf("New(zip) failed: %v", err)
	}
	if _, ok := e.(*ZipExporter); !ok {
		t.Errorf("New(zip): got %T", e)
	}

	e, err = New("files", dir, FormatJPEG)
	if err != nil {
		t.Fatalf("New(files) failed: %v", err)
	}
	fe, ok := e.(*FolderExporter)
	if !ok {
		t.Fatalf("New(files): got %T", e)
	}
	if fe.Format != FormatJPEG {
		t.Errorf("Format: got %q, want jpeg", fe.Format)
	}
	if fe.Interval != DefaultInterval {
		t.Errorf("Interval: got %v, want %v", fe.Interval, DefaultInterval)
	}

	if _, err := New("ftp", dir, FormatPNG); err == nil {
		t.Error("New(ftp) should fail")
	}
}

func TestExport_RejectsInconsistentSet(t *testing.T) {
	dir := t.TempDir()
	set := createTileSet("x", 3)
	set.TileCount = 6

	for _, e := range []Exporter{&ZipExporter{Dir: dir}, &FolderExporter{Dir: dir}} {
		if _, err := e.Export(context.Background(), set); err == nil {
			t.Errorf("%T: expected error for mismatched tile count", e)
		}
		if _, err := e.Export(context.Background(), TileSet{Name: "x"}); err == nil {
			t.Errorf("%T: expected error for empty set", e)
		}
	}
}

func TestEncodeAll_PreservesOrder(t *testing.T) {
	imgs := make([]image.Image, 8)
	for i := range imgs {
		imgs[i] = imaging.New(i+1, 1, color.NRGBA{A: 255})
	}

	out, err := encodeAll(context.Background(), imgs, FormatPNG.encoder())
	if err != nil {
		t.Fatalf("encodeAll failed: %v", err)
	}
	for i, data := range out {
		img := decodeBytes(t, data)
		if img.Bounds().Dx() != i+1 {
			t.Errorf("entry %d: width %d, want %d", i, img.Bounds().Dx(), i+1)
		}
	}
}

func TestEncodeAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	imgs := []image.Image{imaging.New(4, 4, color.NRGBA{A: 255})}
	if _, err := encodeAll(ctx, imgs, FormatPNG.encoder()); err == nil {
		t.Error("encodeAll should fail on a cancelled context")
	}
}

func TestFormatExt(t *testing.T) {
	if FormatPNG.ext() != ".png" || FormatJPEG.ext() != ".jpg" {
		t.Errorf("ext: png=%s jpeg=%s", FormatPNG.ext(), FormatJPEG.ext())
	}
	if filepath.Ext("a"+Format("").ext()) != ".png" {
		t.Error("empty format should default to png")
	}
}
