package grid

import (
	"fmt"
	"image/color"
	"strings"
)

// Canonical output dimensions of every tile.
const (
	TileWidth  = 1080
	TileHeight = 1350

	// Cols is fixed; only the row count varies with TileCount.
	Cols = 3
)

// Mode selects how the source image is scaled into the visible canvas.
type Mode int

const (
	// ModeCover fills the canvas completely and crops the overflow.
	ModeCover Mode = iota
	// ModeFit keeps the whole image visible and letterboxes with background.
	ModeFit
)

func (m Mode) String() string {
	switch m {
	case ModeCover:
		return "cover"
	case ModeFit:
		return "fit"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "cover" or "fit" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cover":
		return ModeCover, nil
	case "fit":
		return ModeFit, nil
	}
	return 0, &ConfigError{Field: "mode", Reason: fmt.Sprintf("unknown mode %q (want cover or fit)", s)}
}

// FrameStyle selects which frame lines are drawn.
type FrameStyle int

const (
	// FrameOuter traces the outer boundary of the assembled grid.
	FrameOuter FrameStyle = iota
	// FrameIndividual traces each tile's content; in fit mode it hugs the
	// detected image bounds rather than the reserved rectangle.
	FrameIndividual
)

func (s FrameStyle) String() string {
	switch s {
	case FrameOuter:
		return "outer"
	case FrameIndividual:
		return "individual"
	default:
		return fmt.Sprintf("FrameStyle(%d)", int(s))
	}
}

// ParseFrameStyle accepts "outer" or "individual" (case-insensitive).
func ParseFrameStyle(s string) (FrameStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "outer":
		return FrameOuter, nil
	case "individual":
		return FrameIndividual, nil
	}
	return 0, &ConfigError{Field: "frame_style", Reason: fmt.Sprintf("unknown frame style %q (want outer or individual)", s)}
}

// Background is the opaque canvas colour behind all content.
var Background = color.NRGBA{R: 0, G: 0, B: 0, A: 255}

// DefaultFrameColor is used when Config.FrameColor is nil.
var DefaultFrameColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Config is the single configuration record for a render.
//
// The zero value is not valid: TileCount must be set. DefaultConfig returns
// the settings the desktop tool starts with.
type Config struct {
	TileCount int
	Mode      Mode

	MarginTopBottom int
	MarginSide      int

	FrameEnabled   bool
	FrameStyle     FrameStyle
	FrameThickness int
	// FrameColor defaults to white when nil.
	FrameColor color.Color

	EdgePaddingEnabled bool
	EdgePaddingAmount  int
}

// DefaultConfig returns a 2×3 cover grid with 80px margins and a 4px outer frame.
func DefaultConfig() Config {
	return Config{
		TileCount:         6,
		Mode:              ModeCover,
		MarginTopBottom:   80,
		MarginSide:        80,
		FrameEnabled:      true,
		FrameStyle:        FrameOuter,
		FrameThickness:    4,
		EdgePaddingAmount: 40,
	}
}

// Rows returns the number of grid rows (TileCount / 3).
func (c Config) Rows() int {
	return c.TileCount / Cols
}

// edgePadding returns the effective padding amount, zero when disabled.
func (c Config) edgePadding() int {
	if !c.EdgePaddingEnabled {
		return 0
	}
	return c.EdgePaddingAmount
}

func (c Config) frameColor() color.Color {
	if c.FrameColor == nil {
		return DefaultFrameColor
	}
	return c.FrameColor
}

// ConfigError reports an invalid configuration. It is the only error the
// engine returns, and it is always returned before any pixel work starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid grid config: %s: %s", e.Field, e.Reason)
}
