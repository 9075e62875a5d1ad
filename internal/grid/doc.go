// Package grid cuts one source image into a 3-column grid of 1080×1350 tiles
// that reassemble into the original picture on a profile page.
//
// A render runs in four steps:
//
//  1. Plan validates a Config and derives the LayoutPlan: per-column widths,
//     per-row heights, outer margins, edge padding and the size of the single
//     resized canvas.
//  2. Resize scales the source into that canvas once (cover or fit).
//  3. Each cell's slice of the canvas is pasted into a black tile at its
//     margin and padding offset, and the frame is drawn.
//  4. Preview lays the finished tiles side by side.
//
// Because the canvas is cut rather than each tile being resized separately,
// the visible parts of adjacent tiles line up exactly.
//
// # Margins and Padding
//
// Side margins apply to the outer edge of the left and right columns only.
// Top and bottom margins apply to the first and last rows; a single row gets
// both. Edge padding is a background band on the inner seam of the two outer
// columns and shrinks their image area without touching the tile size.
//
// # Frames
//
// Frame lines are drawn only on sides that lie on the outer border of the
// assembled grid and are not padded. Outer style strokes the reserved image
// rectangle. Individual style in fit mode strokes the detected content bounds
// instead, and draws nothing for a tile that holds only background.
//
// # Errors
//
// Every failure is a *ConfigError reported before any pixel work. Rendering
// itself cannot fail.
package grid
