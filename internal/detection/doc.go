// Package detection locates image content inside rendered tiles.
//
// A rendered tile is content laid over an opaque black background. Fit mode
// letterboxes the source, so part of a tile's reserved rectangle may hold
// only background. ContentBounds finds where the visible image actually is,
// which lets a frame trace the picture instead of the empty bars around it.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounds are inclusive on both corners, unlike image.Rectangle
//
// # Near-Black Test
//
// A pixel is background when each of R, G and B is at or below the threshold
// (NearBlackThreshold by default). Alpha is ignored; tiles are always opaque.
// Resampling leaves faint ringing next to letterbox bars, and the threshold
// keeps those pixels from widening the detected box.
//
// # Performance Considerations
//
// ContentBounds reads the NRGBA pixel buffer directly and visits each pixel in
// the region once. A full 1080×1350 tile is about 1.5M pixels.
package detection
