// Package imaging loads source images and converts between pixels and the
// wire formats the server and CLI exchange.
//
// Decoding goes through github.com/disintegration/imaging with EXIF
// auto-orientation, so phone photos arrive upright. PNG, JPEG and GIF come
// from the standard library; BMP, TIFF and WebP decoders are registered by
// golang.org/x/image.
//
// # Opaque Sources
//
// Tiles are composed over a black background, so every loaded image is
// flattened onto black before it is cached. Transparent areas become black
// and the cached value is always a fully opaque *image.NRGBA.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Cached images are shared and
// must be treated as read-only by callers.
//
// # Color Representation
//
// Frame colors are exchanged as "#RRGGBB" (or the "#RGB" short form). Alpha is
// not accepted because frame lines are written without blending.
//
// # Performance Considerations
//
// A full-resolution photo can take tens of megabytes once decoded. Use Evict()
// or Clear() to manage memory in long-running processes.
package imaging
