// Package imaging provides the pixel-level transforms behind the stamp tools.
//
// This package implements color-keyed background removal with feathering,
// content bounding-box detection, cropping, grid splitting, and resizing. All
// transforms operate on Buffer, a flat row-major RGBA byte grid with straight
// (non-premultiplied) alpha, and return a new Buffer rather than mutating the
// input, so callers may keep the original next to derived results.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Bounds use edge coordinates: Top/Left are the first row/column kept,
//     Bottom/Right are the last row/column kept (all inclusive)
//   - Trim expresses the same rectangle as pixel amounts removed from each edge
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Transform functions are pure
// and touch no package-level mutable state, so they can run concurrently on
// different buffers.
//
// # Color Representation
//
// Colors are handled as 8-bit RGB triples. Distance between colors is plain
// Euclidean distance over (R, G, B), ranging from 0 to MaxColorDistance
// (sqrt(3*255^2) ≈ 441.673). Hex strings are "#rrggbb" in lowercase.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Crop bounds outside the buffer or inverted (ErrInvalidBounds)
//   - Non-positive target dimensions (ErrInvalidDimensions)
//   - Buffers whose pixel slice does not match width*height*4 (ErrBufferSize)
//   - Decode and encode failures from the underlying codecs
//
// DetectBoundingBox reports "no content" through its boolean result; callers
// must check it rather than treat the zero Bounds as a valid box.
package imaging
