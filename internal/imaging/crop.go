package imaging

import (
	"errors"
	"fmt"
)

// ErrInvalidBounds is returned when crop bounds are inverted or fall outside
// the buffer.
var ErrInvalidBounds = errors.New("invalid crop bounds")

// Bounds is a rectangle in edge coordinates: Top and Left are the first row
// and column kept, Bottom and Right are the last row and column kept.
type Bounds struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Width returns the number of columns covered by b.
func (b Bounds) Width() int { return b.Right - b.Left + 1 }

// Height returns the number of rows covered by b.
func (b Bounds) Height() int { return b.Bottom - b.Top + 1 }

// Valid reports whether 0 <= Left <= Right < width and 0 <= Top <= Bottom < height.
func (b Bounds) Valid(width, height int) bool {
	return b.Left >= 0 && b.Left <= b.Right && b.Right < width &&
		b.Top >= 0 && b.Top <= b.Bottom && b.Bottom < height
}

// Expand grows b by pad pixels on every side, clamped to a width x height image.
func (b Bounds) Expand(pad, width, height int) Bounds {
	if pad <= 0 {
		return b
	}
	return Bounds{
		Top:    max(0, b.Top-pad),
		Right:  min(width-1, b.Right+pad),
		Bottom: min(height-1, b.Bottom+pad),
		Left:   max(0, b.Left-pad),
	}
}

// Trim is the same rectangle expressed as the number of pixels removed from
// each edge. This is the form callers and the UI use.
type Trim struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Bounds converts trim amounts to edge coordinates for a width x height image.
// The result may be invalid (for example when trims overlap); check it with
// Bounds.Valid before cropping.
func (t Trim) Bounds(width, height int) Bounds {
	return Bounds{
		Top:    t.Top,
		Right:  width - t.Right - 1,
		Bottom: height - t.Bottom - 1,
		Left:   t.Left,
	}
}

// CropImage copies the inclusive rectangle b out of buf into a new buffer of
// size b.Width() x b.Height().
//
// Bounds that are inverted or reach outside buf are rejected with
// ErrInvalidBounds rather than clamped.
func CropImage(buf *Buffer, b Bounds) (*Buffer, error) {
	if !b.Valid(buf.Width, buf.Height) {
		return nil, fmt.Errorf("crop (top=%d,right=%d,bottom=%d,left=%d) of %dx%d image: %w",
			b.Top, b.Right, b.Bottom, b.Left, buf.Width, buf.Height, ErrInvalidBounds)
	}
	return copyRegion(buf, b.Left, b.Top, b.Width(), b.Height()), nil
}

// copyRegion copies a w x h block starting at (x0, y0). The region must lie
// inside buf.
func copyRegion(buf *Buffer, x0, y0, w, h int) *Buffer {
	out := newBuffer(w, h)
	rowLen := w * 4
	for y := 0; y < h; y++ {
		src := buf.offset(x0, y0+y)
		copy(out.Pix[y*rowLen:(y+1)*rowLen], buf.Pix[src:src+rowLen])
	}
	return out
}
