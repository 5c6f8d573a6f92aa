package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

var (
	// ErrInvalidDimensions is returned when a width or height is not positive.
	ErrInvalidDimensions = errors.New("dimensions must be positive")

	// ErrBufferSize is returned when a buffer's pixel slice length does not
	// equal Width*Height*4.
	ErrBufferSize = errors.New("pixel data length does not match dimensions")
)

// Buffer is an in-memory RGBA raster.
//
// Pixels are stored row-major, four bytes per pixel in R, G, B, A order, with
// straight (non-premultiplied) alpha. The invariant len(Pix) == Width*Height*4
// holds for every buffer produced by this package.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBuffer allocates a fully transparent buffer of the given size.
func NewBuffer(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new buffer %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}, nil
}

// newBuffer is NewBuffer for sizes the caller already validated.
func newBuffer(width, height int) *Buffer {
	return &Buffer{Width: width, Height: height, Pix: make([]uint8, width*height*4)}
}

// FromImage copies any image.Image into a new Buffer.
//
// The source is normalized to non-premultiplied 8-bit RGBA, so 16-bit, paletted,
// grayscale, and YCbCr images all produce the same layout. The source bounds
// origin is discarded; the buffer always starts at (0,0).
func FromImage(img image.Image) *Buffer {
	nrgba := imaging.Clone(img)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()
	buf := newBuffer(w, h)
	rowLen := w * 4
	for y := 0; y < h; y++ {
		copy(buf.Pix[y*rowLen:(y+1)*rowLen], nrgba.Pix[y*nrgba.Stride:y*nrgba.Stride+rowLen])
	}
	return buf
}

// Image returns a copy of the buffer as an *image.NRGBA anchored at (0,0).
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	copy(img.Pix, b.Pix)
	return img
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := newBuffer(b.Width, b.Height)
	copy(out.Pix, b.Pix)
	return out
}

// Validate checks the size invariant.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("nil buffer: %w", ErrInvalidDimensions)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("buffer %dx%d: %w", b.Width, b.Height, ErrInvalidDimensions)
	}
	if len(b.Pix) != b.Width*b.Height*4 {
		return fmt.Errorf("buffer %dx%d has %d bytes: %w", b.Width, b.Height, len(b.Pix), ErrBufferSize)
	}
	return nil
}

// offset returns the index of the red byte of pixel (x, y).
func (b *Buffer) offset(x, y int) int {
	return (y*b.Width + x) * 4
}

// At returns the RGBA components of pixel (x, y). The caller must keep the
// coordinates inside the buffer.
func (b *Buffer) At(x, y int) (r, g, bl, a uint8) {
	i := b.offset(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}
