package imaging

import "fmt"

// DefaultGridColor is used by GridPreview when the requested color is malformed.
var DefaultGridColor = RGBColor{R: 255, G: 0, B: 0}

// GridPreview draws the cell boundaries SplitImage would use for a rows x cols
// split. Lines are one pixel wide and opaque in the given hex color. The
// dropped remainder strip on the right and bottom is dimmed to half alpha so
// it is visible before splitting.
func GridPreview(buf *Buffer, rows, cols int, hex string) (*Buffer, error) {
	cellW, cellH := CellSize(buf.Width, buf.Height, rows, cols)
	if cellW == 0 || cellH == 0 {
		return nil, fmt.Errorf("preview %dx%d grid on %dx%d image: %w",
			rows, cols, buf.Width, buf.Height, ErrInvalidDimensions)
	}

	lineColor, ok := HexToRGB(hex)
	if !ok {
		lineColor = DefaultGridColor
	}

	out := buf.Clone()
	usedW, usedH := cellW*cols, cellH*rows

	// Remainder strips
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			if x >= usedW || y >= usedH {
				i := out.offset(x, y)
				out.Pix[i+3] /= 2
			}
		}
	}

	// Vertical lines
	for c := 1; c < cols; c++ {
		x := c * cellW
		for y := 0; y < usedH; y++ {
			setPixel(out, x, y, lineColor)
		}
	}

	// Horizontal lines
	for r := 1; r < rows; r++ {
		y := r * cellH
		for x := 0; x < usedW; x++ {
			setPixel(out, x, y, lineColor)
		}
	}

	return out, nil
}

func setPixel(b *Buffer, x, y int, c RGBColor) {
	i := b.offset(x, y)
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
	b.Pix[i+3] = 255
}
