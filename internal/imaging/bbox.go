package imaging

// DetectBoundingBox finds the smallest rectangle containing every content pixel.
//
// A pixel is content when its alpha is nonzero and, if bg is non-nil, its
// distance from *bg exceeds tolerancePercent (0-100) of MaxColorDistance.
//
// The boolean is false when no content pixel exists; the returned Bounds is
// then meaningless and must not be passed to CropImage.
func DetectBoundingBox(buf *Buffer, bg *RGBColor, tolerancePercent float64) (Bounds, bool) {
	top, left := buf.Height, buf.Width
	bottom, right := -1, -1
	tol := percentThreshold(tolerancePercent)

	for y := 0; y < buf.Height; y++ {
		row := y * buf.Width * 4
		for x := 0; x < buf.Width; x++ {
			i := row + x*4
			if buf.Pix[i+3] == 0 {
				continue
			}
			if bg != nil && ColorDistance(RGBColor{R: buf.Pix[i], G: buf.Pix[i+1], B: buf.Pix[i+2]}, *bg) <= tol {
				continue
			}
			top = min(top, y)
			bottom = max(bottom, y)
			left = min(left, x)
			right = max(right, x)
		}
	}

	if top > bottom {
		return Bounds{}, false
	}
	return Bounds{Top: top, Right: right, Bottom: bottom, Left: left}, true
}
