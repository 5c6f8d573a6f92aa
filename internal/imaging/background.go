package imaging

import "math"

// RemoveBackground makes pixels close to target transparent.
//
// tolerancePercent and featherPercent (both 0-100, clamped) are scaled against
// MaxColorDistance to get absolute thresholds tol and feather. For each pixel
// at distance d from target:
//
//   - d <= tol: alpha becomes 0. RGB is left untouched so the color survives
//     if alpha is restored later.
//   - tol < d <= tol+feather (feather > 0 only): alpha is scaled linearly by
//     (d-tol)/feather, giving a soft edge.
//   - otherwise the pixel is copied unchanged.
//
// With featherPercent == 0 this is a hard threshold. The input is not modified.
func RemoveBackground(buf *Buffer, target RGBColor, tolerancePercent, featherPercent float64) *Buffer {
	out := buf.Clone()
	tol := percentThreshold(tolerancePercent)
	feather := percentThreshold(featherPercent)

	pix := out.Pix
	for i := 0; i < len(pix); i += 4 {
		d := ColorDistance(RGBColor{R: pix[i], G: pix[i+1], B: pix[i+2]}, target)
		switch {
		case d <= tol:
			pix[i+3] = 0
		case feather > 0 && d <= tol+feather:
			ratio := (d - tol) / feather
			pix[i+3] = clampByte(math.Round(float64(pix[i+3]) * ratio))
		}
	}
	return out
}

// EraseCircle clears the alpha of every pixel whose center lies within radius
// of (cx, cy). Parts of the disc outside the buffer are ignored.
func EraseCircle(buf *Buffer, cx, cy, radius int) *Buffer {
	out := buf.Clone()
	if radius <= 0 {
		return out
	}
	r2 := radius * radius
	for y := max(0, cy-radius); y <= min(out.Height-1, cy+radius); y++ {
		for x := max(0, cx-radius); x <= min(out.Width-1, cx+radius); x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r2 {
				out.Pix[out.offset(x, y)+3] = 0
			}
		}
	}
	return out
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
