package imaging

import (
	"fmt"
	"math"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// MaxColorDistance is the largest possible Euclidean distance between two
// 8-bit RGB colors, sqrt(3*255^2).
var MaxColorDistance = math.Sqrt(3 * 255 * 255)

// RGBColor represents an RGB color with 8-bit components.
//
// It is used as the key color for background removal and as the optional
// reference background for bounding-box detection. There is no alpha component.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// White is the fallback key color for background removal.
var White = RGBColor{R: 255, G: 255, B: 255}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"` // 0 = fully transparent, 255 = fully opaque
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // "#rrggbb" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// ColorDistance returns the Euclidean distance between a and b over (R, G, B).
//
// The result lies in [0, MaxColorDistance]. It is symmetric and zero exactly
// when the colors are equal.
func ColorDistance(a, b RGBColor) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// HexToRGB parses a 6-digit hex color. The leading '#' is optional and digits
// are case-insensitive. The boolean is false for malformed input; this is an
// expected outcome, not an error.
func HexToRGB(hex string) (RGBColor, bool) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return RGBColor{}, false
	}
	for _, ch := range s {
		if !isHexDigit(ch) {
			return RGBColor{}, false
		}
	}
	c, err := colorful.Hex("#" + strings.ToLower(s))
	if err != nil {
		return RGBColor{}, false
	}
	r, g, b := c.RGB255()
	return RGBColor{R: r, G: g, B: b}, true
}

// RGBToHex formats the components as a lowercase, zero-padded "#rrggbb".
func RGBToHex(r, g, b uint8) string {
	return colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}.Hex()
}

// Hex returns the color as "#rrggbb".
func (c RGBColor) Hex() string {
	return RGBToHex(c.R, c.G, c.B)
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// percentThreshold converts a 0-100 percentage into an absolute color distance.
// Values outside the range are clamped.
func percentThreshold(percent float64) float64 {
	if percent < 0 || math.IsNaN(percent) {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return percent / 100 * MaxColorDistance
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Parameters:
//   - buf: The source buffer to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns:
//   - *ColorResult: The color at (x, y) in multiple formats.
//   - error: Non-nil if coordinates are outside the buffer.
func SampleColor(buf *Buffer, x, y int) (*ColorResult, error) {
	if x < 0 || x >= buf.Width || y < 0 || y >= buf.Height {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}
	r, g, b, a := buf.At(x, y)
	return colorResult(r, g, b, a), nil
}

func colorResult(r, g, b, a uint8) *ColorResult {
	return &ColorResult{
		Hex:  RGBToHex(r, g, b),
		RGB:  RGBColor{R: r, G: g, B: b},
		RGBA: RGBAColor{R: r, G: g, B: b, A: a},
		HSL:  rgbToHSL(r, g, b),
	}
}

// ColorFrequency represents a color and its occurrence frequency in an image.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // Hex color "#rrggbb" (quantized)
	Percentage float64  `json:"percentage"` // Share of opaque pixels with this color (0-100)
	RGB        RGBColor `json:"rgb"`        // RGB components (quantized)
}

// DominantColorsResult contains the most frequently occurring colors,
// sorted by frequency in descending order.
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"`
}

// DominantColors returns up to count of the most common colors in buf.
//
// Fully transparent pixels are skipped, since their RGB values are not visible
// and would otherwise skew key-color suggestions after a removal pass. Each
// component is quantized to a multiple of 16 so near-identical shades group
// together:
//
//	quantized = (original / 16) * 16
//
// Ties are broken by hex string so the ordering is deterministic.
func DominantColors(buf *Buffer, count int) *DominantColorsResult {
	counts := make(map[RGBColor]int)
	total := 0

	for i := 0; i < len(buf.Pix); i += 4 {
		if buf.Pix[i+3] == 0 {
			continue
		}
		q := RGBColor{
			R: buf.Pix[i] / 16 * 16,
			G: buf.Pix[i+1] / 16 * 16,
			B: buf.Pix[i+2] / 16 * 16,
		}
		counts[q]++
		total++
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for c, n := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        c.Hex(),
			Percentage: float64(n) / float64(total) * 100,
			RGB:        c,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if count >= 0 && len(colors) > count {
		colors = colors[:count]
	}
	return &DominantColorsResult{Colors: colors}
}

// rgbToHSL converts 8-bit RGB values to HSL with integer degrees and percents.
func rgbToHSL(r, g, b uint8) HSLColor {
	h, s, l := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSLColor{
		H: int(h),
		S: int(s * 100),
		L: int(l * 100),
	}
}
