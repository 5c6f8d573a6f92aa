package imaging

import (
	"fmt"
	"image"
	"math"
	"sort"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Resampler scales an image to exact target dimensions.
type Resampler interface {
	// Name is the filter name accepted by LookupResampler.
	Name() string
	// Resample returns img scaled to width x height. Both must be positive.
	Resample(img image.Image, width, height int) image.Image
}

// DefaultResampler is the filter used by ResizeImage.
const DefaultResampler = "lanczos"

type imagingResampler struct {
	name   string
	filter imaging.ResampleFilter
}

func (r imagingResampler) Name() string { return r.name }

func (r imagingResampler) Resample(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, r.filter)
}

// bildResampler uses bild's separable linear (tent) filter.
type bildResampler struct{}

func (bildResampler) Name() string { return "linear" }

func (bildResampler) Resample(img image.Image, width, height int) image.Image {
	return transform.Resize(img, width, height, transform.Linear)
}

// nfntResampler uses nfnt/resize's cubic interpolation.
type nfntResampler struct{}

func (nfntResampler) Name() string { return "bicubic" }

func (nfntResampler) Resample(img image.Image, width, height int) image.Image {
	return resize.Resize(uint(width), uint(height), img, resize.Bicubic)
}

var resamplers = map[string]Resampler{
	"lanczos":    imagingResampler{name: "lanczos", filter: imaging.Lanczos},
	"catmullrom": imagingResampler{name: "catmullrom", filter: imaging.CatmullRom},
	"linear":     bildResampler{},
	"bicubic":    nfntResampler{},
}

// LookupResampler returns the resampler registered under name
// (case-insensitive). The boolean is false for unknown names.
func LookupResampler(name string) (Resampler, bool) {
	r, ok := resamplers[strings.ToLower(strings.TrimSpace(name))]
	return r, ok
}

// ResamplerNames lists the accepted filter names in sorted order.
func ResamplerNames() []string {
	names := make([]string, 0, len(resamplers))
	for n := range resamplers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ResizeImage scales buf to exactly width x height with the default Lanczos
// filter. See ResizeWith.
func ResizeImage(buf *Buffer, width, height int) (*Buffer, error) {
	return ResizeWith(buf, width, height, resamplers[DefaultResampler])
}

// ResizeWith scales buf to exactly width x height using r. Non-positive
// targets are rejected with ErrInvalidDimensions. A nil r selects the default.
func ResizeWith(buf *Buffer, width, height int, r Resampler) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("resize to %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	if r == nil {
		r = resamplers[DefaultResampler]
	}
	out := FromImage(r.Resample(buf.Image(), width, height))
	if out.Width != width || out.Height != height {
		return nil, fmt.Errorf("%s resampler produced %dx%d, want %dx%d",
			r.Name(), out.Width, out.Height, width, height)
	}
	return out, nil
}

// FitAspect fills in a zero target dimension from the source aspect ratio.
//
// When exactly one of width or height is 0 the missing side is
// round(width / (srcW/srcH)) or round(height * (srcW/srcH)), never less than 1.
// Otherwise the inputs are returned unchanged.
func FitAspect(srcW, srcH, width, height int) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return width, height
	}
	ratio := float64(srcW) / float64(srcH)
	switch {
	case width > 0 && height == 0:
		height = max(1, int(math.Round(float64(width)/ratio)))
	case height > 0 && width == 0:
		width = max(1, int(math.Round(float64(height)*ratio)))
	}
	return width, height
}
