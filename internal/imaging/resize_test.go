package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeImage_Dimensions(t *testing.T) {
	buf := FromImage(createPatternImage(100, 60))

	tests := []struct {
		name          string
		width, height int
	}{
		{"downscale", 50, 30},
		{"upscale", 250, 90},
		{"non-uniform", 17, 113},
		{"single pixel", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ResizeImage(buf, tt.width, tt.height)
			require.NoError(t, err)
			assert.Equal(t, tt.width, out.Width)
			assert.Equal(t, tt.height, out.Height)
			assert.NoError(t, out.Validate())
		})
	}
}

func TestResizeWith_AllResamplers(t *testing.T) {
	buf := solidBuffer(40, 40, 200, 100, 50, 255)

	for _, name := range ResamplerNames() {
		t.Run(name, func(t *testing.T) {
			r, ok := LookupResampler(name)
			require.True(t, ok)
			assert.Equal(t, name, r.Name())

			out, err := ResizeWith(buf, 25, 15, r)
			require.NoError(t, err)
			assert.Equal(t, 25, out.Width)
			assert.Equal(t, 15, out.Height)

			// A flat color stays flat under any smoothing filter.
			cr, cg, cb, ca := out.At(12, 7)
			assert.InDelta(t, 200, cr, 2)
			assert.InDelta(t, 100, cg, 2)
			assert.InDelta(t, 50, cb, 2)
			assert.InDelta(t, 255, ca, 1)
		})
	}
}

func TestResizeImage_DoesNotMutate(t *testing.T) {
	buf := FromImage(createPatternImage(20, 20))
	before := buf.Clone()
	_, err := ResizeImage(buf, 7, 7)
	require.NoError(t, err)
	assert.Equal(t, before, buf)
}

func TestResizeImage_InvalidDimensions(t *testing.T) {
	buf := solidBuffer(10, 10, 0, 0, 0, 255)
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		_, err := ResizeImage(buf, dims[0], dims[1])
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	}
}

func TestLookupResampler(t *testing.T) {
	r, ok := LookupResampler(" Lanczos ")
	assert.True(t, ok)
	assert.Equal(t, "lanczos", r.Name())

	_, ok = LookupResampler("nearest")
	assert.False(t, ok)

	assert.Equal(t, []string{"bicubic", "catmullrom", "lanczos", "linear"}, ResamplerNames())
}

func TestFitAspect(t *testing.T) {
	tests := []struct {
		name                  string
		srcW, srcH            int
		width, height         int
		wantWidth, wantHeight int
	}{
		{"height from width", 100, 50, 30, 0, 30, 15},
		{"width from height", 100, 50, 0, 20, 40, 20},
		{"rounded", 640, 480, 100, 0, 100, 75},
		{"rounds to nearest", 3, 2, 5, 0, 5, 3},
		{"both given", 100, 50, 30, 30, 30, 30},
		{"neither given", 100, 50, 0, 0, 0, 0},
		{"never below one", 1000, 1, 1, 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitAspect(tt.srcW, tt.srcH, tt.width, tt.height)
			assert.Equal(t, tt.wantWidth, w)
			assert.Equal(t, tt.wantHeight, h)
		})
	}
}
