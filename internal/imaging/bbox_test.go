package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectBoundingBox_SinglePixel(t *testing.T) {
	points := []struct{ x, y int }{{0, 0}, {3, 7}, {9, 9}, {9, 0}}
	for _, p := range points {
		buf := solidBuffer(10, 10, 0, 0, 0, 0)
		buf.Pix[buf.offset(p.x, p.y)+3] = 255

		b, ok := DetectBoundingBox(buf, nil, 0)
		assert.True(t, ok)
		assert.Equal(t, Bounds{Top: p.y, Right: p.x, Bottom: p.y, Left: p.x}, b)
	}
}

func TestDetectBoundingBox_Empty(t *testing.T) {
	buf := solidBuffer(8, 8, 255, 255, 255, 0)
	_, ok := DetectBoundingBox(buf, nil, 0)
	assert.False(t, ok)
}

func TestDetectBoundingBox_Region(t *testing.T) {
	buf := solidBuffer(20, 10, 0, 0, 0, 0)
	for y := 2; y <= 6; y++ {
		for x := 4; x <= 15; x++ {
			buf.Pix[buf.offset(x, y)+3] = 1
		}
	}
	b, ok := DetectBoundingBox(buf, nil, 0)
	assert.True(t, ok)
	assert.Equal(t, Bounds{Top: 2, Right: 15, Bottom: 6, Left: 4}, b)
}

func TestDetectBoundingBox_BackgroundColor(t *testing.T) {
	// Opaque white canvas with a near-white speck and a dark block.
	buf := solidBuffer(10, 10, 255, 255, 255, 255)
	i := buf.offset(1, 1)
	buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2] = 250, 250, 250
	for y := 5; y <= 7; y++ {
		for x := 4; x <= 6; x++ {
			j := buf.offset(x, y)
			buf.Pix[j], buf.Pix[j+1], buf.Pix[j+2] = 10, 10, 10
		}
	}

	// Without a reference color every opaque pixel is content.
	b, ok := DetectBoundingBox(buf, nil, 0)
	assert.True(t, ok)
	assert.Equal(t, Bounds{Top: 0, Right: 9, Bottom: 9, Left: 0}, b)

	// Zero tolerance: the speck still counts.
	white := White
	b, ok = DetectBoundingBox(buf, &white, 0)
	assert.True(t, ok)
	assert.Equal(t, Bounds{Top: 1, Right: 6, Bottom: 7, Left: 1}, b)

	// 5% tolerance absorbs the speck.
	b, ok = DetectBoundingBox(buf, &white, 5)
	assert.True(t, ok)
	assert.Equal(t, Bounds{Top: 5, Right: 6, Bottom: 7, Left: 4}, b)

	// Everything within tolerance means no content.
	_, ok = DetectBoundingBox(buf, &white, 100)
	assert.False(t, ok)
}

func TestDetectBoundingBox_ThenCrop(t *testing.T) {
	buf := solidBuffer(12, 12, 0, 0, 0, 0)
	for y := 3; y <= 8; y++ {
		buf.Pix[buf.offset(5, y)+3] = 255
	}
	b, ok := DetectBoundingBox(buf, nil, 0)
	assert.True(t, ok)

	out, err := CropImage(buf, b)
	assert.NoError(t, err)
	assert.Equal(t, 1, out.Width)
	assert.Equal(t, 6, out.Height)
	assert.False(t, out.HasTransparency())
}
