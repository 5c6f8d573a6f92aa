package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer(t *testing.T) {
	buf, err := NewBuffer(3, 2)
	require.NoError(t, err)
	assert.Len(t, buf.Pix, 24)
	assert.True(t, buf.HasTransparency())

	_, err = NewBuffer(0, 2)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
	_, err = NewBuffer(2, -1)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestBuffer_Validate(t *testing.T) {
	var nilBuf *Buffer
	assert.Error(t, nilBuf.Validate())
	assert.ErrorIs(t, (&Buffer{Width: 2, Height: 2, Pix: make([]uint8, 15)}).Validate(), ErrBufferSize)
	assert.ErrorIs(t, (&Buffer{Width: 0, Height: 2}).Validate(), ErrInvalidDimensions)
	assert.NoError(t, (&Buffer{Width: 2, Height: 2, Pix: make([]uint8, 16)}).Validate())
}

func TestFromImage_OffsetBounds(t *testing.T) {
	// Sub-images keep their parent's coordinates; the buffer must not.
	parent := createPatternImage(20, 20)
	sub := parent.SubImage(image.Rect(10, 0, 20, 10))

	buf := FromImage(sub)
	assert.Equal(t, 10, buf.Width)
	assert.Equal(t, 10, buf.Height)
	r, g, b, a := buf.At(0, 0)
	assert.Equal(t, [4]uint8{0, 255, 0, 255}, [4]uint8{r, g, b, a})
}

func TestFromImage_Unpremultiplies(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{R: 200, G: 100, B: 0, A: 128})

	buf := FromImage(img)
	r, g, _, a := buf.At(0, 0)
	assert.InDelta(t, 200, r, 2)
	assert.InDelta(t, 100, g, 2)
	assert.Equal(t, uint8(128), a)
}

func TestBuffer_ImageAndClone(t *testing.T) {
	buf := solidBuffer(2, 2, 1, 2, 3, 4)

	img := buf.Image()
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Rect)
	assert.Equal(t, buf.Pix, img.Pix)
	img.Pix[0] = 99
	assert.Equal(t, uint8(1), buf.Pix[0])

	c := buf.Clone()
	c.Pix[1] = 99
	assert.Equal(t, uint8(2), buf.Pix[1])
}
