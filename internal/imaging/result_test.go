package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImageResult(t *testing.T) {
	buf := solidBuffer(5, 3, 10, 20, 30, 128)

	res, err := NewImageResult(buf)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Width)
	assert.Equal(t, 3, res.Height)
	assert.Equal(t, "image/png", res.MimeType)
	assert.NotEmpty(t, res.ImageBase64)

	back, err := DecodeImageResult(res)
	require.NoError(t, err)
	assert.Equal(t, buf.Pix, back.Pix)
}

func TestNewImageResult_InvalidBuffer(t *testing.T) {
	_, err := NewImageResult(&Buffer{Width: 2, Height: 2})
	assert.ErrorIs(t, err, ErrBufferSize)
}
