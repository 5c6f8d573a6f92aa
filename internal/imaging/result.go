package imaging

import "encoding/base64"

// ImageResult contains an encoded image for return over JSON.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// NewImageResult encodes buf as base64 PNG.
func NewImageResult(buf *Buffer) (*ImageResult, error) {
	data, err := EncodePNG(buf)
	if err != nil {
		return nil, err
	}
	return &ImageResult{
		Width:       buf.Width,
		Height:      buf.Height,
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    PNGMimeType,
	}, nil
}

// DecodeImageResult reverses NewImageResult.
func DecodeImageResult(r *ImageResult) (*Buffer, error) {
	data, err := base64.StdEncoding.DecodeString(r.ImageBase64)
	if err != nil {
		return nil, err
	}
	buf, _, err := DecodeBytes(data)
	return buf, err
}
