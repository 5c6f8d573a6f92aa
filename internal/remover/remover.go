// Package remover delegates AI background removal to an HTTP service that
// speaks the rembg server protocol: a multipart POST with the image in the
// "file" field, answered with a PNG cut-out of the same size.
package remover

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/Lchiki-nl/Stamp-Image-Tools-sub000/internal/imaging"
)

// DefaultTimeout bounds one removal request.
const DefaultTimeout = 60 * time.Second

// maxResponseSize caps the response body read from the service.
const maxResponseSize = 64 << 20

// HTTP posts images to a background removal endpoint.
type HTTP struct {
	url    string
	client *http.Client
}

// NewHTTP creates a remover for the endpoint url, e.g.
// "http://localhost:7000/api/remove".
func NewHTTP(url string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTP{url: url, client: &http.Client{Timeout: timeout}}
}

// Remove sends buf as PNG and decodes the returned cut-out.
func (h *HTTP) Remove(ctx context.Context, buf *imaging.Buffer) (*imaging.Buffer, error) {
	data, err := imaging.EncodePNG(buf)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "image.png")
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", imaging.PNGMimeType)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("background removal request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read background removal response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("background removal service returned %s: %s", resp.Status, bytes.TrimSpace(truncate(payload, 200)))
	}

	out, _, err := imaging.DecodeBytes(payload)
	if err != nil {
		return nil, err
	}
	if out.Width != buf.Width || out.Height != buf.Height {
		return nil, fmt.Errorf("background removal service returned %dx%d for a %dx%d image",
			out.Width, out.Height, buf.Width, buf.Height)
	}
	return out, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
