package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	"image/png"
	"io"
	"os"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// PNGMimeType is the MIME type of every encoded output.
const PNGMimeType = "image/png"

// Decode reads an encoded PNG, JPEG, GIF, or WebP image into a Buffer.
//
// Returns the buffer and the format name reported by the registered decoder
// ("png", "jpeg", "gif", "webp"). JPEG EXIF orientation is applied so the
// buffer matches what a browser would display.
func Decode(r io.Reader) (*Buffer, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes is Decode for an in-memory byte slice.
func DecodeBytes(data []byte) (*Buffer, string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	buf := FromImage(img)
	if err := buf.Validate(); err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return buf, format, nil
}

// EncodePNG encodes buf as a lossless PNG.
func EncodePNG(buf *Buffer) ([]byte, error) {
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	var out bytes.Buffer
	if err := imaging.Encode(&out, buf.Image(), imaging.PNG, imaging.PNGCompressionLevel(png.DefaultCompression)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return out.Bytes(), nil
}

// ImageCache provides thread-safe caching of decoded images keyed by file path.
//
// Cached buffers are shared between callers and must be treated as read-only;
// every transform in this package already returns a fresh buffer.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*cachedImage
}

type cachedImage struct {
	buf    *Buffer
	format string
	size   int64
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*cachedImage),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// The image is cached using the exact path string provided. Different paths to
// the same file (e.g., relative vs absolute) result in separate cache entries.
func (c *ImageCache) Load(path string) (*Buffer, error) {
	entry, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return entry.buf, nil
}

func (c *ImageCache) load(path string) (*cachedImage, error) {
	c.mu.RLock()
	if entry, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return entry, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	buf, format, err := DecodeBytes(data)
	if err != nil {
		return nil, err
	}

	entry := &cachedImage{buf: buf, format: format, size: int64(len(data))}
	c.mu.Lock()
	c.images[path] = entry
	c.mu.Unlock()

	return entry, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*cachedImage)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that accepted the file: "png", "jpeg", "gif", or "webp".
	Format string `json:"format"`

	// HasTransparency reports whether any pixel has alpha below 255.
	HasTransparency bool `json:"has_transparency"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and returns its metadata.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	entry, err := cache.load(path)
	if err != nil {
		return nil, err
	}
	return &ImageInfo{
		Width:           entry.buf.Width,
		Height:          entry.buf.Height,
		Format:          entry.format,
		HasTransparency: entry.buf.HasTransparency(),
		FileSizeBytes:   entry.size,
	}, nil
}

// HasTransparency reports whether any pixel has alpha below 255.
func (b *Buffer) HasTransparency() bool {
	for i := 3; i < len(b.Pix); i += 4 {
		if b.Pix[i] != 255 {
			return true
		}
	}
	return false
}
