package batch

import (
	"bytes"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// Source is one encoded input image.
//
// Open is called once, when the item's turn comes, so a batch over files
// holds at most one file open at a time.
type Source struct {
	// Name is a logical file name, used for output naming and logs.
	Name string
	// MIMEType is the declared content type. When set, it must be image/*.
	MIMEType string
	// Open returns the encoded bytes.
	Open func() (io.ReadCloser, error)
}

// BytesSource wraps an in-memory encoded image.
func BytesSource(name, mimeType string, data []byte) Source {
	return Source{
		Name:     name,
		MIMEType: mimeType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// FileSource reads an image from path. The MIME type is guessed from the
// extension and left empty when unknown, which defers to content sniffing.
func FileSource(path string) Source {
	return Source{
		Name:     filepath.Base(path),
		MIMEType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// declaredImage reports whether the MIME type allows decoding.
func (s Source) declaredImage() bool {
	if s.MIMEType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(s.MIMEType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "image/")
}
