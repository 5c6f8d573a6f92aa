// Package archive writes batch outputs to a ZIP bundle or a directory.
package archive

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
)

// File is one named output blob.
type File struct {
	Name string
	Data []byte
}

// WriteZip writes files into a ZIP archive on w, in order.
//
// PNG data is already compressed, so entries are stored rather than deflated.
// Names are reduced to their base name so an entry can never escape the
// extraction directory.
func WriteZip(w io.Writer, files []File, modified time.Time) error {
	zw := zip.NewWriter(w)
	for _, f := range files {
		name, err := safeName(f.Name)
		if err != nil {
			zw.Close()
			return err
		}
		entry, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Store,
			Modified: modified,
		})
		if err != nil {
			zw.Close()
			return fmt.Errorf("failed to add %s: %w", name, err)
		}
		if _, err := entry.Write(f.Data); err != nil {
			zw.Close()
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

// WriteZipFile creates path and writes files into it as a ZIP archive.
func WriteZipFile(path string, files []File) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	if err := WriteZip(f, files, time.Now()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteDir writes each file into dir, creating dir if needed. It returns the
// written paths in order.
func WriteDir(dir string, files []File) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		name, err := safeName(f.Name)
		if err != nil {
			return paths, err
		}
		out := filepath.Join(dir, name)
		if err := os.WriteFile(out, f.Data, 0o644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", out, err)
		}
		paths = append(paths, out)
	}
	return paths, nil
}

// Write sends files to a .zip archive when dest ends in ".zip", otherwise to
// the directory dest. It returns the paths created.
func Write(dest string, files []File) ([]string, error) {
	if strings.EqualFold(filepath.Ext(dest), ".zip") {
		if dir := filepath.Dir(dest); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := WriteZipFile(dest, files); err != nil {
			return nil, err
		}
		return []string{dest}, nil
	}
	return WriteDir(dest, files)
}

func safeName(name string) (string, error) {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "" || base == "." || base == ".." || base == "/" {
		return "", fmt.Errorf("invalid output name %q", name)
	}
	return base, nil
}
