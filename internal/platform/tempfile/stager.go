// Package tempfile stages uploaded images on local disk before they are forwarded.
package tempfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ppe_backend/internal/feature/ppedetection/domain/entity"
	"ppe_backend/internal/feature/ppedetection/usecase"
)

// Stager writes images into temporary files under dir.
type Stager struct {
	dir string
}

// Stager implements usecase.Stager.
var _ usecase.Stager = (*Stager)(nil)

// NewStager creates a Stager. An empty dir means os.TempDir().
func NewStager(dir string) *Stager {
	return &Stager{dir: dir}
}

// Stage writes img.Data to a new temporary file. The caller owns the file and
// must call Remove on it.
func (s *Stager) Stage(img entity.UploadedImage) (usecase.StagedFile, error) {
	pattern := "ppe-*"
	if ext := filepath.Ext(filepath.Base(img.Filename)); ext != "" {
		pattern += ext
	}

	f, err := os.CreateTemp(s.dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()

	if _, err := f.Write(img.Data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	return &File{path: path, size: int64(len(img.Data))}, nil
}

// File is a staged image on disk.
type File struct {
	path string
	size int64
}

// Path returns the location of the staged file.
func (f *File) Path() string { return f.path }

// Size returns the number of bytes staged.
func (f *File) Size() int64 { return f.size }

// Open opens the staged file for reading from the start.
func (f *File) Open() (io.ReadSeekCloser, error) {
	r, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open temp file: %w", err)
	}
	return r, nil
}

// Remove deletes the staged file. Removing an already removed file is not an error.
func (f *File) Remove() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove temp file: %w", err)
	}
	return nil
}
