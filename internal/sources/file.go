package sources

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// fileStaticSource reads documents from a local directory
type fileStaticSource struct {
	dir string
}

// NewFileStaticSource creates a static source over a local directory
func NewFileStaticSource(dir string) StaticSource {
	return &fileStaticSource{dir: dir}
}

// Fetch reads the document file
func (s *fileStaticSource) Fetch(_ context.Context, doc Document) ([]byte, error) {
	if !doc.Valid() {
		return nil, fmt.Errorf("unknown static document %q", doc)
	}

	path := s.Location(doc)

	//nolint:gosec // Directory comes from configuration and the file name from a fixed set
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return data, nil
}

// Location returns the document's file path
func (s *fileStaticSource) Location(doc Document) string {
	return filepath.Join(s.dir, string(doc))
}
