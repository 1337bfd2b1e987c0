package sources

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

//go:generate mockgen -destination=mocks/mock_storage_manager.go -package=mocks -source=storage_manager.go StorageManager

// StorageManager persists snapshot documents
type StorageManager interface {
	// Store replaces a document with data
	Store(ctx context.Context, doc Document, data []byte) error
}

// fileStorageManager implements StorageManager using a local directory,
// the same layout fileStaticSource reads from
type fileStorageManager struct {
	basePath string
}

// NewFileStorageManager creates a new file-based storage manager
func NewFileStorageManager(basePath string) StorageManager {
	return &fileStorageManager{
		basePath: basePath,
	}
}

// Store writes the document through a temporary file and a rename, so
// readers never observe a partially written snapshot
func (f *fileStorageManager) Store(_ context.Context, doc Document, data []byte) error {
	if !doc.Valid() {
		return fmt.Errorf("unknown static document %q", doc)
	}

	if err := os.MkdirAll(f.basePath, 0750); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	filePath := filepath.Join(f.basePath, string(doc))

	tempPath := filePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary file for %s: %w", doc, err)
	}

	if err := os.Rename(tempPath, filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename %s: %w", doc, err)
	}

	return nil
}
