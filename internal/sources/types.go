package sources

import (
	"context"
	"errors"
)

// Document names a static snapshot document
type Document string

const (
	// DocumentStats holds aggregate statistics
	DocumentStats Document = "stats.json"

	// DocumentBatches lists batch years with their metadata
	DocumentBatches Document = "batches.json"

	// DocumentEntrants holds every entrant, either as a bare array or
	// wrapped in an object under "entrants"
	DocumentEntrants Document = "entrants.json"
)

// Documents lists every snapshot document
var Documents = []Document{DocumentStats, DocumentBatches, DocumentEntrants}

// Valid reports whether d is a known snapshot document
func (d Document) Valid() bool {
	switch d {
	case DocumentStats, DocumentBatches, DocumentEntrants:
		return true
	default:
		return false
	}
}

// ErrDocumentNotFound is returned when a snapshot document does not exist at its source
var ErrDocumentNotFound = errors.New("static document not found")

//go:generate mockgen -destination=mocks/mock_static_source.go -package=mocks -source=types.go StaticSource

// StaticSource reads static snapshot documents
type StaticSource interface {
	// Fetch returns the raw content of a document
	Fetch(ctx context.Context, doc Document) ([]byte, error)

	// Location describes where a document is read from, for logging
	Location(doc Document) string
}
