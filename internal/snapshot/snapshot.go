// Package snapshot validates static snapshot documents against their JSON schemas.
package snapshot

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/lateral-entry-portal/portal/internal/sources"
)

// ErrInvalidDocument is returned when a document does not match its schema
var ErrInvalidDocument = errors.New("invalid snapshot document")

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var (
	compileOnce sync.Once
	compiled    map[sources.Document]*jsonschema.Schema
	compileErr  error
)

// schemaBaseURL identifies the embedded schemas; nothing is fetched from it
const schemaBaseURL = "https://lateral-entry-portal.local/"

func schemaName(doc sources.Document) string {
	return "schemas/" + strings.TrimSuffix(string(doc), ".json") + ".schema.json"
}

// loadSchemas compiles every embedded schema once
func loadSchemas() (map[sources.Document]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		for _, doc := range sources.Documents {
			name := schemaName(doc)
			data, err := schemaFS.ReadFile(name)
			if err != nil {
				compileErr = fmt.Errorf("failed to read schema %s: %w", name, err)
				return
			}
			parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("failed to parse schema %s: %w", name, err)
				return
			}
			if err := c.AddResource(schemaBaseURL+name, parsed); err != nil {
				compileErr = fmt.Errorf("failed to add schema %s: %w", name, err)
				return
			}
		}

		schemas := make(map[sources.Document]*jsonschema.Schema, len(sources.Documents))
		for _, doc := range sources.Documents {
			sch, err := c.Compile(schemaBaseURL + schemaName(doc))
			if err != nil {
				compileErr = fmt.Errorf("failed to compile schema for %s: %w", doc, err)
				return
			}
			schemas[doc] = sch
		}
		compiled = schemas
	})
	return compiled, compileErr
}

// Validate checks data against the schema of doc
func Validate(doc sources.Document, data []byte) error {
	if !doc.Valid() {
		return fmt.Errorf("unknown snapshot document %q", doc)
	}

	schemas, err := loadSchemas()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %s is not valid JSON: %w", ErrInvalidDocument, doc, err)
	}

	if err := schemas[doc].Validate(inst); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidDocument, doc, err)
	}

	return nil
}

// ValidateSource fetches every snapshot document from src and validates it.
// All failures are returned joined.
func ValidateSource(ctx context.Context, src sources.StaticSource) error {
	var errs []error
	for _, doc := range sources.Documents {
		data, err := src.Fetch(ctx, doc)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to read %s: %w", src.Location(doc), err))
			continue
		}
		if err := Validate(doc, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
