// Package sources provides access to the portal's static snapshot documents.
//
// The live portal API can be replaced by three pre-generated JSON documents
// (stats.json, batches.json, entrants.json). This package abstracts where
// those documents live:
//   - StaticSource: reads a document by name
//   - fileStaticSource: documents in a local directory
//   - httpStaticSource: documents under a base URL, e.g. a static site
//   - StorageManager: writes documents atomically into a local directory
//
// NewStaticSource picks the implementation from the static configuration.
package sources
