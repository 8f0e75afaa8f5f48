package storage

import (
	"github.com/ostraka/corefspan/coref"
	"github.com/ostraka/corefspan/doc"
)

// Meta is the listing entry of a stored document. Content is not loaded.
type Meta struct {
	Name     string
	Bundles  int
	Entities int
}

// DocReader defines read operations for document storage.
type DocReader interface {
	// List returns the metadata of all stored documents, sorted by name.
	List() ([]Meta, error)

	// Read returns a document and its coreference layer by name.
	Read(name string) (*doc.Document, *coref.Layer, error)
}

// DocWriter defines write operations for document storage.
type DocWriter interface {
	// Write persists a document and its coreference layer under a name,
	// replacing any previous version.
	Write(name string, d *doc.Document, l *coref.Layer) error
}

// DocRepository combines read and write operations.
type DocRepository interface {
	DocReader
	DocWriter
}
