package doc

import "fmt"

// Bundle is an ordered group of parallel trees (zones) for the same
// underlying sentence.
type Bundle struct {
	// ID identifies the bundle inside its document and is used to build
	// the global address of each tree.
	ID string

	document *Document
	trees    []*Tree
}

// Document returns the document owning this bundle.
func (b *Bundle) Document() *Document {
	return b.document
}

// Trees returns the zone trees of the bundle in order.
func (b *Bundle) Trees() []*Tree {
	return b.trees
}

// AddTree appends a tree to the bundle. The zone label must be unique
// within the bundle.
func (b *Bundle) AddTree(t *Tree) error {
	for _, existing := range b.trees {
		if existing.Zone == t.Zone {
			return fmt.Errorf("%w: bundle %s already has zone %q",
				ErrInvalidOperation, b.ID, t.Zone)
		}
	}
	t.bundle = b
	b.trees = append(b.trees, t)
	return nil
}

// Tree returns the tree with the given zone, nil if absent.
func (b *Bundle) Tree(zone string) *Tree {
	for _, t := range b.trees {
		if t.Zone == zone {
			return t
		}
	}
	return nil
}

// Document is an ordered collection of bundles.
type Document struct {
	bundles []*Bundle
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Bundles returns the bundles of the document in order.
func (d *Document) Bundles() []*Bundle {
	return d.bundles
}

// CreateBundle appends a new bundle with the given id.
func (d *Document) CreateBundle(id string) *Bundle {
	b := &Bundle{ID: id, document: d}
	d.bundles = append(d.bundles, b)
	return b
}

// Trees returns all trees of the document in document order.
func (d *Document) Trees() []*Tree {
	var trees []*Tree
	for _, b := range d.bundles {
		trees = append(trees, b.trees...)
	}
	return trees
}
