// Package filesystem stores documents as JSON files in a directory, one
// file per document, named <name>.json.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ostraka/corefspan/coref"
	"github.com/ostraka/corefspan/doc"
	"github.com/ostraka/corefspan/file"
	"github.com/ostraka/corefspan/storage"
)

type DocStore struct {
	root string
}

var _ storage.DocRepository = (*DocStore)(nil)

// NewDocStore creates a filesystem document store rooted at the given
// directory. The directory is created if missing.
func NewDocStore(root string) (*DocStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &DocStore{root: root}, nil
}

func (s *DocStore) List() ([]storage.Meta, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	metas := []storage.Meta{}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		d, l, err := s.Read(name)
		if err != nil {
			return nil, err
		}
		metas = append(metas, storage.Meta{
			Name:     name,
			Bundles:  len(d.Bundles()),
			Entities: len(l.Entities()),
		})
	}

	sort.Slice(metas, func(i, j int) bool { return metas[i].Name < metas[j].Name })
	return metas, nil
}

func (s *DocStore) Read(name string) (*doc.Document, *coref.Layer, error) {
	d, l, err := file.ReadDocument(s.path(name))
	if err != nil {
		return nil, nil, fmt.Errorf("doc %s: %w", name, err)
	}
	return d, l, nil
}

func (s *DocStore) Write(name string, d *doc.Document, l *coref.Layer) error {
	return file.WriteDocument(s.path(name), d, l)
}

func (s *DocStore) path(name string) string {
	return filepath.Join(s.root, name+".json")
}
