// Package file reads and writes documents with their coreference layer as
// JSON files. The format references mention nodes by bundle, zone and
// ordinal, so it survives round trips without node identity.
package file

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ostraka/corefspan/coref"
	"github.com/ostraka/corefspan/doc"
)

// DocJSON is the serialized shape of a document plus its coref layer.
type DocJSON struct {
	Bundles  []BundleJSON `json:"bundles"`
	Entities []EntityJSON `json:"entities,omitempty"`
}

type BundleJSON struct {
	ID    string     `json:"id"`
	Trees []TreeJSON `json:"trees"`
}

type TreeJSON struct {
	Zone    string     `json:"zone,omitempty"`
	Text    string     `json:"text,omitempty"`
	Comment string     `json:"comment,omitempty"`
	Nodes   []doc.Node `json:"nodes"`
	MWTs    []MWTJSON  `json:"mwts,omitempty"`
}

type MWTJSON struct {
	Form string `json:"form"`
	Ords []int  `json:"ords"`
}

type EntityJSON struct {
	ID       string        `json:"id"`
	Type     string        `json:"type,omitempty"`
	Mentions []MentionJSON `json:"mentions"`
}

// MentionJSON references its span by tree address parts and ordinals.
type MentionJSON struct {
	Bundle string `json:"bundle"`
	Zone   string `json:"zone,omitempty"`
	Head   int    `json:"head"`
	Ords   []int  `json:"ords"`
	Other  string `json:"other,omitempty"`
}

// ReadDocument reads a document JSON from the given path.
func ReadDocument(path string) (*doc.Document, *coref.Layer, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var dj DocJSON
	if err := json.Unmarshal(f, &dj); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	return Decode(dj)
}

// WriteDocument writes a document JSON to the given path.
func WriteDocument(path string, d *doc.Document, l *coref.Layer) error {
	data, err := json.MarshalIndent(Encode(d, l), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Encode converts the in-memory model to its serialized shape.
func Encode(d *doc.Document, l *coref.Layer) DocJSON {
	dj := DocJSON{Bundles: []BundleJSON{}}

	for _, b := range d.Bundles() {
		bj := BundleJSON{ID: b.ID}
		for _, t := range b.Trees() {
			tj := TreeJSON{Zone: t.Zone, Text: t.Text, Comment: t.Comment}
			for _, n := range t.Descendants() {
				tj.Nodes = append(tj.Nodes, *n)
			}
			for _, mwt := range t.MultiwordTokens() {
				mj := MWTJSON{Form: mwt.Form}
				for _, w := range mwt.Words {
					mj.Ords = append(mj.Ords, w.Ord)
				}
				tj.MWTs = append(tj.MWTs, mj)
			}
			bj.Trees = append(bj.Trees, tj)
		}
		dj.Bundles = append(dj.Bundles, bj)
	}

	if l == nil {
		return dj
	}

	for _, e := range l.Entities() {
		ej := EntityJSON{ID: e.ID, Type: string(e.Type)}
		for _, m := range e.Mentions() {
			tree := m.Head.Tree()
			mj := MentionJSON{
				Zone:  tree.Zone,
				Head:  m.Head.Ord,
				Other: m.Other,
			}
			if tree.Bundle() != nil {
				mj.Bundle = tree.Bundle().ID
			}
			for _, n := range m.Nodes() {
				mj.Ords = append(mj.Ords, n.Ord)
			}
			ej.Mentions = append(ej.Mentions, mj)
		}
		dj.Entities = append(dj.Entities, ej)
	}

	return dj
}

// Decode builds the in-memory model from its serialized shape.
func Decode(dj DocJSON) (*doc.Document, *coref.Layer, error) {
	d := doc.NewDocument()

	// tree lookup by bundle id and zone, for mention resolution
	trees := map[string]*doc.Tree{}

	for _, bj := range dj.Bundles {
		b := d.CreateBundle(bj.ID)
		for _, tj := range bj.Trees {
			t := doc.NewTree(tj.Zone)
			t.Text = tj.Text
			t.Comment = tj.Comment
			if err := b.AddTree(t); err != nil {
				return nil, nil, err
			}
			for _, nj := range tj.Nodes {
				n := nj
				t.AddNode(&n)
			}
			if err := t.Validate(); err != nil {
				return nil, nil, err
			}
			for _, mj := range tj.MWTs {
				words, err := nodesFor(t, mj.Ords)
				if err != nil {
					return nil, nil, err
				}
				t.CreateMultiwordToken(words, mj.Form)
			}
			trees[t.Address()] = t
		}
	}

	l := coref.NewLayer()
	for _, ej := range dj.Entities {
		e := l.CreateEntity(ej.ID, coref.EntityType(ej.Type))
		for _, mj := range ej.Mentions {
			addr := mj.Bundle
			if mj.Zone != "" {
				addr += "/" + mj.Zone
			}
			t := trees[addr]
			if t == nil {
				return nil, nil, fmt.Errorf("entity %s: unknown tree %s", ej.ID, addr)
			}
			nodes, err := nodesFor(t, mj.Ords)
			if err != nil {
				return nil, nil, fmt.Errorf("entity %s: %w", ej.ID, err)
			}
			head, err := nodesFor(t, []int{mj.Head})
			if err != nil {
				return nil, nil, fmt.Errorf("entity %s: %w", ej.ID, err)
			}
			if _, err := e.AddMention(head[0], nodes, mj.Other); err != nil {
				return nil, nil, err
			}
		}
	}

	return d, l, nil
}

func nodesFor(t *doc.Tree, ords []int) ([]*doc.Node, error) {
	descendants := t.Descendants()
	nodes := make([]*doc.Node, 0, len(ords))
	for _, ord := range ords {
		if ord < 1 || ord > len(descendants) {
			return nil, fmt.Errorf("tree %s has no node with ord %d", t.Address(), ord)
		}
		nodes = append(nodes, descendants[ord-1])
	}
	return nodes, nil
}
