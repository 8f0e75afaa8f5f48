package render

import (
	"encoding/json"
	"io"

	"github.com/ostraka/corefspan/coref"
	"github.com/ostraka/corefspan/doc"
	"github.com/ostraka/corefspan/span"
)

// JSON writes the linearized event streams as a JSON array, one element
// per tree, for downstream tooling.
type JSON struct {
	W io.Writer
}

var _ Renderer = (*JSON)(nil)

// NewJSON creates a JSON renderer writing to w.
func NewJSON(w io.Writer) *JSON {
	return &JSON{W: w}
}

type jsonTree struct {
	Address string      `json:"address"`
	Events  []jsonEvent `json:"events"`
}

type jsonEvent struct {
	Kind      string `json:"kind"`
	Ord       int    `json:"ord,omitempty"`
	Form      string `json:"form,omitempty"`
	IsHead    bool   `json:"is_head,omitempty"`
	Subspan   string `json:"subspan,omitempty"`
	Entity    string `json:"entity,omitempty"`
	Mention   string `json:"mention,omitempty"`
	Type      string `json:"type,omitempty"`
	Singleton bool   `json:"singleton,omitempty"`
	Crossing  bool   `json:"crossing,omitempty"`
	Other     string `json:"other,omitempty"`
}

// Render serializes the whole document.
func (r *JSON) Render(d *doc.Document, l *coref.Layer) error {
	ids := coref.MentionIDs(l.Entities())

	trees := []jsonTree{}
	for _, tree := range d.Trees() {
		events, err := span.Linearize(tree, l.MentionsIn(tree), ids)
		if err != nil {
			return err
		}

		jt := jsonTree{Address: tree.Address(), Events: []jsonEvent{}}
		for _, ev := range events {
			jt.Events = append(jt.Events, toJSON(ev))
		}
		trees = append(trees, jt)
	}

	return json.NewEncoder(r.W).Encode(trees)
}

func toJSON(ev span.Event) jsonEvent {
	switch ev.Kind {
	case span.Visit:
		return jsonEvent{
			Kind:   ev.Kind.String(),
			Ord:    ev.Node.Ord,
			Form:   ev.Node.Form,
			IsHead: ev.IsHead,
		}
	case span.Open:
		return jsonEvent{
			Kind:      ev.Kind.String(),
			Subspan:   ev.Subspan.ID,
			Entity:    ev.EntityID,
			Mention:   ev.MentionID,
			Type:      string(ev.EntityType),
			Singleton: ev.Singleton,
			Crossing:  ev.CrossingContinuation,
			Other:     ev.Other,
		}
	}
	return jsonEvent{Kind: ev.Kind.String(), Subspan: ev.Subspan.ID}
}
