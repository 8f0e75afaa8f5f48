// Package edit implements the interactive coreference editor: a prompt
// loop mutating the coref layer of one document and persisting it through
// a document writer.
package edit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ostraka/corefspan/coref"
	"github.com/ostraka/corefspan/doc"
	"github.com/ostraka/corefspan/storage"

	prompt "github.com/c-bata/go-prompt"
)

type Handler struct {
	Name   string
	Writer storage.DocWriter

	d *doc.Document
	l *coref.Layer
}

func NewHandler(name string, d *doc.Document, l *coref.Layer, w storage.DocWriter) *Handler {
	return &Handler{Name: name, Writer: w, d: d, l: l}
}

func (h *Handler) Run() error {

	fmt.Println("🔑 type <entity> <type> | merge <into> <from> | del <mention> | save, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🔖 ", h.completer(),
			prompt.OptionTitle("corefspan edit"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionHistory(history),
		)

		if in == "quit" {
			return nil
		}

		history = append(history, in)

		if in == "save" {
			if err := h.Writer.Write(h.Name, h.d, h.l); err != nil {
				fmt.Printf("❌ %s\n", err)
				continue
			}
			fmt.Printf("💾 saved %s\n", h.Name)
			continue
		}

		if err := h.apply(in); err != nil {
			fmt.Printf("❌ %s\n", err)
		}
	}
}

func (h *Handler) apply(in string) error {
	fields := strings.Fields(in)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "type":
		if len(fields) != 3 {
			return errors.New("usage: type <entity> <type>")
		}
		return h.setType(fields[1], fields[2])
	case "merge":
		if len(fields) != 3 {
			return errors.New("usage: merge <into> <from>")
		}
		return h.merge(fields[1], fields[2])
	case "del":
		if len(fields) != 2 {
			return errors.New("usage: del <mention>")
		}
		return h.deleteMention(fields[1])
	}

	return fmt.Errorf("unknown command: %s", fields[0])
}

func (h *Handler) setType(id, etype string) error {
	e := h.l.Entity(id)
	if e == nil {
		return fmt.Errorf("unknown entity %q", id)
	}
	for _, known := range coref.KnownTypes() {
		if coref.EntityType(etype) == known {
			e.Type = known
			return nil
		}
	}
	if coref.EntityType(etype) == coref.TypeOther {
		e.Type = coref.TypeOther
		return nil
	}
	return fmt.Errorf("unknown entity type %q", etype)
}

func (h *Handler) merge(into, from string) error {
	dst := h.l.Entity(into)
	if dst == nil {
		return fmt.Errorf("unknown entity %q", into)
	}
	src := h.l.Entity(from)
	if src == nil {
		return fmt.Errorf("unknown entity %q", from)
	}
	h.l.Merge(dst, src)
	return nil
}

// deleteMention removes a mention by its display id. Deleting the last
// mention of an entity removes the entity.
func (h *Handler) deleteMention(id string) error {
	ids := coref.MentionIDs(h.l.Entities())
	for m, mid := range ids {
		if mid == id {
			h.l.RemoveMention(m)
			return nil
		}
	}
	return fmt.Errorf("unknown mention %q", id)
}

func (h *Handler) completer() prompt.Completer {
	return func(in prompt.Document) []prompt.Suggest {
		suggestions := []prompt.Suggest{
			{Text: "type", Description: "set the type of an entity"},
			{Text: "merge", Description: "merge one entity into another"},
			{Text: "del", Description: "delete a mention"},
			{Text: "save", Description: "persist the document"},
			{Text: "quit", Description: "leave the editor"},
		}

		for _, e := range h.l.Entities() {
			suggestions = append(suggestions, prompt.Suggest{
				Text:        e.ID,
				Description: fmt.Sprintf("%d mentions", len(e.Mentions())),
			})
		}
		for _, known := range coref.KnownTypes() {
			suggestions = append(suggestions, prompt.Suggest{Text: string(known)})
		}

		return prompt.FilterHasPrefix(suggestions, in.GetWordBeforeCursor(), true)
	}
}
