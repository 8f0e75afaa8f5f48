// Package query implements the interactive entity browser: a prompt loop
// completing entity ids and rendering the chosen entity's mentions in
// their sentence context.
package query

import (
	"fmt"
	"strings"

	"github.com/ostraka/corefspan/coref"
	"github.com/ostraka/corefspan/doc"
	"github.com/ostraka/corefspan/render"
	"github.com/ostraka/corefspan/span"

	prompt "github.com/c-bata/go-prompt"
)

type Handler struct {
	Renderer *render.Text

	d *doc.Document
	l *coref.Layer
}

func NewHandler(d *doc.Document, l *coref.Layer, r *render.Text) *Handler {
	return &Handler{Renderer: r, d: d, l: l}
}

func (h *Handler) Run() error {

	fmt.Println("🔑 Ctrl+X: Toggle prefix, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🔖 ", h.completer(),
			prompt.OptionTitle("corefspan browse"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.HasPrefix = !h.Renderer.HasPrefix
				},
			}),
		)

		if in == "quit" {
			return nil
		}

		history = append(history, in)

		entity := h.l.Entity(strings.TrimSpace(in))
		if entity == nil {
			fmt.Printf("❌ unknown entity %q\n", in)
			continue
		}

		if err := h.show(entity); err != nil {
			fmt.Printf("❌ %s\n", err)
		}
	}
}

// show renders every tree touched by the entity, with only this entity's
// mentions bracketed.
func (h *Handler) show(entity *coref.Entity) error {
	ids := coref.MentionIDs(h.l.Entities())

	seen := map[*doc.Tree]bool{}
	for _, m := range entity.Mentions() {
		tree := m.Head.Tree()
		if seen[tree] {
			continue
		}
		seen[tree] = true

		var mentions []*coref.Mention
		for _, em := range entity.Mentions() {
			if em.Head.Tree() == tree {
				mentions = append(mentions, em)
			}
		}

		events, err := span.Linearize(tree, mentions, ids)
		if err != nil {
			return err
		}
		if err := h.Renderer.Tree(tree, events); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) completer() prompt.Completer {
	return func(in prompt.Document) []prompt.Suggest {
		suggestions := []prompt.Suggest{{Text: "quit", Description: "leave the browser"}}

		for _, e := range h.l.Entities() {
			etype := e.Type
			if etype == "" {
				etype = coref.TypeOther
			}
			suggestions = append(suggestions, prompt.Suggest{
				Text:        e.ID,
				Description: fmt.Sprintf("%s, %d mentions", etype, len(e.Mentions())),
			})
		}

		return prompt.FilterHasPrefix(suggestions, in.GetWordBeforeCursor(), true)
	}
}
