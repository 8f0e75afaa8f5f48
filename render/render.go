package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ostraka/corefspan/coref"
	"github.com/ostraka/corefspan/doc"
	"github.com/ostraka/corefspan/span"
)

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"

	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
)

// Renderer consumes a document and its coreference layer and writes some
// representation of the annotated text.
type Renderer interface {
	Render(d *doc.Document, l *coref.Layer) error
}

func SupportedFormats() []string {
	return []string{"text", "html", "json"}
}

// New returns the renderer for a format name, writing to w.
func New(format string, w io.Writer) (Renderer, error) {
	switch format {
	case "text":
		return NewText(w), nil
	case "html":
		return NewHTML(w), nil
	case "json":
		return NewJSON(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", format)
}

// Text renders each tree as one line of bracketed text:
//
//	[c1e1 Anna] told [c2e1 Mary] that [c1e2 she] won .
//
// Mention heads are rendered bold, empty tokens gray, and crossing
// continuations marked with "!" after the mention id.
type Text struct {
	W io.Writer

	HasColor bool

	// HasPrefix prepends the tree address to each line.
	HasPrefix bool
}

var _ Renderer = (*Text)(nil)

// NewText creates a Text renderer writing to w.
func NewText(w io.Writer) *Text {
	return &Text{W: w}
}

// Render writes all trees of the document in document order.
func (r *Text) Render(d *doc.Document, l *coref.Layer) error {
	ids := coref.MentionIDs(l.Entities())
	for _, tree := range d.Trees() {
		events, err := span.Linearize(tree, l.MentionsIn(tree), ids)
		if err != nil {
			return err
		}
		if err := r.Tree(tree, events); err != nil {
			return err
		}
	}
	return nil
}

// Tree writes one linearized tree as a single line.
func (r *Text) Tree(tree *doc.Tree, events []span.Event) error {
	var b strings.Builder
	if r.HasPrefix {
		fmt.Fprintf(&b, "[%s] ", tree.Address())
	}

	space := false
	for _, ev := range events {
		switch ev.Kind {
		case span.Open:
			if space {
				b.WriteByte(' ')
				space = false
			}
			id := ev.MentionID
			if ev.CrossingContinuation {
				id += "!"
			}
			b.WriteString(r.color(typeColor(ev.EntityType), "["+id))
			b.WriteByte(' ')
		case span.Visit:
			if space {
				b.WriteByte(' ')
			}
			b.WriteString(r.form(ev))
			space = !ev.Node.NoSpaceAfter
		case span.Close:
			etype := ev.Subspan.Mention.Entity().Type
			if etype == "" {
				etype = coref.TypeOther
			}
			b.WriteString(r.color(typeColor(etype), "]"))
		}
	}

	_, err := fmt.Fprintln(r.W, b.String())
	return err
}

func (r *Text) form(ev span.Event) string {
	switch {
	case ev.IsHead:
		return r.color(White, ev.Node.Form)
	case ev.Node.Empty:
		return r.color(Gray, ev.Node.Form)
	}
	return ev.Node.Form
}

func (r *Text) color(code, s string) string {
	if !r.HasColor {
		return s
	}
	return code + s + Off
}

// typeColor maps the fixed entity type enumeration onto the color table,
// so a type keeps its color across documents.
func typeColor(etype coref.EntityType) string {
	table := []string{
		Red, Green, Yellow, Purple, Magenta, Teal,
		Yellow256, Grey256, Green256, Black, White,
	}
	for i, known := range coref.KnownTypes() {
		if known == etype {
			return table[i%len(table)]
		}
	}
	return Gray
}
