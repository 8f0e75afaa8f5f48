package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ostraka/corefspan/coref"
	"github.com/ostraka/corefspan/doc"
)

// fixture builds a document with one tree "The big dog barked", entity a
// (animal) over the whole sentence with head "barked", entity b over
// "big dog" with head "dog".
func fixture(t *testing.T) (*doc.Document, *coref.Layer) {
	t.Helper()

	d := doc.NewDocument()
	b := d.CreateBundle("s1")
	tree := doc.NewTree("en")
	if err := b.AddTree(tree); err != nil {
		t.Fatalf("failed to add tree: %v", err)
	}
	for _, f := range []string{"The", "big", "dog", "barked"} {
		tree.AddNode(&doc.Node{Form: f})
	}
	nodes := tree.Descendants()

	l := coref.NewLayer()
	a := l.CreateEntity("a", coref.TypeAnimal)
	if _, err := a.AddMention(nodes[3], nodes, ""); err != nil {
		t.Fatalf("failed to add mention: %v", err)
	}
	bEnt := l.CreateEntity("b", "")
	if _, err := bEnt.AddMention(nodes[2], nodes[1:3], ""); err != nil {
		t.Fatalf("failed to add mention: %v", err)
	}

	return d, l
}

func TestTextRender(t *testing.T) {
	d, l := fixture(t)

	var buf bytes.Buffer
	r := NewText(&buf)
	if err := r.Render(d, l); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	want := "[ae1 The [be1 big dog] barked]\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestTextRenderPrefix(t *testing.T) {
	d, l := fixture(t)

	var buf bytes.Buffer
	r := NewText(&buf)
	r.HasPrefix = true
	if err := r.Render(d, l); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "[s1/en] ") {
		t.Errorf("missing address prefix: %q", buf.String())
	}
}

func TestTextRenderColorIsStable(t *testing.T) {
	d, l := fixture(t)

	render := func() string {
		var buf bytes.Buffer
		r := NewText(&buf)
		r.HasColor = true
		if err := r.Render(d, l); err != nil {
			t.Fatalf("render failed: %v", err)
		}
		return buf.String()
	}

	first := render()
	second := render()
	if first != second {
		t.Fatal("colored output differs between identical passes")
	}
	if !strings.Contains(first, Off) {
		t.Error("colored output carries no escape codes")
	}
}

func TestTextRenderNoSpaceAfter(t *testing.T) {
	d := doc.NewDocument()
	b := d.CreateBundle("s1")
	tree := doc.NewTree("")
	if err := b.AddTree(tree); err != nil {
		t.Fatal(err)
	}
	tree.AddNode(&doc.Node{Form: "wait", NoSpaceAfter: true})
	tree.AddNode(&doc.Node{Form: "!"})

	var buf bytes.Buffer
	r := NewText(&buf)
	if err := r.Render(d, coref.NewLayer()); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if buf.String() != "wait!\n" {
		t.Errorf("got %q, want %q", buf.String(), "wait!\n")
	}
}

func TestHTMLRender(t *testing.T) {
	d, l := fixture(t)

	var buf bytes.Buffer
	r := NewHTML(&buf)
	if err := r.Render(d, l); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	out := buf.String()

	// both entities are singletons in the fixture
	if !strings.Contains(out, `<span class="a ae1 animal singleton"`) {
		t.Error("missing span for entity a")
	}
	if !strings.Contains(out, `<span class="b be1 other singleton"`) {
		t.Error("missing span for entity b")
	}
	if !strings.Contains(out, "<b>barked</b>") {
		t.Error("head is not bold")
	}
	if got := strings.Count(out, "</span>"); got != 2 {
		t.Errorf("found %d close tags, want 2", got)
	}
	if !strings.Contains(out, ".animal {background: hsl(") {
		t.Error("missing type style")
	}
}

func TestJSONRender(t *testing.T) {
	d, l := fixture(t)

	var buf bytes.Buffer
	r := NewJSON(&buf)
	if err := r.Render(d, l); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	var trees []jsonTree
	if err := json.Unmarshal(buf.Bytes(), &trees); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(trees) != 1 {
		t.Fatalf("expected 1 tree, got %d", len(trees))
	}
	if trees[0].Address != "s1/en" {
		t.Errorf("address = %q", trees[0].Address)
	}
	// 4 visits + 2 opens + 2 closes
	if len(trees[0].Events) != 8 {
		t.Fatalf("expected 8 events, got %d", len(trees[0].Events))
	}
	first := trees[0].Events[0]
	if first.Kind != "open" || first.Mention != "ae1" || first.Type != "animal" {
		t.Errorf("unexpected first event: %+v", first)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New("yaml", &bytes.Buffer{}); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}
