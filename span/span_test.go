package span

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/ostraka/corefspan/coref"
	"github.com/ostraka/corefspan/doc"
)

func buildTree(t *testing.T, forms ...string) *doc.Tree {
	t.Helper()

	d := doc.NewDocument()
	b := d.CreateBundle("s1")
	tree := doc.NewTree("en")
	if err := b.AddTree(tree); err != nil {
		t.Fatalf("failed to add tree: %v", err)
	}
	for _, f := range forms {
		tree.AddNode(&doc.Node{Form: f})
	}
	return tree
}

func addMention(t *testing.T, e *coref.Entity, tree *doc.Tree, headOrd int, ords ...int) *coref.Mention {
	t.Helper()

	nodes := tree.Descendants()
	spanNodes := make([]*doc.Node, 0, len(ords))
	for _, o := range ords {
		spanNodes = append(spanNodes, nodes[o-1])
	}
	m, err := e.AddMention(nodes[headOrd-1], spanNodes, "")
	if err != nil {
		t.Fatalf("failed to add mention: %v", err)
	}
	return m
}

// script flattens an event sequence into compact strings for comparison.
func script(events []Event) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		switch ev.Kind {
		case Visit:
			out = append(out, fmt.Sprintf("v:%d", ev.Node.Ord))
		case Open:
			s := "o:" + ev.Subspan.ID
			if ev.CrossingContinuation {
				s += "!"
			}
			out = append(out, s)
		case Close:
			out = append(out, "c:"+ev.Subspan.ID)
		}
	}
	return out
}

func TestLinearizeNested(t *testing.T) {
	tree := buildTree(t, "The", "big", "dog", "barked")
	l := coref.NewLayer()
	a := l.CreateEntity("a", coref.TypeAnimal)
	bEnt := l.CreateEntity("b", "")
	addMention(t, a, tree, 4, 1, 2, 3, 4)
	addMention(t, bEnt, tree, 3, 2, 3)

	ids := coref.MentionIDs(l.Entities())
	events, err := Linearize(tree, l.MentionsIn(tree), ids)
	if err != nil {
		t.Fatalf("linearize failed: %v", err)
	}

	want := []string{"o:ae1", "v:1", "o:be1", "v:2", "v:3", "c:be1", "v:4", "c:ae1"}
	if got := script(events); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLinearizeCrossing(t *testing.T) {
	tree := buildTree(t, "w1", "w2", "w3", "w4")
	l := coref.NewLayer()
	a := l.CreateEntity("a", "")
	bEnt := l.CreateEntity("b", "")
	addMention(t, a, tree, 1, 1, 2, 3)
	addMention(t, bEnt, tree, 2, 2, 3, 4)

	ids := coref.MentionIDs(l.Entities())
	events, err := Linearize(tree, l.MentionsIn(tree), ids)
	if err != nil {
		t.Fatalf("linearize failed: %v", err)
	}

	// b is force-closed together with a after node 3 and re-opened as a
	// crossing continuation over its remaining node.
	want := []string{
		"o:ae1", "v:1", "o:be1", "v:2", "v:3",
		"c:be1", "c:ae1", "o:be1!", "v:4", "c:be1",
	}
	if got := script(events); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	// the continuation carries the flag on its open event
	for _, ev := range events {
		if ev.Kind == Open && ev.CrossingContinuation {
			if ev.Subspan.First().Ord != 4 {
				t.Errorf("continuation starts at ord %d, want 4", ev.Subspan.First().Ord)
			}
		}
	}
}

func TestLinearizeThreeWayCrossing(t *testing.T) {
	// a={1..4}, b={2,3}, c={3,4,5}: c crosses a and is force-closed twice,
	// producing a continuation of a continuation.
	tree := buildTree(t, "w1", "w2", "w3", "w4", "w5")
	l := coref.NewLayer()
	a := l.CreateEntity("a", "")
	bEnt := l.CreateEntity("b", "")
	cEnt := l.CreateEntity("c", "")
	addMention(t, a, tree, 1, 1, 2, 3, 4)
	addMention(t, bEnt, tree, 2, 2, 3)
	addMention(t, cEnt, tree, 3, 3, 4, 5)

	ids := coref.MentionIDs(l.Entities())
	events, err := Linearize(tree, l.MentionsIn(tree), ids)
	if err != nil {
		t.Fatalf("linearize failed: %v", err)
	}

	want := []string{
		"o:ae1", "v:1", "o:be1", "v:2", "o:ce1", "v:3", "c:ce1", "c:be1",
		"o:ce1!", "v:4", "c:ce1", "c:ae1",
		"o:ce1!", "v:5", "c:ce1",
	}
	if got := script(events); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLinearizeDiscontinuousMention(t *testing.T) {
	tree := buildTree(t, "w1", "w2", "w3", "w4", "w5")
	l := coref.NewLayer()
	a := l.CreateEntity("a", "")
	addMention(t, a, tree, 1, 1, 2, 4, 5)

	ids := coref.MentionIDs(l.Entities())
	events, err := Linearize(tree, l.MentionsIn(tree), ids)
	if err != nil {
		t.Fatalf("linearize failed: %v", err)
	}

	want := []string{
		"o:ae1[1/2]", "v:1", "v:2", "c:ae1[1/2]",
		"v:3",
		"o:ae1[2/2]", "v:4", "v:5", "c:ae1[2/2]",
	}
	if got := script(events); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLinearizeSingleton(t *testing.T) {
	tree := buildTree(t, "w1", "w2")
	l := coref.NewLayer()
	single := l.CreateEntity("s", "")
	pair := l.CreateEntity("p", "")
	addMention(t, single, tree, 1, 1)
	addMention(t, pair, tree, 2, 2)
	addMention(t, pair, tree, 1, 1)

	ids := coref.MentionIDs(l.Entities())
	events, err := Linearize(tree, l.MentionsIn(tree), ids)
	if err != nil {
		t.Fatalf("linearize failed: %v", err)
	}

	for _, ev := range events {
		if ev.Kind != Open {
			continue
		}
		want := ev.EntityID == "s"
		if ev.Singleton != want {
			t.Errorf("entity %s: singleton = %v, want %v", ev.EntityID, ev.Singleton, want)
		}
	}
}

func TestLinearizeHeads(t *testing.T) {
	tree := buildTree(t, "w1", "w2", "w3")
	l := coref.NewLayer()
	a := l.CreateEntity("a", "")
	addMention(t, a, tree, 2, 1, 2, 3)

	ids := coref.MentionIDs(l.Entities())
	events, err := Linearize(tree, l.MentionsIn(tree), ids)
	if err != nil {
		t.Fatalf("linearize failed: %v", err)
	}

	for _, ev := range events {
		if ev.Kind != Visit {
			continue
		}
		want := ev.Node.Ord == 2
		if ev.IsHead != want {
			t.Errorf("node %d: is_head = %v, want %v", ev.Node.Ord, ev.IsHead, want)
		}
	}
}

func TestLinearizeIdenticalExtentsDeterministic(t *testing.T) {
	tree := buildTree(t, "w1", "w2")
	l := coref.NewLayer()
	a := l.CreateEntity("a", "")
	bEnt := l.CreateEntity("b", "")
	addMention(t, a, tree, 1, 1, 2)
	addMention(t, bEnt, tree, 1, 1, 2)

	ids := coref.MentionIDs(l.Entities())
	events, err := Linearize(tree, l.MentionsIn(tree), ids)
	if err != nil {
		t.Fatalf("linearize failed: %v", err)
	}

	// ties on extent sort by mention id, closes are LIFO
	want := []string{"o:ae1", "o:be1", "v:1", "v:2", "c:be1", "c:ae1"}
	if got := script(events); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLinearizeIdempotent(t *testing.T) {
	tree := buildTree(t, "w1", "w2", "w3", "w4")
	l := coref.NewLayer()
	a := l.CreateEntity("a", "")
	bEnt := l.CreateEntity("b", "")
	addMention(t, a, tree, 1, 1, 2, 3)
	addMention(t, bEnt, tree, 2, 2, 3, 4)

	ids := coref.MentionIDs(l.Entities())
	first, err := Linearize(tree, l.MentionsIn(tree), ids)
	if err != nil {
		t.Fatalf("linearize failed: %v", err)
	}
	second, err := Linearize(tree, l.MentionsIn(tree), ids)
	if err != nil {
		t.Fatalf("second linearize failed: %v", err)
	}

	if !reflect.DeepEqual(script(first), script(second)) {
		t.Fatalf("event sequences differ: %v vs %v", script(first), script(second))
	}
}

func TestLinearizeUnreachableSubspan(t *testing.T) {
	tree := buildTree(t, "w1", "w2", "w3")
	other := buildTree(t, "x1", "x2")
	l := coref.NewLayer()
	a := l.CreateEntity("a", "")
	addMention(t, a, other, 1, 1, 2)

	ids := coref.MentionIDs(l.Entities())
	_, err := Linearize(tree, a.Mentions(), ids)
	if !errors.Is(err, doc.ErrStructuralInconsistency) {
		t.Fatalf("got %v, want ErrStructuralInconsistency", err)
	}
}

func TestLinearizeDanglingOpen(t *testing.T) {
	tree := buildTree(t, "w1", "w2", "w3")
	l := coref.NewLayer()
	a := l.CreateEntity("a", "")
	m := addMention(t, a, tree, 2, 2, 3)

	// removing the last node of the span leaves the subspan unclosable
	tree.RemoveNode(m.Nodes()[1])

	ids := coref.MentionIDs(l.Entities())
	_, err := Linearize(tree, a.Mentions(), ids)
	if !errors.Is(err, doc.ErrStructuralInconsistency) {
		t.Fatalf("got %v, want ErrStructuralInconsistency", err)
	}
}

func TestLinearizeNoMentions(t *testing.T) {
	tree := buildTree(t, "w1", "w2")

	events, err := Linearize(tree, nil, nil)
	if err != nil {
		t.Fatalf("linearize failed: %v", err)
	}

	want := []string{"v:1", "v:2"}
	if got := script(events); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
