package doc

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
)

var (
	// ErrInvalidOperation signals a forbidden mutation of the sentinel
	// root (reparenting, shifting).
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrStructuralInconsistency signals broken document-model
	// invariants: non-dense ordinals, a mention without nodes, or a span
	// left open after the last node of a tree.
	ErrStructuralInconsistency = errors.New("structural inconsistency")

	// ErrMissingText signals a tree without stored text under a text
	// policy that requires one.
	ErrMissingText = errors.New("missing text")
)

// TextPolicy selects the behavior of Tree.ResolvedText when a tree has no
// stored surface text.
type TextPolicy int

const (
	// TextDetokenize computes the text with the detokenizer collaborator.
	TextDetokenize TextPolicy = iota
	// TextEmpty returns an empty string.
	TextEmpty
	// TextFatal fails with ErrMissingText.
	TextFatal
	// TextWarnDetokenize logs a diagnostic, then detokenizes.
	TextWarnDetokenize
	// TextWarnEmpty logs a diagnostic, then returns an empty string.
	TextWarnEmpty
)

// Detokenizer computes a surface text from a node sequence. Detokenization
// heuristics live outside the document model.
type Detokenizer interface {
	Detokenize(nodes []*Node) string
}

// Tree is the sentinel root of one sentence: ordinal 0, not a real token.
// It owns the ordered node sequence of the sentence.
type Tree struct {
	// Zone identifies this tree among the parallel trees of its bundle.
	Zone string

	// Text is the stored surface text of the sentence, empty if unknown.
	Text string

	// Comment is free-form metadata attached to the sentence.
	Comment string

	bundle *Bundle

	// nodes caches the descendants sorted by ordinal. Recomputed on every
	// structural mutation.
	nodes []*Node

	mwts []*MWT
}

// NewTree creates a detached tree for the given zone.
func NewTree(zone string) *Tree {
	return &Tree{Zone: zone}
}

// Bundle returns the bundle this tree belongs to, nil for detached trees.
func (t *Tree) Bundle() *Bundle {
	return t.bundle
}

// Descendants returns all real nodes of the tree sorted by ordinal. The
// sentinel itself is never included. The returned slice is the internal
// cache; callers must not modify it.
func (t *Tree) Descendants() []*Node {
	return t.nodes
}

// AddNode appends a node at the end of the tree and assigns the next
// ordinal. The node must not belong to another tree.
func (t *Tree) AddNode(n *Node) *Node {
	n.tree = t
	n.Ord = len(t.nodes) + 1
	t.nodes = append(t.nodes, n)
	return n
}

// RemoveNode detaches a node from the tree and recomputes the ordering so
// that the remaining ordinals stay dense.
func (t *Tree) RemoveNode(n *Node) {
	kept := t.nodes[:0]
	for _, d := range t.nodes {
		if d != n {
			kept = append(kept, d)
		}
	}
	t.nodes = kept
	n.tree = nil
	t.RecomputeOrdering()
}

// RecomputeOrdering re-sorts the nodes by their current ordinals and
// reassigns dense ordinals 1..N. It must be called after any operation that
// changes relative order or removes a node. Idempotent.
func (t *Tree) RecomputeOrdering() {
	sort.SliceStable(t.nodes, func(i, j int) bool {
		return t.nodes[i].Ord < t.nodes[j].Ord
	})
	for i, n := range t.nodes {
		n.Ord = i + 1
	}
}

// Validate checks the ordinal invariant: the descendants carry ordinals
// exactly 1..N with no gaps or duplicates.
func (t *Tree) Validate() error {
	for i, n := range t.nodes {
		if n.Ord != i+1 {
			return fmt.Errorf("%w: tree %s: node %d has ord %d, want %d",
				ErrStructuralInconsistency, t.Address(), i, n.Ord, i+1)
		}
	}
	return nil
}

// SetParent rejects any attempt at reparenting the sentinel root.
func (t *Tree) SetParent(*Node) error {
	return fmt.Errorf("%w: the sentinel root of %s cannot have a parent",
		ErrInvalidOperation, t.Address())
}

// Shift rejects any attempt at moving the sentinel root: it is always the
// logical start of the tree.
func (t *Tree) Shift(*Node, bool) error {
	return fmt.Errorf("%w: the sentinel root of %s cannot be shifted",
		ErrInvalidOperation, t.Address())
}

// Address returns the document-wide id of the tree:
// bundle id + "/" + zone, the slash omitted when the zone is empty.
func (t *Tree) Address() string {
	bundleID := "?"
	if t.bundle != nil {
		bundleID = t.bundle.ID
	}
	if t.Zone == "" {
		return bundleID
	}
	return bundleID + "/" + t.Zone
}

// ResolvedText returns the stored text of the tree if present. Otherwise
// the policy decides: empty string, hard error, or delegation to the
// detokenizer collaborator; the warn variants log a diagnostic first.
// ResolvedText never mutates the stored text.
func (t *Tree) ResolvedText(policy TextPolicy, d Detokenizer) (string, error) {
	if t.Text != "" {
		return t.Text, nil
	}

	switch policy {
	case TextFatal:
		return "", fmt.Errorf("%w: tree %s has no stored text", ErrMissingText, t.Address())
	case TextWarnDetokenize, TextWarnEmpty:
		log.Printf("tree %s has no stored text", t.Address())
	}

	if policy == TextEmpty || policy == TextWarnEmpty {
		return "", nil
	}

	if d == nil {
		return "", fmt.Errorf("%w: tree %s has no stored text and no detokenizer",
			ErrMissingText, t.Address())
	}
	return d.Detokenize(t.nodes), nil
}

// CreateMultiwordToken groups a run of nodes under one surface form.
func (t *Tree) CreateMultiwordToken(words []*Node, form string) *MWT {
	mwt := &MWT{Form: form, Words: words}
	t.mwts = append(t.mwts, mwt)
	return mwt
}

// MultiwordTokens returns all multiword tokens of the tree.
func (t *Tree) MultiwordTokens() []*MWT {
	return t.mwts
}

// SpaceDetokenizer joins surface forms with single spaces, honoring
// NoSpaceAfter and skipping empty nodes.
type SpaceDetokenizer struct{}

var _ Detokenizer = SpaceDetokenizer{}

func (SpaceDetokenizer) Detokenize(nodes []*Node) string {
	var b strings.Builder
	space := false
	for _, n := range nodes {
		if n.Empty {
			continue
		}
		if space {
			b.WriteByte(' ')
		}
		b.WriteString(n.Form)
		space = !n.NoSpaceAfter
	}
	return b.String()
}
