package doc

// Node represents one token of a tree. Empty nodes (elided tokens) carry no
// pronounced surface form but still occupy an ordinal slot.
type Node struct {
	// Ord is the 1-based position of the node within its tree.
	// It is dense: after RecomputeOrdering the ordinals of a tree are
	// exactly 1..N.
	Ord int `json:"ord"`

	// The surface form of the token
	Form string `json:"form"`

	// The lemma of the token
	Lemma string `json:"lemma,omitempty"`

	// Head is the ordinal of the parent node, 0 for nodes attached
	// directly under the sentinel root.
	Head int `json:"head"`

	// Empty marks an elided token.
	Empty bool `json:"empty,omitempty"`

	// NoSpaceAfter marks that no space separates this token from the next
	// one in the original text.
	NoSpaceAfter bool `json:"no_space_after,omitempty"`

	tree *Tree
}

// Tree returns the tree owning this node, nil for detached nodes.
func (n *Node) Tree() *Tree {
	return n.tree
}

// MWT is a multiword token: a surface form covering a run of nodes.
type MWT struct {
	Form  string  `json:"form"`
	Words []*Node `json:"-"`
}
