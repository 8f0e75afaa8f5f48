package coref

import (
	"fmt"

	"github.com/ostraka/corefspan/doc"
)

// Subspan is one maximal ordinal-contiguous run of a mention's nodes.
// Subspans are derived per rendering pass and never persisted.
type Subspan struct {
	// Mention is the originating mention.
	Mention *Mention

	// Nodes is the run, contiguous in tree order.
	Nodes []*doc.Node

	// ID disambiguates multiple runs of the same mention, e.g. "e3e1[2/3]"
	// for the second of three runs of mention e3e1. A single-run mention
	// keeps the plain mention display id.
	ID string

	// CrossingContinuation marks a subspan synthesized by the linearizer
	// to re-open a span that was force-closed by a crossing mention.
	CrossingContinuation bool
}

// First returns the first node of the run.
func (s *Subspan) First() *doc.Node {
	return s.Nodes[0]
}

// Last returns the last node of the run.
func (s *Subspan) Last() *doc.Node {
	return s.Nodes[len(s.Nodes)-1]
}

// AllEmpty reports whether the run consists of empty nodes only.
func (s *Subspan) AllEmpty() bool {
	for _, n := range s.Nodes {
		if !n.Empty {
			return false
		}
	}
	return true
}

// SubspansOf partitions the span of a mention into maximal runs of
// ordinal-consecutive nodes, returned in tree order. mentionID is the
// display id of the mention, used to build the subspan ids. Pure function
// of the tree ordering and the mention's node set.
func SubspansOf(m *Mention, mentionID string) ([]*Subspan, error) {
	nodes := m.Nodes()
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: mention %s has no nodes",
			doc.ErrStructuralInconsistency, mentionID)
	}

	var runs [][]*doc.Node
	run := []*doc.Node{nodes[0]}
	for _, n := range nodes[1:] {
		if n.Ord == run[len(run)-1].Ord+1 {
			run = append(run, n)
			continue
		}
		runs = append(runs, run)
		run = []*doc.Node{n}
	}
	runs = append(runs, run)

	subspans := make([]*Subspan, 0, len(runs))
	for i, r := range runs {
		id := mentionID
		if len(runs) > 1 {
			id = fmt.Sprintf("%s[%d/%d]", mentionID, i+1, len(runs))
		}
		subspans = append(subspans, &Subspan{Mention: m, Nodes: r, ID: id})
	}
	return subspans, nil
}
