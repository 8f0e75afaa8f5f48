// Package span linearizes coreference mention spans over the ordered node
// sequence of a tree into a deterministic stream of open/visit/close
// events. Overlapping spans come out properly nested; crossing spans are
// split into a closed part and a continuation subspan.
package span

import (
	"fmt"
	"sort"

	"github.com/ostraka/corefspan/coref"
	"github.com/ostraka/corefspan/doc"
)

// Kind discriminates the event variants.
type Kind int

const (
	// Visit is the visit of one node.
	Visit Kind = iota
	// Open opens a subspan before the visit of its first node.
	Open
	// Close closes a subspan after the visit of its last node, or early
	// when forced by a crossing span.
	Close
)

func (k Kind) String() string {
	switch k {
	case Visit:
		return "visit"
	case Open:
		return "open"
	case Close:
		return "close"
	}
	return "unknown"
}

// Event is one element of the linearized stream. Consumers must process
// events strictly in emission order; open/close pairs follow a LIFO
// discipline.
type Event struct {
	Kind Kind

	// Visit events
	Node   *doc.Node
	IsHead bool

	// Open and Close events
	Subspan *coref.Subspan

	// Open events only
	EntityID             string
	MentionID            string
	EntityType           coref.EntityType
	Singleton            bool
	CrossingContinuation bool
	Other                string
}

// Linearize walks the nodes of a tree in ascending ordinal order and emits
// the event sequence for all given mentions. ids is the precomputed
// mention display id map for this rendering pass (see coref.MentionIDs).
//
// The output is a pure function of the tree ordering, the mention spans and
// the id map: linearizing an unmodified tree twice yields identical
// sequences.
func Linearize(tree *doc.Tree, mentions []*coref.Mention, ids map[*coref.Mention]string) ([]Event, error) {
	pending := make([]*coref.Subspan, 0, len(mentions))
	for _, m := range mentions {
		subs, err := coref.SubspansOf(m, ids[m])
		if err != nil {
			return nil, fmt.Errorf("tree %s: %w", tree.Address(), err)
		}
		pending = append(pending, subs...)
	}
	sortSubspans(pending)

	heads := make(map[*doc.Node]bool, len(mentions))
	for _, m := range mentions {
		heads[m.Head] = true
	}

	var events []Event
	var opened []*coref.Subspan

	for _, node := range tree.Descendants() {
		// Open every subspan starting here, outermost first.
		for len(pending) > 0 && pending[0].First() == node {
			s := pending[0]
			pending = pending[1:]
			events = append(events, openEvent(s, ids))
			opened = append(opened, s)
		}

		events = append(events, Event{Kind: Visit, Node: node, IsHead: heads[node]})

		// Lowest subspan on the stack ending at this node.
		lowest := -1
		for i, s := range opened {
			if s.Last() == node {
				lowest = i
				break
			}
		}
		if lowest == -1 {
			continue
		}

		// Close everything from the top of the stack down through the
		// lowest ender. A closed subspan that still has unvisited nodes
		// was crossed: its remainder re-enters the pending queue as a
		// continuation and will be re-opened at its next node.
		for i := len(opened) - 1; i >= lowest; i-- {
			s := opened[i]
			events = append(events, Event{Kind: Close, Subspan: s})
			if s.Last() != node {
				pending = insertSorted(pending, continuation(s, node.Ord))
			}
		}
		opened = opened[:lowest]
	}

	if len(opened) > 0 {
		return nil, fmt.Errorf("%w: tree %s: subspan %s of mention %s still open after the last node",
			doc.ErrStructuralInconsistency, tree.Address(),
			opened[len(opened)-1].ID, ids[opened[len(opened)-1].Mention])
	}
	if len(pending) > 0 {
		return nil, fmt.Errorf("%w: tree %s: subspan %s of mention %s was never reached",
			doc.ErrStructuralInconsistency, tree.Address(),
			pending[0].ID, ids[pending[0].Mention])
	}
	return events, nil
}

func openEvent(s *coref.Subspan, ids map[*coref.Mention]string) Event {
	e := s.Mention.Entity()
	etype := e.Type
	if etype == "" {
		etype = coref.TypeOther
	}
	return Event{
		Kind:                 Open,
		Subspan:              s,
		EntityID:             e.ID,
		MentionID:            ids[s.Mention],
		EntityType:           etype,
		Singleton:            len(e.Mentions()) == 1,
		CrossingContinuation: s.CrossingContinuation,
		Other:                s.Mention.Other,
	}
}

// continuation builds the subspan covering the remaining nodes of s beyond
// the given ordinal. Runs are contiguous, so the remainder is a non-empty
// suffix.
func continuation(s *coref.Subspan, afterOrd int) *coref.Subspan {
	var rest []*doc.Node
	for _, n := range s.Nodes {
		if n.Ord > afterOrd {
			rest = append(rest, n)
		}
	}
	return &coref.Subspan{
		Mention:              s.Mention,
		Nodes:                rest,
		ID:                   s.ID,
		CrossingContinuation: true,
	}
}

// sortSubspans establishes the opening order: first node ascending, last
// node descending (among subspans starting together, the longest is
// outermost), ties broken by subspan id so that the stream stays
// deterministic for identical extents.
func sortSubspans(subspans []*coref.Subspan) {
	sort.Slice(subspans, func(i, j int) bool {
		return before(subspans[i], subspans[j])
	})
}

func before(a, b *coref.Subspan) bool {
	if a.First().Ord != b.First().Ord {
		return a.First().Ord < b.First().Ord
	}
	if a.Last().Ord != b.Last().Ord {
		return a.Last().Ord > b.Last().Ord
	}
	return a.ID < b.ID
}

func insertSorted(pending []*coref.Subspan, s *coref.Subspan) []*coref.Subspan {
	at := len(pending)
	for i, p := range pending {
		if before(s, p) {
			at = i
			break
		}
	}
	pending = append(pending, nil)
	copy(pending[at+1:], pending[at:])
	pending[at] = s
	return pending
}
