package stat

import (
	"github.com/ostraka/corefspan/coref"
	"github.com/ostraka/corefspan/doc"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumBundles       int
	NumTrees         int
	NumNodes         int
	NumEmptyNodes    int
	NodesPerTreeMean int
	NodesPerTreeDis  map[int]int

	NumEntities      int
	NumMentions      int
	NumSingletons    int
	NumDiscontinuous int

	// NumCrossings counts mention pairs whose spans overlap with neither
	// containing the other.
	NumCrossings int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{NodesPerTreeDis: map[int]int{}}
	return &Handler{
		stats: stats,
	}
}

// Aggregate accumulates the statistics of one document and its coref layer.
func (h *Handler) Aggregate(d *doc.Document, l *coref.Layer) {
	h.stats.NumBundles += len(d.Bundles())

	for _, tree := range d.Trees() {
		h.stats.NumTrees++
		nodes := tree.Descendants()
		h.stats.NumNodes += len(nodes)
		h.stats.NodesPerTreeDis[len(nodes)]++
		for _, n := range nodes {
			if n.Empty {
				h.stats.NumEmptyNodes++
			}
		}
	}
	if h.stats.NumTrees > 0 {
		h.stats.NodesPerTreeMean = h.stats.NumNodes / h.stats.NumTrees
	}

	if l == nil {
		return
	}

	ids := coref.MentionIDs(l.Entities())
	var all []*coref.Mention
	h.stats.NumEntities += len(l.Entities())
	for _, e := range l.Entities() {
		if len(e.Mentions()) == 1 {
			h.stats.NumSingletons++
		}
		for _, m := range e.Mentions() {
			h.stats.NumMentions++
			if subs, err := coref.SubspansOf(m, ids[m]); err == nil && len(subs) > 1 {
				h.stats.NumDiscontinuous++
			}
			all = append(all, m)
		}
	}

	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if coref.Crossing(all[i], all[j]) {
				h.stats.NumCrossings++
			}
		}
	}
}
