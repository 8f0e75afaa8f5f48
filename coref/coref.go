// Package coref models the coreference layer of a document: entities,
// their mentions over tree nodes, and the subspans derived from mentions
// at render time.
package coref

import (
	"fmt"
	"sort"

	"github.com/ostraka/corefspan/doc"
)

// EntityType is the semantic type of an entity, drawn from a fixed
// enumeration. Entities without a type render as TypeOther.
type EntityType string

const (
	TypePerson       EntityType = "person"
	TypePlace        EntityType = "place"
	TypeOrganization EntityType = "organization"
	TypeAnimal       EntityType = "animal"
	TypePlant        EntityType = "plant"
	TypeObject       EntityType = "object"
	TypeSubstance    EntityType = "substance"
	TypeTime         EntityType = "time"
	TypeNumber       EntityType = "number"
	TypeAbstract     EntityType = "abstract"
	TypeEvent        EntityType = "event"

	// TypeOther is the default for untyped entities.
	TypeOther EntityType = "other"
)

// KnownTypes returns the type enumeration in its fixed order. Renderers use
// the position of a type in this list to assign it a stable style.
func KnownTypes() []EntityType {
	return []EntityType{
		TypePerson, TypePlace, TypeOrganization, TypeAnimal, TypePlant,
		TypeObject, TypeSubstance, TypeTime, TypeNumber, TypeAbstract,
		TypeEvent,
	}
}

// Entity is a cluster of co-referring mentions sharing an id and an
// optional semantic type. An entity owns its mentions, kept in creation
// order (not textual order).
type Entity struct {
	// ID is unique per document.
	ID string

	Type EntityType

	mentions []*Mention
}

// Mentions returns the mentions of the entity in creation order.
func (e *Entity) Mentions() []*Mention {
	return e.mentions
}

// AddMention creates a mention of this entity. The node set must be
// non-empty and contain the head; it need not be contiguous.
func (e *Entity) AddMention(head *doc.Node, nodes []*doc.Node, other string) (*Mention, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: mention of entity %s has no nodes",
			doc.ErrStructuralInconsistency, e.ID)
	}

	sorted := make([]*doc.Node, len(nodes))
	copy(sorted, nodes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Ord < sorted[j].Ord })

	headOK := false
	for _, n := range sorted {
		if n == head {
			headOK = true
			break
		}
	}
	if !headOK {
		return nil, fmt.Errorf("%w: head of a mention of entity %s is outside its span",
			doc.ErrStructuralInconsistency, e.ID)
	}

	m := &Mention{entity: e, Head: head, Other: other, nodes: sorted}
	e.mentions = append(e.mentions, m)
	return m, nil
}

// Mention is one reference to an entity: a non-empty, possibly
// discontinuous node set with one designated head node. The entity owns
// the mention; the mention only points back.
type Mention struct {
	// Head is the syntactic head of the mention, always part of the span.
	Head *doc.Node

	// Other is a free-form annotation payload carried into the events.
	Other string

	entity *Entity
	nodes  []*doc.Node
}

// Entity returns the owning entity.
func (m *Mention) Entity() *Entity {
	return m.entity
}

// Nodes returns the span of the mention sorted by ordinal. The returned
// slice is internal; callers must not modify it.
func (m *Mention) Nodes() []*doc.Node {
	return m.nodes
}

// Crossing reports whether two mention spans overlap in nodes with neither
// being a subset of the other.
func Crossing(a, b *Mention) bool {
	inA := map[*doc.Node]bool{}
	for _, n := range a.nodes {
		inA[n] = true
	}
	both := 0
	for _, n := range b.nodes {
		if inA[n] {
			both++
		}
	}
	return both > 0 && both < len(a.nodes) && both < len(b.nodes)
}

// Layer holds the coreference entities of one document.
type Layer struct {
	entities []*Entity
}

// NewLayer creates an empty coreference layer.
func NewLayer() *Layer {
	return &Layer{}
}

// Entities returns the entities in creation order.
func (l *Layer) Entities() []*Entity {
	return l.entities
}

// CreateEntity appends a new entity. An empty type means TypeOther.
func (l *Layer) CreateEntity(id string, etype EntityType) *Entity {
	e := &Entity{ID: id, Type: etype}
	l.entities = append(l.entities, e)
	return e
}

// Entity returns the entity with the given id, nil if absent.
func (l *Layer) Entity(id string) *Entity {
	for _, e := range l.entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// RemoveMention deletes a mention from its entity. An entity left with no
// mentions is removed from the layer: entities always have at least one
// mention.
func (l *Layer) RemoveMention(m *Mention) {
	e := m.entity
	kept := e.mentions[:0]
	for _, other := range e.mentions {
		if other != m {
			kept = append(kept, other)
		}
	}
	e.mentions = kept

	if len(e.mentions) == 0 {
		keptEntities := l.entities[:0]
		for _, other := range l.entities {
			if other != e {
				keptEntities = append(keptEntities, other)
			}
		}
		l.entities = keptEntities
	}
}

// Merge moves all mentions of src onto dst, in creation order after dst's
// own mentions, and removes src from the layer.
func (l *Layer) Merge(dst, src *Entity) {
	if dst == src {
		return
	}
	for _, m := range src.mentions {
		m.entity = dst
		dst.mentions = append(dst.mentions, m)
	}
	src.mentions = nil

	kept := l.entities[:0]
	for _, e := range l.entities {
		if e != src {
			kept = append(kept, e)
		}
	}
	l.entities = kept
}

// MentionsIn returns the mentions whose span touches the given tree, in
// entity creation order and mention creation order within each entity.
func (l *Layer) MentionsIn(t *doc.Tree) []*Mention {
	var mentions []*Mention
	for _, e := range l.entities {
		for _, m := range e.mentions {
			for _, n := range m.nodes {
				if n.Tree() == t {
					mentions = append(mentions, m)
					break
				}
			}
		}
	}
	return mentions
}

// MentionIDs computes the display id of every mention of the given
// entities: entity id + "e" + 1-based position in the entity's creation
// order. The map is recomputed once per rendering pass and passed around
// explicitly, never stored on the mentions.
func MentionIDs(entities []*Entity) map[*Mention]string {
	ids := make(map[*Mention]string)
	for _, e := range entities {
		for i, m := range e.mentions {
			ids[m] = fmt.Sprintf("%se%d", e.ID, i+1)
		}
	}
	return ids
}
