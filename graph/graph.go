package graph

import (
	"fmt"

	"github.com/syssam/facet/compiler/types"
	"github.com/syssam/facet/schema"
)

type (
	// Graph holds the entities built from one set of declarations.
	Graph struct {
		// Entities in declaration order.
		Entities []*Entity
		// Diagnostics reported while building. Elements they name were
		// excluded from the graph.
		Diagnostics []Diagnostic

		byName map[string]*Entity
	}

	// Entity is one declared type.
	Entity struct {
		Name      string
		Namespace string
		Comment   string
		// Supers are the direct super-entities, in declaration order.
		Supers []*Entity
		// Own are the relations derived from the entity's own accessors.
		Own []*Relation
		// Relations are the resolved relations: exactly one per distinct
		// name declared on the entity or any of its ancestors, with
		// skipped relations removed.
		Relations []*Relation
		Metadata  map[string]any
		Imports   map[string]string
		// Decl is the source declaration.
		Decl *schema.Declaration

		index    map[string]*Relation
		resolved []*Relation
	}

	// Relation is a named, multiplicity-qualified attribute of an entity.
	Relation struct {
		Name         string
		Multiplicity types.Multiplicity
		Target       Target
		// Owner is the entity the relation belongs to.
		Owner *Entity
		// Overrides are the relations of direct super-entities this
		// relation supersedes.
		Overrides []*Relation
		// Synthetic is set for relations added by override resolution.
		Synthetic bool
		// Skip is the relation's own skip marker. Use Skipped to include
		// inherited markers.
		Skip     bool
		Accessor string
		Comment  string
		Metadata map[string]any

		origin *Relation
	}
)

// Entity returns the entity with the given name, or nil.
func (g *Graph) Entity(name string) *Entity {
	return g.byName[name]
}

// Relation returns the resolved relation with the given name, or nil.
func (e *Entity) Relation(name string) *Relation {
	return e.index[name]
}

// Ancestors returns all transitive super-entities, nearest first, without
// duplicates.
func (e *Entity) Ancestors() []*Entity {
	var (
		out  []*Entity
		seen = make(map[*Entity]bool)
		walk func(*Entity)
	)
	walk = func(x *Entity) {
		for _, s := range x.Supers {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
		for _, s := range x.Supers {
			walk(s)
		}
	}
	walk(e)
	return out
}

// IsA reports whether e is o or one of o's descendants.
func (e *Entity) IsA(o *Entity) bool {
	if e == o {
		return true
	}
	for _, s := range e.Supers {
		if s.IsA(o) {
			return true
		}
	}
	return false
}

// String returns the entity name.
func (e *Entity) String() string {
	return e.Name
}

// Origin returns the declared relation whose shape r carries: r itself
// when declared, the chosen inherited candidate's origin when synthetic.
func (r *Relation) Origin() *Relation {
	if r.origin == nil {
		return r
	}
	return r.origin
}

// Overridden returns the transitive closure of r's override set.
func (r *Relation) Overridden() []*Relation {
	var (
		out  []*Relation
		seen = make(map[*Relation]bool)
		walk func(*Relation)
	)
	walk = func(x *Relation) {
		for _, o := range x.Overrides {
			if !seen[o] {
				seen[o] = true
				out = append(out, o)
				walk(o)
			}
		}
	}
	walk(r)
	return out
}

// Refines reports whether r's shape is o's shape or overrides it.
func (r *Relation) Refines(o *Relation) bool {
	ro, oo := r.Origin(), o.Origin()
	if ro == oo {
		return true
	}
	for _, x := range ro.Overridden() {
		if x.Origin() == oo {
			return true
		}
	}
	return false
}

// Skipped reports whether r or any relation it transitively overrides
// carries the skip marker.
func (r *Relation) Skipped() bool {
	if r.Skip {
		return true
	}
	for _, o := range r.Overridden() {
		if o.Skip {
			return true
		}
	}
	return false
}

// IsCollection reports whether r is multi-valued.
func (r *Relation) IsCollection() bool {
	return r.Multiplicity.IsCollection()
}

// Nullable reports whether r may be absent.
func (r *Relation) Nullable() bool {
	return r.Multiplicity == types.ZeroOrOne
}

// TargetEntity returns the target entity of an entity or reference
// relation, and nil for plain relations.
func (r *Relation) TargetEntity() *Entity {
	switch t := r.Target.(type) {
	case *EntityTarget:
		return t.Entity
	case *ReferenceTarget:
		return t.Entity
	default:
		return nil
	}
}

// String returns "Owner.name".
func (r *Relation) String() string {
	if r.Owner == nil {
		return r.Name
	}
	return r.Owner.Name + "." + r.Name
}

// Diagnostic reports a declaration element that was excluded.
type Diagnostic struct {
	Entity  string `json:"entity" yaml:"entity"`
	Element string `json:"element,omitempty" yaml:"element,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// String returns the diagnostic text.
func (d Diagnostic) String() string {
	if d.Element == "" {
		return fmt.Sprintf("%s: %s", d.Entity, d.Message)
	}
	return fmt.Sprintf("%s.%s: %s", d.Entity, d.Element, d.Message)
}
