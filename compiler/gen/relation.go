package gen

import (
	"github.com/syssam/facet/compiler/types"
	"github.com/syssam/facet/graph"
)

// RelationKind classifies a relation by its target.
type RelationKind int

// Relation kinds.
const (
	PlainRelation RelationKind = iota
	ReferenceRelation
	EntityRelation
)

// String returns "plain", "reference" or "entity".
func (k RelationKind) String() string {
	switch k {
	case ReferenceRelation:
		return "reference"
	case EntityRelation:
		return "entity"
	default:
		return "plain"
	}
}

// KindOf returns the kind of r.
func KindOf(r *graph.Relation) RelationKind {
	return graph.MatchTarget(r.Target, graph.Cases[RelationKind]{
		Entity:    func(*graph.EntityTarget) RelationKind { return EntityRelation },
		Reference: func(*graph.ReferenceTarget) RelationKind { return ReferenceRelation },
		Plain:     func(*graph.PlainTarget) RelationKind { return PlainRelation },
	})
}

// Getter returns the accessor name of r: Pascal(name).
func Getter(r *graph.Relation) string { return Pascal(r.Name) }

// Setter returns the setter name of a single-valued relation.
func Setter(r *graph.Relation) string { return "Set" + Pascal(r.Name) }

// Adder returns the single-element adder name of a collection relation.
func Adder(r *graph.Relation) string { return "Add" + Pascal(Singular(r.Name)) }

// BulkAdder returns the bulk adder name of a collection relation.
func BulkAdder(r *graph.Relation) string { return "AddAll" + Pascal(r.Name) }

// Mutator returns the builder method name of r: its adder for
// collections and its setter otherwise.
func Mutator(r *graph.Relation) string {
	if r.IsCollection() {
		return Adder(r)
	}
	return Setter(r)
}

// FieldName returns the struct field backing r.
func FieldName(r *graph.Relation, receiver string) string {
	return Ident(Camel(r.Name), receiver)
}

// OpenParams returns the relations set by a builder's Open method: the
// single-valued plain relations, in relation order.
func OpenParams(e *graph.Entity) []*graph.Relation {
	var rs []*graph.Relation
	for _, r := range e.Relations {
		if !r.IsCollection() && KindOf(r) == PlainRelation {
			rs = append(rs, r)
		}
	}
	return rs
}

// BuilderRelations returns the relations that get a method of their own
// on builders: every relation not set by Open.
func BuilderRelations(e *graph.Entity) []*graph.Relation {
	var rs []*graph.Relation
	for _, r := range e.Relations {
		if r.IsCollection() || KindOf(r) != PlainRelation {
			rs = append(rs, r)
		}
	}
	return rs
}

// elemType returns the element type of a collection type, or t itself.
func elemType(t types.Descriptor) types.Descriptor {
	if c, ok := t.(*types.Container); ok {
		return c.Elem
	}
	return t
}

func entityDoc(e *graph.Entity, what string) string {
	doc := what
	if e.Comment != "" {
		doc += "\n\n" + e.Comment
	}
	return doc
}
