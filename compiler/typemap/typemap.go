// Package typemap maps relations to the types generated code uses for them.
package typemap

import (
	"github.com/syssam/facet/compiler/types"
	"github.com/syssam/facet/graph"
)

// Mapper maps an entity to the generated type standing for it.
type Mapper func(*graph.Entity) types.Descriptor

// Transformer computes relation types for one artifact kind.
type Transformer struct {
	graph     *graph.Graph
	entity    Mapper
	reference Mapper
}

// New returns a transformer mapping owned entities with entity and
// referenced entities with reference. A nil reference mapper maps
// references like owned entities.
func New(g *graph.Graph, entity, reference Mapper) *Transformer {
	if reference == nil {
		reference = entity
	}
	return &Transformer{graph: g, entity: entity, reference: reference}
}

// RelationType returns the type of relation r. ONE and ZERO_OR_ONE yield
// the bare target type; collections wrap it in a container carrying the
// multiplicity and the element variance v. A non-nil override replaces
// the relation's multiplicity.
//
//	name: ONE string, any variance → string
//	tags: SET string, Out          → Set<out string>
func (t *Transformer) RelationType(r *graph.Relation, override *types.Multiplicity, v types.Variance) types.Descriptor {
	m := r.Multiplicity
	if override != nil {
		m = *override
	}
	elem := t.TargetType(r)
	if !m.IsCollection() {
		return elem
	}
	return &types.Container{Multiplicity: m, Elem: elem, Variance: v}
}

// ValueType is RelationType with absence made representable: the type of
// a ZERO_OR_ONE relation is made nilable.
func (t *Transformer) ValueType(r *graph.Relation, v types.Variance) types.Descriptor {
	d := t.RelationType(r, nil, v)
	if r.Nullable() {
		return Nullable(d)
	}
	return d
}

// TargetType returns the element type of r.
func (t *Transformer) TargetType(r *graph.Relation) types.Descriptor {
	return graph.MatchTarget(r.Target, graph.Cases[types.Descriptor]{
		Entity: func(et *graph.EntityTarget) types.Descriptor {
			return t.entity(et.Entity)
		},
		Reference: func(rt *graph.ReferenceTarget) types.Descriptor {
			return t.reference(rt.Entity)
		},
		Plain: func(pt *graph.PlainTarget) types.Descriptor {
			return t.Plain(pt.Type)
		},
	})
}

// Plain resolves the entity names nested in a plain type, at any depth.
//
//	map[string][]Point → map[string][]PointView
func (t *Transformer) Plain(d types.Descriptor) types.Descriptor {
	return types.Rewrite(d, func(d types.Descriptor) (types.Descriptor, bool) {
		n, ok := d.(*types.Named)
		if !ok || n.Pkg != "" || len(n.Args) > 0 || t.graph == nil {
			return nil, false
		}
		if e := t.graph.Entity(n.Name); e != nil {
			return t.entity(e), true
		}
		return nil, false
	})
}

// Nullable returns d if its zero value is nil, and *d otherwise.
func Nullable(d types.Descriptor) types.Descriptor {
	if types.Nilable(d) {
		return d
	}
	return &types.Pointer{Elem: d}
}
