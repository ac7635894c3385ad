package graph

import "github.com/syssam/facet/compiler/types"

// Target is the target of a relation: an owned entity, a reference to an
// entity, or a plain type. The set of implementations is closed; dispatch
// over it with MatchTarget.
type Target interface {
	String() string
	target()
}

type (
	// EntityTarget targets an entity owned by the relation.
	EntityTarget struct {
		Entity *Entity
	}

	// ReferenceTarget targets an entity through a reference.
	ReferenceTarget struct {
		Entity *Entity
	}

	// PlainTarget targets a plain type.
	PlainTarget struct {
		Type types.Descriptor
	}
)

func (*EntityTarget) target()    {}
func (*ReferenceTarget) target() {}
func (*PlainTarget) target()     {}

func (t *EntityTarget) String() string    { return t.Entity.Name }
func (t *ReferenceTarget) String() string { return "&" + t.Entity.Name }
func (t *PlainTarget) String() string     { return t.Type.String() }

// Cases holds one handler per target variant. All three are required.
type Cases[T any] struct {
	Entity    func(*EntityTarget) T
	Reference func(*ReferenceTarget) T
	Plain     func(*PlainTarget) T
}

// MatchTarget calls the handler of t's variant. It panics if any handler
// is missing, so that every call site covers every variant.
func MatchTarget[T any](t Target, c Cases[T]) T {
	if c.Entity == nil || c.Reference == nil || c.Plain == nil {
		panic("graph: MatchTarget requires a handler for every target kind")
	}
	switch t := t.(type) {
	case *EntityTarget:
		return c.Entity(t)
	case *ReferenceTarget:
		return c.Reference(t)
	case *PlainTarget:
		return c.Plain(t)
	default:
		panic("graph: unknown target " + t.String())
	}
}
