package gen

import (
	"github.com/syssam/facet/compiler/types"
	"github.com/syssam/facet/graph"
)

// RecordGenerator generates the mutable record interface XRecord: the
// view plus fluent mutators returning the record.
type RecordGenerator struct{}

// Kind implements Generator.
func (RecordGenerator) Kind() Kind { return KindRecord }

// Name implements Generator.
func (RecordGenerator) Name(e *graph.Entity) string { return e.Name + "Record" }

// Supertypes implements Generator. Records embed their own view only.
func (RecordGenerator) Supertypes(ctx *Context, e *graph.Entity) []types.Descriptor {
	return []types.Descriptor{ctx.Type(KindView, e)}
}

// Members implements Generator.
func (RecordGenerator) Members(ctx *Context, e *graph.Entity, a *Artifact) error {
	a.Doc = entityDoc(e, a.Name+" is a mutable "+e.Name+".")
	self := ctx.Type(KindRecord, e)
	for _, r := range e.Relations {
		a.AddMethod(recordMutators(ctx, r, self)...)
	}
	return nil
}

// recordMutators returns the bodiless mutators of r returning self: a
// setter, or an adder and a bulk adder for collections.
func recordMutators(ctx *Context, r *graph.Relation, self types.Descriptor) []*Method {
	tr := ctx.Types(KindView)
	if !r.IsCollection() {
		return []*Method{{
			Name:   Setter(r),
			Params: []*Param{{Name: "v", Type: tr.ValueType(r, types.Invariant)}},
			Result: self,
		}}
	}
	elem := tr.TargetType(r)
	return []*Method{
		{
			Name:   Adder(r),
			Params: []*Param{{Name: "v", Type: elem}},
			Result: self,
		},
		{
			Name:   BulkAdder(r),
			Params: []*Param{{Name: "items", Type: elem, Variadic: true}},
			Result: self,
		},
	}
}
