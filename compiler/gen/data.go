package gen

import (
	"github.com/syssam/facet/compiler/ir"
	"github.com/syssam/facet/compiler/types"
	"github.com/syssam/facet/graph"
)

// DataGenerator generates XData, the struct implementing XRecord. Every
// relation has one field, whatever the number of inheritance levels that
// declare it, and collections start out empty.
type DataGenerator struct{}

// Kind implements Generator.
func (DataGenerator) Kind() Kind { return KindData }

// Name implements Generator.
func (DataGenerator) Name(e *graph.Entity) string { return e.Name + "Data" }

// Supertypes implements Generator.
func (DataGenerator) Supertypes(ctx *Context, e *graph.Entity) []types.Descriptor {
	return []types.Descriptor{ctx.Type(KindRecord, e)}
}

// Members implements Generator.
func (DataGenerator) Members(ctx *Context, e *graph.Entity, a *Artifact) error {
	a.Doc = entityDoc(e, a.Name+" holds the data of a "+e.Name+" record.")
	tr := ctx.Types(KindView)
	self := ctx.Type(KindRecord, e)
	for _, r := range e.Relations {
		f := &Field{Name: FieldName(r, a.Receiver)}
		if r.IsCollection() {
			f.Type = tr.RelationType(r, nil, types.Invariant)
			f.Init = ir.New(f.Type)
		} else {
			f.Type = tr.ValueType(r, types.Invariant)
		}
		a.AddField(f)
	}
	for _, r := range e.Relations {
		field := ir.Field(ir.Self(), FieldName(r, a.Receiver))
		a.AddMethod(&Method{
			Name:   Getter(r),
			Doc:    r.Comment,
			Result: tr.ValueType(r, types.Out),
			Body:   ir.Return(field),
		})
		for _, m := range recordMutators(ctx, r, self) {
			switch m.Name {
			case Setter(r):
				m.Body = ir.Block(
					ir.Assign(field, ir.Var("v")),
					ir.Return(ir.Self()),
				)
			case Adder(r):
				m.Body = ir.Block(
					ir.Stmt(ir.Call(field, "Add", ir.Var("v"))),
					ir.Return(ir.Self()),
				)
			case BulkAdder(r):
				m.Body = ir.Block(
					ir.ForEach("item", ir.Var("items"),
						ir.Stmt(ir.Call(field, "Add", ir.Var("item"))),
					),
					ir.Return(ir.Self()),
				)
			}
			a.AddMethod(m)
		}
	}
	return nil
}
