package gen

import (
	"github.com/syssam/facet/compiler/ir"
	"github.com/syssam/facet/compiler/types"
	"github.com/syssam/facet/graph"
)

// RecordBuilderGenerator generates XRecordBuilder, the builder writing
// into an XData. Open assigns the plain values directly. Entity relations,
// single- and multi-valued alike, attach a fresh sub-record and return a
// record builder for it. The open/close protocol is enforced with a
// facet.BuilderState.
type RecordBuilderGenerator struct{}

// Kind implements Generator.
func (RecordBuilderGenerator) Kind() Kind { return KindRecordBuilder }

// Name implements Generator.
func (RecordBuilderGenerator) Name(e *graph.Entity) string { return e.Name + "RecordBuilder" }

// Supertypes implements Generator.
func (RecordBuilderGenerator) Supertypes(ctx *Context, e *graph.Entity) []types.Descriptor {
	return []types.Descriptor{ctx.Type(KindBuilder, e)}
}

// Members implements Generator.
func (RecordBuilderGenerator) Members(ctx *Context, e *graph.Entity, a *Artifact) error {
	a.Doc = entityDoc(e, a.Name+" builds a "+e.Name+"Data.")
	a.AddField(
		&Field{Name: "record", Type: ctx.Type(KindData, e), Param: true},
		&Field{
			Name: "state",
			Type: &types.Pointer{Elem: types.Runtime("BuilderState")},
			Init: ir.Static(types.RuntimeFunc("NewBuilderState"), nil, ir.Str(a.Name)),
		},
	)
	var (
		record = ir.Field(ir.Self(), "record")
		state  = ir.Field(ir.Self(), "state")
		rels   = make(map[string]*graph.Relation)
	)
	for _, r := range e.Relations {
		rels[Mutator(r)] = r
	}
	for _, m := range builderMethods(ctx, e, a.Receiver) {
		switch m.Name {
		case "Open":
			stmts := []ir.Code{ir.Stmt(ir.Call(state, "Open"))}
			for i, r := range OpenParams(e) {
				stmts = append(stmts, ir.Stmt(ir.Call(record, Setter(r), ir.Var(m.Params[i].Name))))
			}
			m.Body = ir.Block(stmts...)
		case "Close":
			m.Body = ir.Stmt(ir.Call(state, "Close"))
		default:
			r := rels[m.Name]
			check := ir.Stmt(ir.Call(state, "Check", ir.Str(m.Name)))
			if KindOf(r) != EntityRelation {
				m.Body = ir.Block(check, ir.Stmt(ir.Call(record, m.Name, ir.Var("v"))))
				break
			}
			target := r.TargetEntity()
			m.Body = ir.Block(
				check,
				ir.Declare("sub", ir.New(ctx.Type(KindData, target))),
				ir.Stmt(ir.Call(record, m.Name, ir.Var("sub"))),
				ir.Return(ir.New(ctx.Type(KindRecordBuilder, target), ir.Var("sub"))),
			)
		}
		a.AddMethod(m)
	}
	a.AddMethod(&Method{
		Name:   "Record",
		Doc:    "Record returns the record being built.",
		Result: ctx.Type(KindRecord, e),
		Body:   ir.Return(record),
	})
	return nil
}
