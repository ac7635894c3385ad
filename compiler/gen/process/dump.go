package process

import (
	"github.com/syssam/facet/compiler/gen"
	"github.com/syssam/facet/compiler/ir"
	"github.com/syssam/facet/compiler/types"
	"github.com/syssam/facet/graph"
)

// Dump generates Dumper, which writes an instance graph as indented text
// through a facet.Writer. Every instance is labeled with an identity
// number; an instance met again, and the target of a reference, is
// written as "-> Entity#N" without descending into it. Absent optional
// relations are omitted.
//
//	Segment#1 {
//	  from: Point#2 {
//	    x: 1
//	    y: 2
//	  }
//	  tags: [
//	    "a"
//	  ]
//	}
type Dump struct{ Base }

var _ Strategy = Dump{}

// Name implements Strategy.
func (Dump) Name() string { return "Dumper" }

// Doc implements Strategy.
func (Dump) Doc() string { return "Dumper writes instance graphs as indented text." }

// Requires implements Strategy.
func (Dump) Requires() []gen.Kind { return []gen.Kind{gen.KindView, gen.KindRef} }

func writer() ir.Code { return ir.Field(ir.Self(), "w") }

func write(method string, args ...ir.Code) ir.Code {
	return ir.Stmt(ir.Call(writer(), method, args...))
}

// Fields implements Strategy.
func (Dump) Fields(*gen.Context) []*gen.Field {
	return []*gen.Field{{
		Name: "w",
		Type: &types.Pointer{Elem: types.Runtime("Writer")},
		Init: ir.Static(types.RuntimeFunc("NewWriter"), nil),
	}}
}

// InputType implements Strategy.
func (Dump) InputType(ctx *gen.Context, e *graph.Entity) types.Descriptor {
	return ctx.Type(gen.KindView, e)
}

// Before implements Strategy.
func (Dump) Before(_ *gen.Context, e *graph.Entity) ir.Code {
	return write("Begin", ir.Str(e.Name), ir.Var("in"))
}

// After implements Strategy.
func (Dump) After(*gen.Context, *graph.Entity) ir.Code {
	return write("End")
}

// ConvertType implements Strategy. Dumping produces no values.
func (Dump) ConvertType(*gen.Context, *graph.Relation) types.Descriptor { return nil }

// ConvertEntity implements Strategy.
func (Dump) ConvertEntity(_ *gen.Context, r *graph.Relation) ir.Code {
	target := r.TargetEntity()
	return ir.Block(
		ir.If(ir.IsNull(ir.Var("v")), ir.Block(write("Value", ir.Null()), ir.Return())),
		ir.If(ir.Call(writer(), "Seen", ir.Var("v")), ir.Block(write("Ref", ir.Str(target.Name), ir.Var("v")), ir.Return())),
		ir.Stmt(Process(target, ir.Var("v"))),
	)
}

// ConvertReference implements Strategy. The reference is resolved but
// its target is not descended into.
func (Dump) ConvertReference(_ *gen.Context, r *graph.Relation) ir.Code {
	return ir.Block(
		ir.If(ir.IsNull(ir.Var("v")), ir.Block(write("Value", ir.Null()), ir.Return())),
		write("Ref", ir.Str(r.TargetEntity().Name), ir.Call(ir.Var("v"), "Resolve")),
	)
}

// ConvertPlain implements Strategy.
func (Dump) ConvertPlain(*gen.Context, *graph.Relation) ir.Code {
	return write("Value", ir.Var("v"))
}

// Prologue implements Strategy.
func (Dump) Prologue(_ *gen.Context, r *graph.Relation) ir.Code {
	key := write("Key", ir.Str(r.Name))
	if r.IsCollection() {
		return ir.Block(key, write("BeginList"))
	}
	return key
}

// Epilogue implements Strategy.
func (Dump) Epilogue(_ *gen.Context, r *graph.Relation) ir.Code {
	if r.IsCollection() {
		return write("EndList")
	}
	return nil
}

// Store implements Strategy.
func (Dump) Store(_ *gen.Context, _ *graph.Relation, value ir.Code) ir.Code {
	return ir.Stmt(value)
}

// Reset implements Strategy.
func (Dump) Reset(*gen.Context) ir.Code {
	return ir.Assign(writer(), ir.Static(types.RuntimeFunc("NewWriter"), nil))
}

// EntryResult implements Strategy.
func (Dump) EntryResult(*gen.Context, *graph.Entity) types.Descriptor { return types.String }

// Entry implements Strategy.
func (Dump) Entry(_ *gen.Context, _ *graph.Entity, process ir.Code) ir.Code {
	return ir.Block(
		ir.Stmt(process),
		ir.Return(ir.Call(writer(), "String")),
	)
}
