package process

import (
	"github.com/syssam/facet/compiler/gen"
	"github.com/syssam/facet/compiler/ir"
	"github.com/syssam/facet/compiler/types"
	"github.com/syssam/facet/graph"
)

// DeepCopy generates DeepCopier, which clones an instance graph into
// fresh data records. References are replaced by literal references to
// their current target. Every input instance is recorded in a trace map,
// so an instance reached twice, through a cycle or through aliasing,
// aborts the copy with a *facet.CycleError.
type DeepCopy struct{ Base }

var _ Strategy = DeepCopy{}

// Name implements Strategy.
func (DeepCopy) Name() string { return "DeepCopier" }

// Doc implements Strategy.
func (DeepCopy) Doc() string {
	return "DeepCopier copies instance graphs into new records. Instances reached twice abort the copy with a *facet.CycleError."
}

// Requires implements Strategy.
func (DeepCopy) Requires() []gen.Kind {
	return []gen.Kind{gen.KindView, gen.KindData, gen.KindLiteralRef}
}

// Fields implements Strategy.
func (DeepCopy) Fields(*gen.Context) []*gen.Field {
	return []*gen.Field{{
		Name: "trace",
		Type: &types.Pointer{Elem: types.Runtime("TraceMap")},
		Init: ir.Static(types.RuntimeFunc("NewTraceMap"), nil),
	}}
}

// InputType implements Strategy.
func (DeepCopy) InputType(ctx *gen.Context, e *graph.Entity) types.Descriptor {
	return ctx.Type(gen.KindView, e)
}

// OutputType implements Strategy.
func (DeepCopy) OutputType(ctx *gen.Context, e *graph.Entity) types.Descriptor {
	return ctx.Type(gen.KindData, e)
}

// Seed implements Strategy.
func (DeepCopy) Seed(ctx *gen.Context, e *graph.Entity) ir.Code {
	return ir.New(ctx.Type(gen.KindData, e))
}

// Trace implements Strategy.
func (DeepCopy) Trace(*gen.Context, *graph.Entity) ir.Code {
	return ir.Stmt(ir.Call(ir.Field(ir.Self(), "trace"), "Record", ir.Var("in"), ir.Var("out")))
}

// ConvertType implements Strategy: the element type of the relation's
// view, which the data setters accept.
func (DeepCopy) ConvertType(ctx *gen.Context, r *graph.Relation) types.Descriptor {
	tr := ctx.Types(gen.KindView)
	if r.IsCollection() {
		return tr.TargetType(r)
	}
	return tr.ValueType(r, types.Invariant)
}

// ConvertEntity implements Strategy.
func (DeepCopy) ConvertEntity(_ *gen.Context, r *graph.Relation) ir.Code {
	return ir.Block(
		ir.If(ir.IsNull(ir.Var("v")), ir.Return(ir.Null())),
		ir.Return(Process(r.TargetEntity(), ir.Var("v"))),
	)
}

// ConvertReference implements Strategy.
func (DeepCopy) ConvertReference(ctx *gen.Context, r *graph.Relation) ir.Code {
	return ir.Block(
		ir.If(ir.IsNull(ir.Var("v")), ir.Return(ir.Null())),
		ir.Return(ir.New(ctx.Type(gen.KindLiteralRef, r.TargetEntity()), ir.Call(ir.Var("v"), "Resolve"))),
	)
}

// Store implements Strategy.
func (DeepCopy) Store(_ *gen.Context, r *graph.Relation, value ir.Code) ir.Code {
	return ir.Stmt(ir.Call(ir.Var("out"), gen.Mutator(r), value))
}

// Reset implements Strategy.
func (DeepCopy) Reset(*gen.Context) ir.Code {
	return ir.Assign(ir.Field(ir.Self(), "trace"), ir.Static(types.RuntimeFunc("NewTraceMap"), nil))
}

// EntryResult implements Strategy.
func (DeepCopy) EntryResult(ctx *gen.Context, e *graph.Entity) types.Descriptor {
	return ctx.Type(gen.KindData, e)
}

// Entry implements Strategy.
func (DeepCopy) Entry(_ *gen.Context, _ *graph.Entity, process ir.Code) ir.Code {
	return ir.Return(process)
}
