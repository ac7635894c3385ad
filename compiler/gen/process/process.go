package process

import (
	"github.com/syssam/facet/compiler/gen"
	"github.com/syssam/facet/compiler/ir"
	"github.com/syssam/facet/compiler/types"
	"github.com/syssam/facet/graph"
)

// Method names of the processor of entity e.
func processName(e *graph.Entity) string { return "process" + e.Name }

func relationName(r *graph.Relation) string {
	return "process" + r.Owner.Name + gen.Pascal(r.Name)
}

func convertName(r *graph.Relation) string {
	return "convert" + r.Owner.Name + gen.Pascal(r.Name)
}

func traceName(e *graph.Entity) string { return "trace" + e.Name }

// Process returns the call processing in with the processor method of e.
// Strategies use it to recurse into entity relations.
func Process(e *graph.Entity, in ir.Code) ir.Code {
	return ir.CallSelf(processName(e), in)
}

// Generate builds, validates and publishes one processor per strategy.
func Generate(ctx *gen.Context, strategies ...Strategy) ([]*gen.Artifact, error) {
	out := make([]*gen.Artifact, 0, len(strategies))
	for _, s := range strategies {
		a, err := build(ctx, s)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	ctx.Publish(out...)
	return out, nil
}

func build(ctx *gen.Context, s Strategy) (a *gen.Artifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			slotErr, ok := gen.IsMissingSlotPanic(r)
			if !ok {
				panic(r)
			}
			err = gen.NewGenerationError(gen.KindProcessor.String(), s.Name(), "", slotErr)
		}
	}()
	a = &gen.Artifact{
		Kind:     gen.KindProcessor,
		Name:     s.Name(),
		Path:     ctx.Config.Package,
		File:     gen.Snake(s.Name()),
		Doc:      s.Doc(),
		Form:     gen.Struct,
		Receiver: gen.Receiver(s.Name()),
	}
	a.AddField(s.Fields(ctx)...)
	for _, e := range ctx.Graph.Entities {
		a.AddMethod(entityMethods(ctx, s, e)...)
	}
	if err := a.Validate(); err != nil {
		return nil, gen.NewGenerationError(gen.KindProcessor.String(), s.Name(), "", err)
	}
	return a, nil
}

func entityMethods(ctx *gen.Context, s Strategy, e *graph.Entity) []*gen.Method {
	in := s.InputType(ctx, e)
	out := s.OutputType(ctx, e)
	params := []*gen.Param{{Name: "in", Type: in}}
	args := []ir.Code{ir.Var("in")}
	if out != nil {
		params = append(params, &gen.Param{Name: "out", Type: out})
		args = append(args, ir.Var("out"))
	}

	// processX
	var stmts []ir.Code
	if out != nil {
		stmts = append(stmts,
			ir.If(ir.IsNull(ir.Var("in")), ir.Return(ir.Null())),
			ir.Declare("out", s.Seed(ctx, e)),
		)
	} else {
		stmts = append(stmts, ir.If(ir.IsNull(ir.Var("in")), ir.Return()))
	}
	stmts = append(stmts, ir.Stmt(ir.CallSelf(traceName(e), args...)))
	stmts = appendCode(stmts, s.Before(ctx, e))
	for _, r := range e.Relations {
		stmts = append(stmts, ir.Stmt(ir.CallSelf(relationName(r), args...)))
	}
	stmts = appendCode(stmts, s.After(ctx, e))
	if out != nil {
		stmts = append(stmts, ir.Return(ir.Var("out")))
	}
	ms := []*gen.Method{{
		Name:   processName(e),
		Params: []*gen.Param{{Name: "in", Type: in}},
		Result: out,
		Body:   ir.Block(stmts...),
	}}

	for _, r := range e.Relations {
		ms = append(ms,
			&gen.Method{
				Name:   relationName(r),
				Params: params,
				Body:   relationBody(ctx, s, r),
			},
			convertMethod(ctx, s, r),
		)
	}

	trace := s.Trace(ctx, e)
	if trace == nil {
		trace = ir.Block()
	}
	ms = append(ms,
		&gen.Method{Name: traceName(e), Params: params, Body: trace},
		&gen.Method{
			Name:    e.Name,
			Doc:     e.Name + " processes in and its reachable instances.",
			Params:  []*gen.Param{{Name: "in", Type: in}},
			Result:  s.EntryResult(ctx, e),
			Guarded: true,
			Body:    entryBody(ctx, s, e),
		},
	)
	return ms
}

// relationBody reads the relation from "in" and stores its converted
// values. An absent ZERO_OR_ONE relation is skipped entirely.
func relationBody(ctx *gen.Context, s Strategy, r *graph.Relation) ir.Code {
	value := ir.Var("value")
	var inner []ir.Code
	inner = appendCode(inner, s.Prologue(ctx, r))
	if r.IsCollection() {
		inner = append(inner, ir.ForEach("item", ir.Call(value, "Items"),
			s.Store(ctx, r, ir.CallSelf(convertName(r), ir.Var("item"))),
		))
	} else {
		inner = append(inner, s.Store(ctx, r, ir.CallSelf(convertName(r), value)))
	}
	inner = appendCode(inner, s.Epilogue(ctx, r))

	body := ir.Block(inner...)
	if r.Nullable() {
		body = ir.If(ir.NotNull(value), body)
	}
	return ir.Block(
		ir.Declare("value", ir.Call(ir.Var("in"), gen.Getter(r))),
		body,
	)
}

func convertMethod(ctx *gen.Context, s Strategy, r *graph.Relation) *gen.Method {
	tr := ctx.Types(gen.KindView)
	var body ir.Code
	switch gen.KindOf(r) {
	case gen.EntityRelation:
		body = s.ConvertEntity(ctx, r)
	case gen.ReferenceRelation:
		body = s.ConvertReference(ctx, r)
	default:
		body = s.ConvertPlain(ctx, r)
	}
	elem := tr.TargetType(r)
	if !r.IsCollection() {
		elem = tr.ValueType(r, types.Invariant)
	}
	return &gen.Method{
		Name:   convertName(r),
		Params: []*gen.Param{{Name: "v", Type: elem}},
		Result: s.ConvertType(ctx, r),
		Body:   body,
	}
}

func entryBody(ctx *gen.Context, s Strategy, e *graph.Entity) ir.Code {
	var stmts []ir.Code
	stmts = appendCode(stmts, s.Reset(ctx))
	stmts = append(stmts, s.Entry(ctx, e, Process(e, ir.Var("in"))))
	return ir.Block(stmts...)
}

func appendCode(cs []ir.Code, c ir.Code) []ir.Code {
	if c == nil {
		return cs
	}
	return append(cs, c)
}
