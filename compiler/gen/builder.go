package gen

import (
	"github.com/syssam/facet/compiler/ir"
	"github.com/syssam/facet/compiler/types"
	"github.com/syssam/facet/graph"
)

// BuilderGenerator generates the builder interface XBuilder.
//
//	Open(plain values...)
//	AddTag(v string)             plain collection element
//	SetOwner(v PersonRef)        reference
//	SetCenter() PointBuilder     entity: returns the nested builder
//	Close()
type BuilderGenerator struct{}

// Kind implements Generator.
func (BuilderGenerator) Kind() Kind { return KindBuilder }

// Name implements Generator.
func (BuilderGenerator) Name(e *graph.Entity) string { return e.Name + "Builder" }

// Supertypes implements Generator.
func (BuilderGenerator) Supertypes(*Context, *graph.Entity) []types.Descriptor { return nil }

// Members implements Generator.
func (BuilderGenerator) Members(ctx *Context, e *graph.Entity, a *Artifact) error {
	a.Doc = entityDoc(e, a.Name+" builds a "+e.Name+" between Open and Close.")
	a.AddMethod(builderMethods(ctx, e, a.Receiver)...)
	return nil
}

// builderMethods returns the bodiless builder methods of e.
func builderMethods(ctx *Context, e *graph.Entity, receiver string) []*Method {
	tr := ctx.Types(KindView)
	open := &Method{Name: "Open"}
	for _, r := range OpenParams(e) {
		open.Params = append(open.Params, &Param{
			Name: Ident(Camel(r.Name), receiver),
			Type: tr.ValueType(r, types.Invariant),
		})
	}
	ms := []*Method{open}
	for _, r := range BuilderRelations(e) {
		m := &Method{Name: Mutator(r), Doc: r.Comment}
		switch KindOf(r) {
		case EntityRelation:
			m.Result = ctx.Type(KindBuilder, r.TargetEntity())
		case ReferenceRelation:
			m.Params = []*Param{{Name: "v", Type: ctx.Type(KindRef, r.TargetEntity())}}
		default:
			m.Params = []*Param{{Name: "v", Type: tr.TargetType(r)}}
		}
		ms = append(ms, m)
	}
	return append(ms, &Method{Name: "Close"})
}

// BuilderBaseGenerator generates XBuilderBase, a builder forwarding to an
// optional delegate. Without a delegate, methods without result do
// nothing and methods with a result panic with a *facet.DetachedError.
type BuilderBaseGenerator struct{}

// Kind implements Generator.
func (BuilderBaseGenerator) Kind() Kind { return KindBuilderBase }

// Name implements Generator.
func (BuilderBaseGenerator) Name(e *graph.Entity) string { return e.Name + "BuilderBase" }

// Supertypes implements Generator.
func (BuilderBaseGenerator) Supertypes(ctx *Context, e *graph.Entity) []types.Descriptor {
	return []types.Descriptor{ctx.Type(KindBuilder, e)}
}

// Members implements Generator.
func (BuilderBaseGenerator) Members(ctx *Context, e *graph.Entity, a *Artifact) error {
	a.Doc = entityDoc(e, a.Name+" forwards to its delegate "+e.Name+"Builder, if any.")
	a.AddField(&Field{Name: "delegate", Type: ctx.Type(KindBuilder, e), Param: true})
	delegate := ir.Field(ir.Self(), "delegate")
	for _, m := range builderMethods(ctx, e, a.Receiver) {
		args := make([]ir.Code, len(m.Params))
		for i, p := range m.Params {
			args[i] = ir.Var(p.Name)
		}
		call := ir.Call(delegate, m.Name, args...)
		if m.Result == nil {
			m.Body = ir.If(ir.NotNull(delegate), ir.Stmt(call))
		} else {
			m.Body = ir.Block(
				ir.If(ir.NotNull(delegate), ir.Return(call)),
				ir.Throw(ir.Static(types.RuntimeFunc("Detached"), nil, ir.Str(a.Name), ir.Str(m.Name))),
			)
		}
		a.AddMethod(m)
	}
	return nil
}
