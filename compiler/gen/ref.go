package gen

import (
	"github.com/syssam/facet/compiler/ir"
	"github.com/syssam/facet/compiler/types"
	"github.com/syssam/facet/graph"
)

// RefGenerator generates XRef, the interface of references to an X.
type RefGenerator struct{}

// Kind implements Generator.
func (RefGenerator) Kind() Kind { return KindRef }

// Name implements Generator.
func (RefGenerator) Name(e *graph.Entity) string { return e.Name + "Ref" }

// Supertypes implements Generator.
func (RefGenerator) Supertypes(*Context, *graph.Entity) []types.Descriptor { return nil }

// Members implements Generator.
func (RefGenerator) Members(ctx *Context, e *graph.Entity, a *Artifact) error {
	a.Doc = entityDoc(e, a.Name+" refers to a "+e.Name+" resolved on demand.")
	a.AddMethod(&Method{
		Name:   "Resolve",
		Doc:    "Resolve returns the referenced " + e.Name + ". It panics with a *facet.ReferenceError if the target is not one.",
		Result: ctx.Type(KindView, e),
	})
	return nil
}

// LiteralRefGenerator generates XLiteralRef, a reference wrapping its
// target value.
type LiteralRefGenerator struct{}

// Kind implements Generator.
func (LiteralRefGenerator) Kind() Kind { return KindLiteralRef }

// Name implements Generator.
func (LiteralRefGenerator) Name(e *graph.Entity) string { return e.Name + "LiteralRef" }

// Supertypes implements Generator.
func (LiteralRefGenerator) Supertypes(ctx *Context, e *graph.Entity) []types.Descriptor {
	return []types.Descriptor{ctx.Type(KindRef, e)}
}

// Members implements Generator.
func (LiteralRefGenerator) Members(ctx *Context, e *graph.Entity, a *Artifact) error {
	a.Doc = entityDoc(e, a.Name+" is a "+e.Name+"Ref holding its target.")
	a.AddField(&Field{Name: "value", Type: types.Any, Param: true})
	a.AddMethod(&Method{
		Name:   "Resolve",
		Result: ctx.Type(KindView, e),
		Body:   ir.Return(expect(ctx, e, ir.Field(ir.Self(), "value"))),
	})
	return nil
}

// ProxyRefGenerator generates XProxyRef, a reference looking its target
// up in a facet.Table when resolved.
type ProxyRefGenerator struct{}

// Kind implements Generator.
func (ProxyRefGenerator) Kind() Kind { return KindProxyRef }

// Name implements Generator.
func (ProxyRefGenerator) Name(e *graph.Entity) string { return e.Name + "ProxyRef" }

// Supertypes implements Generator.
func (ProxyRefGenerator) Supertypes(ctx *Context, e *graph.Entity) []types.Descriptor {
	return []types.Descriptor{ctx.Type(KindRef, e)}
}

// Members implements Generator.
func (ProxyRefGenerator) Members(ctx *Context, e *graph.Entity, a *Artifact) error {
	a.Doc = entityDoc(e, a.Name+" is a "+e.Name+"Ref looked up by key, with a fallback.")
	a.AddField(
		&Field{Name: "table", Type: types.Runtime("Table"), Param: true},
		&Field{Name: "key", Type: types.String, Param: true},
		&Field{Name: "fallback", Type: types.Any, Param: true},
	)
	lookup := ir.Call(ir.Field(ir.Self(), "table"), "Lookup",
		ir.Field(ir.Self(), "key"),
		ir.Field(ir.Self(), "fallback"),
	)
	a.AddMethod(&Method{
		Name:   "Resolve",
		Result: ctx.Type(KindView, e),
		Body:   ir.Return(expect(ctx, e, lookup)),
	})
	return nil
}

// expect checks that v is a view of e.
func expect(ctx *Context, e *graph.Entity, v ir.Code) ir.Code {
	return ir.Static(types.RuntimeFunc("Expect"),
		[]types.Descriptor{ctx.Type(KindView, e)},
		v, ir.Str(e.Name),
	)
}
