package gen

import (
	"github.com/syssam/facet/compiler/types"
	"github.com/syssam/facet/graph"
)

// ViewGenerator generates the read-only view interface XView of every
// entity: one accessor per relation, collections read through facet.Seq.
type ViewGenerator struct{}

// Kind implements Generator.
func (ViewGenerator) Kind() Kind { return KindView }

// Name implements Generator.
func (ViewGenerator) Name(e *graph.Entity) string { return e.Name + "View" }

// Supertypes returns the views of the super-entities whose every
// relation e inherits with an identical view type.
func (ViewGenerator) Supertypes(ctx *Context, e *graph.Entity) []types.Descriptor {
	var sts []types.Descriptor
	for _, s := range embeddedViews(ctx, e) {
		sts = append(sts, ctx.Type(KindView, s))
	}
	return sts
}

// Members adds one accessor per relation not already provided by an
// embedded super view.
func (ViewGenerator) Members(ctx *Context, e *graph.Entity, a *Artifact) error {
	a.Doc = entityDoc(e, a.Name+" is the read-only view of "+e.Name+".")
	covered := make(map[string]bool)
	for _, s := range embeddedViews(ctx, e) {
		for _, r := range s.Relations {
			covered[r.Name] = true
		}
	}
	tr := ctx.Types(KindView)
	for _, r := range e.Relations {
		if covered[r.Name] {
			continue
		}
		a.AddMethod(&Method{
			Name:   Getter(r),
			Doc:    r.Comment,
			Result: tr.ValueType(r, types.Out),
		})
	}
	return nil
}

// embeddedViews returns the super-entities of e whose views the view of e
// embeds.
func embeddedViews(ctx *Context, e *graph.Entity) []*graph.Entity {
	tr := ctx.Types(KindView)
	var out []*graph.Entity
	for _, s := range e.Supers {
		ok := true
		for _, rs := range s.Relations {
			r := e.Relation(rs.Name)
			if r == nil || !types.Equal(tr.ValueType(r, types.Out), tr.ValueType(rs, types.Out)) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, s)
		}
	}
	return out
}
