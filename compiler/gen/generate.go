package gen

import (
	"errors"

	"go.uber.org/zap"

	"github.com/syssam/facet/compiler/types"
	"github.com/syssam/facet/graph"
)

// Generator synthesizes the artifacts of one kind, one per entity.
type Generator interface {
	// Kind returns the artifact kind.
	Kind() Kind
	// Name returns the artifact name for e.
	Name(e *graph.Entity) string
	// Supertypes returns the types the artifact of e embeds or implements.
	Supertypes(ctx *Context, e *graph.Entity) []types.Descriptor
	// Members populates the fields and methods of a.
	Members(ctx *Context, e *graph.Entity, a *Artifact) error
}

// Generators returns the stock generators of the given kinds.
func Generators(kinds ...Kind) []Generator {
	var gens []Generator
	for _, k := range kinds {
		switch k {
		case KindView:
			gens = append(gens, ViewGenerator{})
		case KindRecord:
			gens = append(gens, RecordGenerator{})
		case KindData:
			gens = append(gens, DataGenerator{})
		case KindBuilder:
			gens = append(gens, BuilderGenerator{})
		case KindBuilderBase:
			gens = append(gens, BuilderBaseGenerator{})
		case KindRecordBuilder:
			gens = append(gens, RecordBuilderGenerator{})
		case KindRef:
			gens = append(gens, RefGenerator{})
		case KindLiteralRef:
			gens = append(gens, LiteralRefGenerator{})
		case KindProxyRef:
			gens = append(gens, ProxyRefGenerator{})
		}
	}
	return gens
}

// Run runs the generators over every entity of the context's graph.
//
// Every slot of every generator is reserved before any artifact is
// populated, so that members may refer to artifacts of other entities
// and kinds regardless of order. Populated artifacts are validated,
// stored in their slots and published.
func Run(ctx *Context, gens ...Generator) (err error) {
	for _, g := range gens {
		r := ctx.Registry(g.Kind())
		for _, e := range ctx.Graph.Entities {
			r.Reserve(e, g.Name(e), ctx.Config.PackagePath(e.Namespace))
		}
	}
	for _, g := range gens {
		for _, e := range ctx.Graph.Entities {
			if err := populate(ctx, g, e); err != nil {
				return err
			}
		}
	}
	return nil
}

func populate(ctx *Context, g Generator, e *graph.Entity) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		slotErr, ok := r.(*MissingSlotError)
		if !ok {
			panic(r)
		}
		err = NewGenerationError(g.Kind().String(), e.Name, "", slotErr)
	}()
	slot := ctx.Slot(g.Kind(), e)
	a := &Artifact{
		Kind:     g.Kind(),
		Entity:   e,
		Name:     slot.Name(),
		Path:     slot.Path(),
		File:     Snake(e.Name),
		Form:     g.Kind().Form(),
		Receiver: Receiver(slot.Name()),
	}
	a.Supertypes = g.Supertypes(ctx, e)
	if err := g.Members(ctx, e, a); err != nil {
		return NewGenerationError(g.Kind().String(), e.Name, "", err)
	}
	if err := a.Validate(); err != nil {
		return NewGenerationError(g.Kind().String(), e.Name, "", err)
	}
	if err := slot.Fill(a); err != nil {
		return NewGenerationError(g.Kind().String(), e.Name, "", err)
	}
	ctx.Publish(a)
	ctx.Log().Debug("artifact generated",
		zap.String("kind", a.Kind.String()),
		zap.String("entity", e.Name),
		zap.String("name", a.Name),
	)
	return nil
}

// IsMissingSlotPanic reports whether a recovered panic value is a
// *MissingSlotError. Callers that resolve slots outside Run use it to
// convert the panic into an error.
func IsMissingSlotPanic(r any) (*MissingSlotError, bool) {
	err, ok := r.(error)
	if !ok {
		return nil, false
	}
	var slotErr *MissingSlotError
	if errors.As(err, &slotErr) {
		return slotErr, true
	}
	return nil, false
}
