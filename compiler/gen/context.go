package gen

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/syssam/facet/compiler/typemap"
	"github.com/syssam/facet/compiler/types"
	"github.com/syssam/facet/graph"
)

// ErrSlotFilled is returned when a slot is filled twice.
var ErrSlotFilled = errors.New("facet: registry slot already filled")

// Slot is the registry entry of one artifact. It is reserved with its
// name before any artifact is populated, so that generators can refer to
// it by identity, and filled exactly once.
type Slot struct {
	kind     Kind
	entity   *graph.Entity
	name     string
	path     string
	form     Form
	artifact *Artifact
}

var _ types.Ref = (*Slot)(nil)

// Name returns the artifact name.
func (s *Slot) Name() string { return s.name }

// Path returns the import path of the artifact's package.
func (s *Slot) Path() string { return s.path }

// IsStruct reports whether the artifact is a struct.
func (s *Slot) IsStruct() bool { return s.form == Struct }

// Kind returns the artifact kind.
func (s *Slot) Kind() Kind { return s.kind }

// Entity returns the entity the slot was reserved for.
func (s *Slot) Entity() *graph.Entity { return s.entity }

// Type returns the descriptor referring to the slot's artifact.
func (s *Slot) Type() types.Descriptor { return &types.Artifact{Ref: s} }

// Artifact returns the artifact, or nil before the slot is filled.
func (s *Slot) Artifact() *Artifact { return s.artifact }

// Filled reports whether the slot holds its artifact.
func (s *Slot) Filled() bool { return s.artifact != nil }

// Fill stores the artifact. A slot can be filled once.
func (s *Slot) Fill(a *Artifact) error {
	if s.artifact != nil {
		return fmt.Errorf("%w: %s", ErrSlotFilled, s.name)
	}
	s.artifact = a
	return nil
}

// Registry maps entities to the slots of one artifact kind.
type Registry struct {
	kind  Kind
	slots map[*graph.Entity]*Slot
	order []*Slot
}

func newRegistry(k Kind) *Registry {
	return &Registry{kind: k, slots: make(map[*graph.Entity]*Slot)}
}

// Kind returns the registry's artifact kind.
func (r *Registry) Kind() Kind { return r.kind }

// Reserve reserves the slot of e. Reserving twice returns the existing
// slot.
func (r *Registry) Reserve(e *graph.Entity, name, path string) *Slot {
	if s, ok := r.slots[e]; ok {
		return s
	}
	s := &Slot{kind: r.kind, entity: e, name: name, path: path, form: r.kind.Form()}
	r.slots[e] = s
	r.order = append(r.order, s)
	return s
}

// Lookup returns the slot of e.
func (r *Registry) Lookup(e *graph.Entity) (*Slot, bool) {
	s, ok := r.slots[e]
	return s, ok
}

// Slots returns the slots in reservation order.
func (r *Registry) Slots() []*Slot {
	return r.order
}

// Context is the state shared by the generators of one pass: the graph,
// the configuration, one registry per artifact kind and the published
// artifacts.
type Context struct {
	Graph  *graph.Graph
	Config *Config

	registries map[Kind]*Registry
	artifacts  []*Artifact
}

// NewContext returns a context for generating g. A nil config uses the
// defaults.
func NewContext(g *graph.Graph, cfg *Config) *Context {
	if cfg == nil {
		cfg = MustNewConfig()
	}
	return &Context{
		Graph:      g,
		Config:     cfg,
		registries: make(map[Kind]*Registry),
	}
}

// Log returns the configured logger.
func (c *Context) Log() *zap.Logger {
	return c.Config.Log()
}

// Registry returns the registry of kind k, creating it if needed.
func (c *Context) Registry(k Kind) *Registry {
	r, ok := c.registries[k]
	if !ok {
		r = newRegistry(k)
		c.registries[k] = r
	}
	return r
}

// Slot returns the slot of kind k reserved for e. It panics with a
// *MissingSlotError if there is none; Run converts the panic into a
// returned *GenerationError.
func (c *Context) Slot(k Kind, e *graph.Entity) *Slot {
	if r, ok := c.registries[k]; ok {
		if s, ok := r.Lookup(e); ok {
			return s
		}
	}
	panic(&MissingSlotError{Kind: k, Entity: e.Name})
}

// Type returns the descriptor of e's artifact of kind k.
func (c *Context) Type(k Kind, e *graph.Entity) types.Descriptor {
	return c.Slot(k, e).Type()
}

// Types returns a transformer mapping owned entities to their artifacts
// of kind k and referenced entities to their references.
func (c *Context) Types(k Kind) *typemap.Transformer {
	return typemap.New(c.Graph,
		func(e *graph.Entity) types.Descriptor { return c.Type(k, e) },
		func(e *graph.Entity) types.Descriptor { return c.Type(KindRef, e) },
	)
}

// Publish adds finished artifacts.
func (c *Context) Publish(as ...*Artifact) {
	c.artifacts = append(c.artifacts, as...)
}

// Artifacts returns the published artifacts in publication order.
func (c *Context) Artifacts() []*Artifact {
	return c.artifacts
}
