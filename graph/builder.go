package graph

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/syssam/facet/compiler/types"
	"github.com/syssam/facet/schema"
)

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger diagnostics are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// Builder builds a Graph from declarations.
type Builder struct {
	log *zap.Logger
}

// NewBuilder returns a graph builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{log: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build builds the graph of decls with a default builder.
func Build(decls []*schema.Declaration) (*Graph, error) {
	return NewBuilder().Build(decls)
}

// Build builds the graph of decls. The result is deterministic for a
// given input order.
//
// Malformed declarations and accessors are excluded and reported in
// Graph.Diagnostics. Build fails only when decls is empty or supertypes
// form a cycle.
func (b *Builder) Build(decls []*schema.Declaration) (*Graph, error) {
	if len(decls) == 0 {
		return nil, ErrNoDeclarations
	}
	s := &state{
		Builder: b,
		g:       &Graph{byName: make(map[string]*Entity)},
		done:    make(map[*Entity]bool),
	}
	s.create(decls)
	s.supers()
	if err := s.checkCycles(); err != nil {
		return nil, err
	}
	for _, e := range s.g.Entities {
		s.relations(e)
	}
	for _, e := range s.g.Entities {
		s.resolve(e)
	}
	for _, e := range s.g.Entities {
		s.removeSkipped(e)
	}
	return s.g, nil
}

// state is the state of one Build call.
type state struct {
	*Builder
	g    *Graph
	done map[*Entity]bool
}

func (s *state) diag(entity, element, format string, args ...any) {
	d := Diagnostic{Entity: entity, Element: element, Message: fmt.Sprintf(format, args...)}
	s.g.Diagnostics = append(s.g.Diagnostics, d)
	s.log.Warn("declaration excluded",
		zap.String("entity", entity),
		zap.String("element", element),
		zap.String("reason", d.Message),
	)
}

// create pre-creates one empty entity per declaration so that relations
// and supertypes can refer forward.
func (s *state) create(decls []*schema.Declaration) {
	for _, d := range decls {
		if d == nil {
			continue
		}
		if d.Name == "" {
			s.diag("<unnamed>", "", "declaration has no name")
			continue
		}
		if _, ok := s.g.byName[d.Name]; ok {
			s.diag(d.Name, "", "duplicate declaration at %s", position(d))
			continue
		}
		e := &Entity{
			Name:      d.Name,
			Namespace: d.Namespace,
			Comment:   d.Comment,
			Metadata:  d.Metadata,
			Imports:   d.Imports,
			Decl:      d,
			index:     make(map[string]*Relation),
		}
		s.g.Entities = append(s.g.Entities, e)
		s.g.byName[e.Name] = e
	}
}

func (s *state) supers() {
	for _, e := range s.g.Entities {
		seen := make(map[string]bool)
		for _, name := range e.Decl.Supertypes {
			switch super, ok := s.g.byName[name]; {
			case !ok:
				s.diag(e.Name, name, "unknown supertype %q", name)
			case seen[name]:
				s.diag(e.Name, name, "supertype %q listed twice", name)
			default:
				seen[name] = true
				e.Supers = append(e.Supers, super)
			}
		}
	}
}

func (s *state) checkCycles() error {
	const (
		visiting = 1
		visited  = 2
	)
	var (
		color = make(map[*Entity]int)
		stack []string
		visit func(*Entity) error
	)
	visit = func(e *Entity) error {
		switch color[e] {
		case visiting:
			i := len(stack) - 1
			for i > 0 && stack[i] != e.Name {
				i--
			}
			path := append(append([]string(nil), stack[i:]...), e.Name)
			return &CycleError{Path: path}
		case visited:
			return nil
		}
		color[e] = visiting
		stack = append(stack, e.Name)
		for _, super := range e.Supers {
			if err := visit(super); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		color[e] = visited
		return nil
	}
	for _, e := range s.g.Entities {
		if err := visit(e); err != nil {
			return err
		}
	}
	return nil
}

// relations derives the entity's own relations from its accessors.
func (s *state) relations(e *Entity) {
	names := make(map[string]string)
	for _, a := range e.Decl.Accessors {
		if a == nil {
			continue
		}
		r, ok := s.relation(e, a)
		if !ok {
			continue
		}
		if prev, dup := names[r.Name]; dup {
			s.diag(e.Name, a.Name, "relation %q is already declared by %s", r.Name, prev)
			continue
		}
		names[r.Name] = a.Name
		e.Own = append(e.Own, r)
	}
}

func (s *state) relation(e *Entity, a *schema.Accessor) (*Relation, bool) {
	if n := a.Arity(); n > 0 {
		s.diag(e.Name, a.Name, "accessor takes %d parameters", n)
		return nil, false
	}
	if a.IsVoid() {
		s.diag(e.Name, a.Name, "accessor has no result")
		return nil, false
	}
	name, style := relationName(a.Name)
	if style == styleNone {
		s.diag(e.Name, a.Name, "no recognized getter prefix")
		return nil, false
	}
	t, err := types.Parse(a.Result, e.Imports)
	if err != nil {
		s.diag(e.Name, a.Name, "unsupported result type: %v", err)
		return nil, false
	}
	if style == styleBoolean && !types.Equal(t, types.Bool) {
		s.diag(e.Name, a.Name, "boolean accessor returns %s", t)
		return nil, false
	}
	m := types.One
	if a.Optional {
		m = types.ZeroOrOne
	}
	if a.Collection != "" {
		c, ok := types.ParseCollection(a.Collection)
		if !ok {
			s.diag(e.Name, a.Name, "unsupported collection kind %q", a.Collection)
			return nil, false
		}
		if a.Optional {
			s.log.Debug("optional marker ignored on collection",
				zap.String("entity", e.Name),
				zap.String("element", a.Name),
			)
		}
		m = c
	}
	r := &Relation{
		Name:         name,
		Multiplicity: m,
		Owner:        e,
		Skip:         a.Skip,
		Accessor:     a.Name,
		Comment:      a.Comment,
		Metadata:     a.Metadata,
	}
	switch target := s.entityNamed(t); {
	case target != nil && a.Reference:
		r.Target = &ReferenceTarget{Entity: target}
	case target != nil:
		r.Target = &EntityTarget{Entity: target}
	default:
		if m == types.Set && !types.Comparable(t) {
			s.diag(e.Name, a.Name, "set element type %s is not comparable", t)
			return nil, false
		}
		if a.Reference {
			s.diag(e.Name, a.Name, "reference marker ignored on plain type %s", t)
		}
		r.Target = &PlainTarget{Type: t}
	}
	return r, true
}

// entityNamed returns the entity t names, if t is a bare local name.
func (s *state) entityNamed(t types.Descriptor) *Entity {
	n, ok := t.(*types.Named)
	if !ok || n.Pkg != "" || len(n.Args) > 0 {
		return nil
	}
	return s.g.byName[n.Name]
}

// resolve resolves the relations of e after those of its supers. For
// every name inherited from any super, e gets exactly one relation whose
// override set is the union of the supers' relations of that name. An own
// relation with that name is kept and takes the override set; otherwise
// a synthetic relation copies the shape of the lowest consistent
// candidate.
func (s *state) resolve(e *Entity) {
	if s.done[e] {
		return
	}
	s.done[e] = true
	var (
		order      []string
		candidates = make(map[string][]*Relation)
	)
	for _, super := range e.Supers {
		s.resolve(super)
		for _, r := range super.resolved {
			if _, ok := candidates[r.Name]; !ok {
				order = append(order, r.Name)
			}
			candidates[r.Name] = append(candidates[r.Name], r)
		}
	}
	own := make(map[string]*Relation, len(e.Own))
	for _, r := range e.Own {
		own[r.Name] = r
	}
	for _, name := range order {
		cs := candidates[name]
		if r, ok := own[name]; ok {
			r.Overrides = cs
			e.resolved = append(e.resolved, r)
			continue
		}
		e.resolved = append(e.resolved, s.synthesize(e, name, cs))
	}
	for _, r := range e.Own {
		if _, ok := candidates[r.Name]; !ok {
			e.resolved = append(e.resolved, r)
		}
	}
}

func (s *state) synthesize(e *Entity, name string, cs []*Relation) *Relation {
	pick := lowest(cs)
	if pick == nil {
		pick = cs[0]
		shapes := make([]string, len(cs))
		for i, c := range cs {
			shapes[i] = c.Origin().String()
		}
		s.diag(e.Name, name, "conflicting inherited relations %s; using %s",
			strings.Join(shapes, ", "), pick.Origin())
	}
	return &Relation{
		Name:         name,
		Multiplicity: pick.Multiplicity,
		Target:       pick.Target,
		Owner:        e,
		Overrides:    cs,
		Synthetic:    true,
		Accessor:     pick.Accessor,
		Comment:      pick.Comment,
		Metadata:     pick.Metadata,
		origin:       pick.Origin(),
	}
}

// lowest returns the first candidate that refines every other candidate.
func lowest(cs []*Relation) *Relation {
	for _, c := range cs {
		ok := true
		for _, o := range cs {
			if !c.Refines(o) {
				ok = false
				break
			}
		}
		if ok {
			return c
		}
	}
	return nil
}

func (s *state) removeSkipped(e *Entity) {
	for _, r := range e.resolved {
		if r.Skipped() {
			s.log.Debug("relation skipped", zap.String("entity", e.Name), zap.String("relation", r.Name))
			continue
		}
		e.Relations = append(e.Relations, r)
		e.index[r.Name] = r
	}
	e.resolved = nil
}

func position(d *schema.Declaration) string {
	if d.Pos != "" {
		return d.Pos
	}
	return "<unknown>"
}
