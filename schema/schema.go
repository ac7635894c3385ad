package schema

import "slices"

// Collection kinds recognized by the graph builder. Any other non-empty
// value is reported as unsupported.
const (
	KindList       = "list"
	KindSet        = "set"
	KindCollection = "collection"
)

// Void is the result type of an accessor that returns nothing.
const Void = "void"

// Declaration is one class-like data declaration: the unit consumed by
// the graph builder.
type Declaration struct {
	Name       string            `json:"name" yaml:"name"`
	Namespace  string            `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Supertypes []string          `json:"supertypes,omitempty" yaml:"supertypes,omitempty"`
	Accessors  []*Accessor       `json:"accessors,omitempty" yaml:"accessors,omitempty"`
	Imports    map[string]string `json:"imports,omitempty" yaml:"imports,omitempty"`
	Comment    string            `json:"comment,omitempty" yaml:"comment,omitempty"`
	Metadata   map[string]any    `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	// Pos is the source position for loaded declarations.
	Pos string `json:"-" yaml:"-"`
}

// Accessor is a method declared on a Declaration. Only zero-argument
// accessors with a getter-shaped name become relations.
type Accessor struct {
	Name string `json:"name" yaml:"name"`
	// Params holds the parameter types. Accessors with parameters are
	// reported and dropped.
	Params []string `json:"params,omitempty" yaml:"params,omitempty"`
	// Result is a Go type expression, e.g. "int", "Point",
	// "map[string][]Point" or "geo.Pair[int, Point]". Empty or "void"
	// means no result.
	Result string `json:"result,omitempty" yaml:"result,omitempty"`
	// Collection is the collection kind of the result: "list", "set" or
	// "collection". Empty for single values.
	Collection string         `json:"collection,omitempty" yaml:"collection,omitempty"`
	Optional   bool           `json:"optional,omitempty" yaml:"optional,omitempty"`
	Reference  bool           `json:"reference,omitempty" yaml:"reference,omitempty"`
	Skip       bool           `json:"skip,omitempty" yaml:"skip,omitempty"`
	Comment    string         `json:"comment,omitempty" yaml:"comment,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Arity returns the number of parameters.
func (a *Accessor) Arity() int {
	return len(a.Params)
}

// IsVoid reports whether the accessor returns nothing.
func (a *Accessor) IsVoid() bool {
	return a.Result == "" || a.Result == Void
}

// Clone returns a deep copy of the declaration.
func (d *Declaration) Clone() *Declaration {
	c := *d
	c.Supertypes = slices.Clone(d.Supertypes)
	c.Accessors = make([]*Accessor, len(d.Accessors))
	for i, a := range d.Accessors {
		ac := *a
		ac.Params = slices.Clone(a.Params)
		ac.Metadata = cloneMap(a.Metadata)
		c.Accessors[i] = &ac
	}
	c.Imports = cloneMap(d.Imports)
	c.Metadata = cloneMap(d.Metadata)
	return &c
}

// Accessor returns the accessor with the given name, or nil.
func (d *Declaration) Accessor(name string) *Accessor {
	for _, a := range d.Accessors {
		if a.Name == name {
			return a
		}
	}
	return nil
}

func cloneMap[V any](m map[string]V) map[string]V {
	if m == nil {
		return nil
	}
	c := make(map[string]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
