// Package types describes the types that appear in generated code:
// declared plain types, runtime containers and references to other
// generated artifacts.
package types

import (
	"path"
	"strings"
)

// RuntimePackage is the import path of the runtime support package used
// by generated code.
const RuntimePackage = "github.com/syssam/facet"

// Multiplicity is the cardinality of a relation.
type Multiplicity int

// Multiplicities.
const (
	One Multiplicity = iota
	ZeroOrOne
	List
	Set
	Collection
)

var multiplicityNames = [...]string{
	One:        "ONE",
	ZeroOrOne:  "ZERO_OR_ONE",
	List:       "LIST",
	Set:        "SET",
	Collection: "COLLECTION",
}

// String returns the multiplicity name.
func (m Multiplicity) String() string {
	if m < 0 || int(m) >= len(multiplicityNames) {
		return "INVALID"
	}
	return multiplicityNames[m]
}

// MarshalText implements encoding.TextMarshaler.
func (m Multiplicity) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// IsCollection reports whether m is LIST, SET or COLLECTION.
func (m Multiplicity) IsCollection() bool {
	return m == List || m == Set || m == Collection
}

// Container returns the runtime container name of a collection
// multiplicity: List, Set or Bag.
func (m Multiplicity) Container() string {
	switch m {
	case List:
		return "List"
	case Set:
		return "Set"
	case Collection:
		return "Bag"
	default:
		return ""
	}
}

// ParseCollection maps a declared collection kind to its multiplicity.
func ParseCollection(kind string) (Multiplicity, bool) {
	switch strings.ToLower(kind) {
	case "list":
		return List, true
	case "set":
		return Set, true
	case "collection":
		return Collection, true
	default:
		return One, false
	}
}

// Variance is the bound applied to container elements.
type Variance int

// Variances.
const (
	// Invariant requests the exact, mutable container.
	Invariant Variance = iota
	// Out requests a read-only, covariant container.
	Out
	// In requests a write-only, contravariant container.
	In
)

// String returns "", "out" or "in".
func (v Variance) String() string {
	switch v {
	case Out:
		return "out"
	case In:
		return "in"
	default:
		return ""
	}
}

// Descriptor describes a type. The set of implementations is closed.
type Descriptor interface {
	String() string
	descriptor()
}

// Ref is a handle to a generated artifact, resolvable by identity before
// the artifact is populated.
type Ref interface {
	// Name returns the artifact type name.
	Name() string
	// Path returns the import path of the package declaring the
	// artifact.
	Path() string
	// IsStruct reports whether the artifact is a struct. Structs are
	// referenced through pointers in generated code.
	IsStruct() bool
}

type (
	// Basic is a predeclared type such as int, string or any.
	Basic struct {
		Name string
	}

	// Named is a named type, possibly generic. An empty Pkg denotes the
	// generated package itself.
	Named struct {
		Pkg  string
		Name string
		Args []Descriptor
	}

	// Pointer is *Elem.
	Pointer struct {
		Elem Descriptor
	}

	// Slice is []Elem.
	Slice struct {
		Elem Descriptor
	}

	// Map is map[Key]Elem.
	Map struct {
		Key  Descriptor
		Elem Descriptor
	}

	// Container is a runtime collection of Elem with the given
	// multiplicity and element variance.
	Container struct {
		Multiplicity Multiplicity
		Elem         Descriptor
		Variance     Variance
	}

	// Artifact is a generated type.
	Artifact struct {
		Ref Ref
	}
)

func (*Basic) descriptor()     {}
func (*Named) descriptor()     {}
func (*Pointer) descriptor()   {}
func (*Slice) descriptor()     {}
func (*Map) descriptor()       {}
func (*Container) descriptor() {}
func (*Artifact) descriptor()  {}

func (t *Basic) String() string { return t.Name }

func (t *Named) String() string {
	var b strings.Builder
	if t.Pkg != "" {
		b.WriteString(path.Base(t.Pkg))
		b.WriteByte('.')
	}
	b.WriteString(t.Name)
	if len(t.Args) > 0 {
		b.WriteByte('[')
		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteByte(']')
	}
	return b.String()
}

func (t *Pointer) String() string { return "*" + t.Elem.String() }

func (t *Slice) String() string { return "[]" + t.Elem.String() }

func (t *Map) String() string { return "map[" + t.Key.String() + "]" + t.Elem.String() }

func (t *Container) String() string {
	name := t.Multiplicity.Container()
	if t.Multiplicity == Collection {
		name = "Collection"
	}
	if v := t.Variance.String(); v != "" {
		return name + "<" + v + " " + t.Elem.String() + ">"
	}
	return name + "<" + t.Elem.String() + ">"
}

func (t *Artifact) String() string { return t.Ref.Name() }

// Runtime returns the named runtime type facet.<name>.
func Runtime(name string, args ...Descriptor) *Named {
	return &Named{Pkg: RuntimePackage, Name: name, Args: args}
}

// Func is a package-level function.
type Func struct {
	Pkg  string
	Name string
}

// RuntimeFunc returns the runtime function facet.<name>.
func RuntimeFunc(name string) Func {
	return Func{Pkg: RuntimePackage, Name: name}
}

// String returns the qualified function name.
func (f Func) String() string {
	if f.Pkg == "" {
		return f.Name
	}
	return path.Base(f.Pkg) + "." + f.Name
}

// Predeclared types.
var (
	Bool   = &Basic{Name: "bool"}
	Int    = &Basic{Name: "int"}
	String = &Basic{Name: "string"}
	Any    = &Basic{Name: "any"}
	Error  = &Basic{Name: "error"}
)

var predeclared = map[string]bool{
	"bool": true, "string": true, "error": true, "any": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"float32": true, "float64": true, "complex64": true, "complex128": true,
	"byte": true, "rune": true,
}

// IsPredeclared reports whether name is a predeclared Go type.
func IsPredeclared(name string) bool {
	return predeclared[name]
}

// Nilable reports whether the zero value of t is nil, so that absence can
// be represented without a pointer.
func Nilable(t Descriptor) bool {
	switch t := t.(type) {
	case *Pointer, *Slice, *Map, *Container, *Artifact:
		return true
	case *Basic:
		return t.Name == "any" || t.Name == "error"
	default:
		return false
	}
}

// Comparable reports whether values of t can be map keys. Named types
// declared elsewhere are assumed comparable.
func Comparable(t Descriptor) bool {
	switch t.(type) {
	case *Slice, *Map:
		return false
	default:
		return true
	}
}

// Rewrite returns t with every sub-descriptor replaced by fn, visited top
// down. When fn reports false the descriptor is kept and its children are
// rewritten.
func Rewrite(t Descriptor, fn func(Descriptor) (Descriptor, bool)) Descriptor {
	if r, ok := fn(t); ok {
		return r
	}
	switch t := t.(type) {
	case *Named:
		if len(t.Args) == 0 {
			return t
		}
		args := make([]Descriptor, len(t.Args))
		for i, a := range t.Args {
			args[i] = Rewrite(a, fn)
		}
		return &Named{Pkg: t.Pkg, Name: t.Name, Args: args}
	case *Pointer:
		return &Pointer{Elem: Rewrite(t.Elem, fn)}
	case *Slice:
		return &Slice{Elem: Rewrite(t.Elem, fn)}
	case *Map:
		return &Map{Key: Rewrite(t.Key, fn), Elem: Rewrite(t.Elem, fn)}
	case *Container:
		return &Container{Multiplicity: t.Multiplicity, Elem: Rewrite(t.Elem, fn), Variance: t.Variance}
	default:
		return t
	}
}

// Walk calls fn for t and every sub-descriptor, top down.
func Walk(t Descriptor, fn func(Descriptor)) {
	Rewrite(t, func(d Descriptor) (Descriptor, bool) {
		fn(d)
		return nil, false
	})
}

// Equal reports whether a and b describe the same type. Artifacts are
// compared by identity of their refs.
func Equal(a, b Descriptor) bool {
	switch a := a.(type) {
	case *Basic:
		b, ok := b.(*Basic)
		return ok && a.Name == b.Name
	case *Named:
		b, ok := b.(*Named)
		if !ok || a.Pkg != b.Pkg || a.Name != b.Name || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	case *Pointer:
		b, ok := b.(*Pointer)
		return ok && Equal(a.Elem, b.Elem)
	case *Slice:
		b, ok := b.(*Slice)
		return ok && Equal(a.Elem, b.Elem)
	case *Map:
		b, ok := b.(*Map)
		return ok && Equal(a.Key, b.Key) && Equal(a.Elem, b.Elem)
	case *Container:
		b, ok := b.(*Container)
		return ok && a.Multiplicity == b.Multiplicity && a.Variance == b.Variance && Equal(a.Elem, b.Elem)
	case *Artifact:
		b, ok := b.(*Artifact)
		return ok && a.Ref == b.Ref
	default:
		return false
	}
}
