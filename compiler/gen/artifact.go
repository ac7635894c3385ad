package gen

import (
	"github.com/syssam/facet/compiler/ir"
	"github.com/syssam/facet/compiler/types"
	"github.com/syssam/facet/graph"
)

// Form is the shape of a generated type.
type Form int

// Forms.
const (
	Interface Form = iota
	Struct
)

// String returns "interface" or "struct".
func (f Form) String() string {
	if f == Struct {
		return "struct"
	}
	return "interface"
}

type (
	// Artifact is one generated type with its members. Rendering backends
	// turn artifacts into source text.
	Artifact struct {
		Kind Kind
		// Entity is the entity the artifact was generated for; nil for
		// processors.
		Entity *graph.Entity
		Name   string
		// Path is the import path of the package declaring the artifact.
		Path string
		// File is the base name, without extension, of the file holding
		// the artifact.
		File string
		Doc  string
		Form Form
		// Receiver is the receiver name of struct methods.
		Receiver string
		// Supertypes are embedded by interfaces, and asserted as
		// implemented by structs.
		Supertypes []types.Descriptor
		Fields     []*Field
		Methods    []*Method
	}

	// Field is a struct field. Fields marked Param are constructor
	// parameters; the others are initialized with Init, or left zero.
	Field struct {
		Name  string
		Type  types.Descriptor
		Init  ir.Code
		Param bool
	}

	// Method is an interface or struct method. Interface methods have
	// no Body.
	Method struct {
		Name   string
		Doc    string
		Params []*Param
		// Result is nil for methods without result.
		Result types.Descriptor
		Body   ir.Code
		// Guarded methods convert errors raised by their body into a
		// returned error.
		Guarded bool
	}

	// Param is a method parameter.
	Param struct {
		Name     string
		Type     types.Descriptor
		Variadic bool
	}
)

// Method returns the method with the given name, or nil.
func (a *Artifact) Method(name string) *Method {
	for _, m := range a.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Field returns the field with the given name, or nil.
func (a *Artifact) Field(name string) *Field {
	for _, f := range a.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// AddMethod appends methods.
func (a *Artifact) AddMethod(ms ...*Method) {
	a.Methods = append(a.Methods, ms...)
}

// AddField appends fields.
func (a *Artifact) AddField(fs ...*Field) {
	a.Fields = append(a.Fields, fs...)
}

// Constructor returns the name of the struct constructor.
func (a *Artifact) Constructor() string {
	return "New" + a.Name
}

// Params returns the constructor parameters: the fields marked Param.
func (a *Artifact) Params() []*Field {
	var ps []*Field
	for _, f := range a.Fields {
		if f.Param {
			ps = append(ps, f)
		}
	}
	return ps
}

// Validate reports duplicate member names and structural mistakes.
func (a *Artifact) Validate() error {
	seen := make(map[string]bool)
	for _, f := range a.Fields {
		if a.Form == Interface {
			return NewValidationError(a.Name, f.Name, "interfaces cannot have fields")
		}
		if seen["field:"+f.Name] {
			return NewValidationError(a.Name, f.Name, "duplicate field")
		}
		seen["field:"+f.Name] = true
	}
	for _, m := range a.Methods {
		if seen[m.Name] {
			return NewValidationError(a.Name, m.Name, "duplicate method")
		}
		seen[m.Name] = true
		switch {
		case a.Form == Struct && m.Body == nil:
			return NewValidationError(a.Name, m.Name, "struct method without body")
		case a.Form == Interface && m.Body != nil:
			return NewValidationError(a.Name, m.Name, "interface method with body")
		case m.Guarded && m.Result == nil:
			return NewValidationError(a.Name, m.Name, "guarded method without result")
		}
		for i, p := range m.Params {
			if p.Variadic && i != len(m.Params)-1 {
				return NewValidationError(a.Name, m.Name, "variadic parameter must be last")
			}
		}
	}
	return nil
}
