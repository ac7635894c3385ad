// Package eval interprets generated artifacts. It executes method bodies
// directly from the code model, so that the behavior of generated code
// can be checked without compiling it.
//
// Struct artifacts become classes whose instances are *Object values.
// Runtime values of the facet package (collections, trace maps, writers,
// builder states, tables) are used natively and called by reflection.
// Plain relations hold their values without pointers: an absent optional
// value is nil, and so is an unset field of any type.
package eval

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/syssam/facet"
	"github.com/syssam/facet/compiler/gen"
	"github.com/syssam/facet/compiler/ir"
	"github.com/syssam/facet/compiler/types"
)

// Error reports a fault of the interpreted program, such as a call to an
// unknown method.
type Error struct {
	Message string
}

func (e *Error) Error() string { return "eval: " + e.Message }

func fault(format string, args ...any) {
	panic(&Error{Message: fmt.Sprintf(format, args...)})
}

// Object is an instance of a struct artifact.
type Object struct {
	Class  *Class
	fields map[string]any
}

// Get returns the value of field name.
func (o *Object) Get(name string) any { return o.fields[name] }

// String returns the class name and the object address.
func (o *Object) String() string { return fmt.Sprintf("%s(%p)", o.Class.Name(), o) }

// Class is an interpreted artifact.
type Class struct {
	artifact *gen.Artifact

	mu      sync.Mutex
	methods map[string]node
}

// Name returns the artifact name.
func (c *Class) Name() string { return c.artifact.Name }

// Program holds the classes of a set of artifacts.
type Program struct {
	classes   map[string]*Class
	artifacts map[string]*gen.Artifact
}

// New returns a program for the artifacts. Artifact names must be unique.
func New(artifacts []*gen.Artifact) *Program {
	p := &Program{
		classes:   make(map[string]*Class),
		artifacts: make(map[string]*gen.Artifact),
	}
	for _, a := range artifacts {
		p.artifacts[a.Name] = a
		if a.Form == gen.Struct {
			p.classes[a.Name] = &Class{artifact: a, methods: make(map[string]node)}
		}
	}
	return p
}

// New constructs an instance of class with the constructor arguments.
func (p *Program) New(class string, args ...any) (obj *Object, err error) {
	defer facet.Recover(&err)
	return p.construct(class, args), nil
}

// Call calls method on recv. Errors raised by the interpreted code are
// returned.
func (p *Program) Call(recv any, method string, args ...any) (out any, err error) {
	defer facet.Recover(&err)
	return p.call(recv, method, args), nil
}

// Implements reports whether instances of class implement the artifact
// named iface, directly or through supertypes.
func (p *Program) Implements(class, iface string) bool {
	if class == iface {
		return true
	}
	a, ok := p.artifacts[class]
	if !ok {
		return false
	}
	for _, st := range a.Supertypes {
		if at, ok := st.(*types.Artifact); ok && p.Implements(at.Ref.Name(), iface) {
			return true
		}
	}
	return false
}

func (p *Program) construct(class string, args []any) *Object {
	c, ok := p.classes[class]
	if !ok {
		fault("unknown class %s", class)
	}
	obj := &Object{Class: c, fields: make(map[string]any)}
	params := c.artifact.Params()
	if len(args) != len(params) {
		fault("%s: %d constructor arguments, want %d", c.artifact.Constructor(), len(args), len(params))
	}
	for i, f := range params {
		obj.fields[f.Name] = args[i]
	}
	for _, f := range c.artifact.Fields {
		switch {
		case f.Param:
		case f.Init != nil:
			obj.fields[f.Name] = p.compile(f.Init).value(&frame{})
		default:
			obj.fields[f.Name] = nil
		}
	}
	return obj
}

func (p *Program) call(recv any, method string, args []any) any {
	if recv == nil {
		fault("call of %s on nil", method)
	}
	if obj, ok := recv.(*Object); ok {
		return p.invoke(obj, method, args)
	}
	return native(recv, method, args)
}

func (p *Program) invoke(obj *Object, name string, args []any) any {
	m := obj.Class.artifact.Method(name)
	if m == nil {
		fault("%s has no method %s", obj.Class.Name(), name)
	}
	fr := &frame{self: obj, locals: make(map[string]any)}
	for i, param := range m.Params {
		switch {
		case param.Variadic:
			rest := []any{}
			if i < len(args) {
				rest = append(rest, args[i:]...)
			}
			fr.locals[param.Name] = rest
		case i < len(args):
			fr.locals[param.Name] = args[i]
		default:
			fault("%s.%s: missing argument %s", obj.Class.Name(), name, param.Name)
		}
	}
	v, _ := obj.Class.body(p, m).run(fr)
	return v
}

func (c *Class) body(p *Program, m *gen.Method) node {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.methods[m.Name]
	if !ok {
		n = p.compile(m.Body)
		c.methods[m.Name] = n
	}
	return n
}

func (p *Program) compile(c ir.Code) node {
	return ir.Eval(c, interp{p: p})
}

// native calls a method of a runtime value by reflection.
func native(recv any, method string, args []any) any {
	m := reflect.ValueOf(recv).MethodByName(method)
	if !m.IsValid() {
		fault("%T has no method %s", recv, method)
	}
	mt := m.Type()
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var pt reflect.Type
		switch {
		case mt.IsVariadic() && i >= mt.NumIn()-1:
			pt = mt.In(mt.NumIn() - 1).Elem()
		case i < mt.NumIn():
			pt = mt.In(i)
		default:
			fault("%T.%s: too many arguments", recv, method)
		}
		in[i] = value(a, pt)
	}
	out := m.Call(in)
	if len(out) == 0 {
		return nil
	}
	return out[0].Interface()
}

func value(a any, t reflect.Type) reflect.Value {
	if a == nil {
		return reflect.Zero(t)
	}
	v := reflect.ValueOf(a)
	switch {
	case v.Type().AssignableTo(t):
		return v
	case v.Type().ConvertibleTo(t):
		return v.Convert(t)
	}
	fault("cannot use %T as %s", a, t)
	return reflect.Value{}
}
