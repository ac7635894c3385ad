package eval

import (
	"reflect"

	"github.com/syssam/facet"
	"github.com/syssam/facet/compiler/ir"
	"github.com/syssam/facet/compiler/types"
)

// frame is the activation of one method call.
type frame struct {
	self   any
	locals map[string]any
}

// node is compiled code. run returns the value of an expression, or the
// returned value of a statement together with true once a return was
// executed. Assignable nodes also have set.
type node struct {
	run func(*frame) (any, bool)
	set func(*frame, any)
}

func expr(fn func(*frame) any) node {
	return node{run: func(fr *frame) (any, bool) { return fn(fr), false }}
}

func (n node) value(fr *frame) any {
	v, _ := n.run(fr)
	return v
}

func values(fr *frame, ns []node) []any {
	out := make([]any, len(ns))
	for i, n := range ns {
		out[i] = n.value(fr)
	}
	return out
}

// interp compiles code into nodes.
type interp struct {
	p *Program
}

var _ ir.Factory[node] = interp{}

func (interp) Block(stmts ...node) node {
	return node{run: func(fr *frame) (any, bool) {
		for _, s := range stmts {
			if v, ok := s.run(fr); ok {
				return v, true
			}
		}
		return nil, false
	}}
}

func (interp) Stmt(e node) node {
	return node{run: func(fr *frame) (any, bool) {
		e.run(fr)
		return nil, false
	}}
}

func (interp) Field(recv node, name string) node {
	object := func(fr *frame) *Object {
		obj, ok := recv.value(fr).(*Object)
		if !ok {
			fault("field %s of a non-object", name)
		}
		return obj
	}
	return node{
		run: func(fr *frame) (any, bool) { return object(fr).fields[name], false },
		set: func(fr *frame, v any) { object(fr).fields[name] = v },
	}
}

func (i interp) Call(recv node, method string, args ...node) node {
	return expr(func(fr *frame) any {
		return i.p.call(recv.value(fr), method, values(fr, args))
	})
}

func (i interp) Static(fn types.Func, typeArgs []types.Descriptor, args ...node) node {
	if fn.Pkg != types.RuntimePackage {
		fault("unknown function %s", fn)
	}
	return expr(func(fr *frame) any {
		return i.static(fn.Name, typeArgs, values(fr, args))
	})
}

// static runs the runtime functions generated code calls.
func (i interp) static(name string, typeArgs []types.Descriptor, args []any) any {
	switch name {
	case "NewTraceMap":
		return facet.NewTraceMap()
	case "NewWriter":
		return facet.NewWriter()
	case "NewBuilderState":
		return facet.NewBuilderState(args[0].(string))
	case "Detached":
		return facet.Detached(args[0].(string), args[1].(string))
	case "Expect":
		want, ok := typeArgs[0].(*types.Artifact)
		if !ok {
			fault("Expect of %s", typeArgs[0])
		}
		obj, ok := args[0].(*Object)
		if !ok || !i.p.Implements(obj.Class.Name(), want.Ref.Name()) {
			panic(facet.NewReferenceError(args[1].(string), args[0]))
		}
		return obj
	}
	fault("unknown runtime function %s", name)
	return nil
}

func (i interp) New(t types.Descriptor, args ...node) node {
	return expr(func(fr *frame) any {
		switch t := t.(type) {
		case *types.Artifact:
			return i.p.construct(t.Ref.Name(), values(fr, args))
		case *types.Container:
			switch t.Multiplicity {
			case types.List:
				return facet.NewList[any]()
			case types.Set:
				return facet.NewSet[any]()
			default:
				return facet.NewBag[any]()
			}
		case *types.Named:
			if t.Pkg == types.RuntimePackage {
				return i.static("New"+t.Name, nil, values(fr, args))
			}
		}
		fault("cannot construct %s", t)
		return nil
	})
}

func (interp) Assign(target, value node) node {
	if target.set == nil {
		fault("assignment to a non-assignable expression")
	}
	return node{run: func(fr *frame) (any, bool) {
		target.set(fr, value.value(fr))
		return nil, false
	}}
}

func (interp) Return(vs ...node) node {
	return node{run: func(fr *frame) (any, bool) {
		switch len(vs) {
		case 0:
			return nil, true
		case 1:
			return vs[0].value(fr), true
		default:
			return values(fr, vs), true
		}
	}}
}

func (interp) Throw(err node) node {
	return node{run: func(fr *frame) (any, bool) {
		e, ok := err.value(fr).(error)
		if !ok {
			fault("throw of a non-error")
		}
		panic(e)
	}}
}

func (interp) String(s string) node { return expr(func(*frame) any { return s }) }

func (interp) Int(n int) node { return expr(func(*frame) any { return n }) }

func (interp) Null() node { return expr(func(*frame) any { return nil }) }

func (interp) Self() node { return expr(func(fr *frame) any { return fr.self }) }

func (interp) Binary(op ir.Op, l, r node) node {
	return expr(func(fr *frame) any {
		a := l.value(fr)
		switch op {
		case ir.OpAnd:
			return a.(bool) && r.value(fr).(bool)
		case ir.OpOr:
			return a.(bool) || r.value(fr).(bool)
		}
		b := r.value(fr)
		switch op {
		case ir.OpEq:
			return same(a, b)
		case ir.OpNe:
			return !same(a, b)
		case ir.OpLt:
			return a.(int) < b.(int)
		case ir.OpAdd:
			if s, ok := a.(string); ok {
				return s + b.(string)
			}
			return a.(int) + b.(int)
		}
		fault("unknown operator %s", op)
		return nil
	})
}

func (interp) If(cond, then node, els ...node) node {
	return node{run: func(fr *frame) (any, bool) {
		c, ok := cond.value(fr).(bool)
		if !ok {
			fault("non-boolean condition")
		}
		if c {
			return then.run(fr)
		}
		for _, e := range els {
			if v, ok := e.run(fr); ok {
				return v, true
			}
		}
		return nil, false
	}}
}

func (interp) ForEach(name string, seq, body node) node {
	return node{run: func(fr *frame) (any, bool) {
		rv := reflect.ValueOf(seq.value(fr))
		if rv.Kind() != reflect.Slice {
			fault("range over %s", rv.Kind())
		}
		for j := 0; j < rv.Len(); j++ {
			fr.locals[name] = rv.Index(j).Interface()
			if v, ok := body.run(fr); ok {
				return v, true
			}
		}
		return nil, false
	}}
}

func (interp) Declare(name string, value node) node {
	return node{run: func(fr *frame) (any, bool) {
		fr.locals[name] = value.value(fr)
		return nil, false
	}}
}

func (interp) Var(name string) node {
	return node{
		run: func(fr *frame) (any, bool) {
			v, ok := fr.locals[name]
			if !ok {
				fault("undefined variable %s", name)
			}
			return v, false
		},
		set: func(fr *frame, v any) { fr.locals[name] = v },
	}
}

// same compares by identity for objects and by value otherwise. A nil
// runtime pointer equals nil.
func same(a, b any) bool {
	if a == nil || b == nil {
		return isNil(a) && isNil(b)
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
