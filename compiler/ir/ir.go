// Package ir is the code model method bodies are written in.
//
// A Code describes what a body does without fixing how it is rendered.
// It is evaluated against a Factory, which supplies one method per
// operation of the vocabulary and decides the representation E:
//
//	body := ir.Block(
//		ir.Assign(ir.Field(ir.Self(), "x"), ir.Var("v")),
//		ir.Return(ir.Self()),
//	)
//	text := ir.Eval(body, ir.Text{})         // readable text
//	node := ir.Eval(body, emit.GoFactory{})  // Go source via jennifer
//
// Codes hold no state: evaluating the same Code twice against the same
// factory yields equal results.
package ir

import "github.com/syssam/facet/compiler/types"

// Op is a binary operator.
type Op string

// Binary operators.
const (
	OpEq  Op = "=="
	OpNe  Op = "!="
	OpAnd Op = "&&"
	OpOr  Op = "||"
	OpAdd Op = "+"
	OpLt  Op = "<"
)

// Factory realizes the operations of the vocabulary in representation E.
type Factory[E any] interface {
	// Block groups statements.
	Block(stmts ...E) E
	// Stmt turns an expression into a statement.
	Stmt(e E) E
	// Field reads field name of recv.
	Field(recv E, name string) E
	// Call calls method on recv.
	Call(recv E, method string, args ...E) E
	// Static calls a package-level function, optionally instantiated.
	Static(fn types.Func, typeArgs []types.Descriptor, args ...E) E
	// New constructs a value of type t.
	New(t types.Descriptor, args ...E) E
	// Assign stores value into target.
	Assign(target, value E) E
	// Return returns values from the enclosing method.
	Return(values ...E) E
	// Throw aborts the enclosing method with err.
	Throw(err E) E
	// String is a string literal.
	String(s string) E
	// Int is an integer literal.
	Int(i int) E
	// Null is the absent value.
	Null() E
	// Self is the receiver of the enclosing method.
	Self() E
	// Binary applies op to l and r.
	Binary(op Op, l, r E) E
	// If runs then when cond holds, and the optional else branch otherwise.
	If(cond, then E, els ...E) E
	// ForEach runs body once per element of seq, bound to name.
	ForEach(name string, seq, body E) E
	// Declare declares the local variable name initialized with value.
	Declare(name string, value E) E
	// Var reads the local variable or parameter name.
	Var(name string) E
}

// Code is a piece of code: a function from any factory to its result.
// Build Codes with the constructors of this package and evaluate them
// with Eval.
type Code func(Factory[any]) any

// Eval evaluates c against f.
func Eval[E any](c Code, f Factory[E]) E {
	return c(Erase(f)).(E)
}

// Erase adapts f to a Factory[any].
func Erase[E any](f Factory[E]) Factory[any] {
	if f, ok := any(f).(Factory[any]); ok {
		return f
	}
	return erased[E]{f}
}

type erased[E any] struct {
	f Factory[E]
}

func cast[E any](vs []any) []E {
	out := make([]E, len(vs))
	for i, v := range vs {
		out[i] = v.(E)
	}
	return out
}

func (e erased[E]) Block(stmts ...any) any  { return e.f.Block(cast[E](stmts)...) }
func (e erased[E]) Stmt(x any) any          { return e.f.Stmt(x.(E)) }
func (e erased[E]) Field(recv any, name string) any {
	return e.f.Field(recv.(E), name)
}
func (e erased[E]) Call(recv any, method string, args ...any) any {
	return e.f.Call(recv.(E), method, cast[E](args)...)
}
func (e erased[E]) Static(fn types.Func, typeArgs []types.Descriptor, args ...any) any {
	return e.f.Static(fn, typeArgs, cast[E](args)...)
}
func (e erased[E]) New(t types.Descriptor, args ...any) any {
	return e.f.New(t, cast[E](args)...)
}
func (e erased[E]) Assign(target, value any) any { return e.f.Assign(target.(E), value.(E)) }
func (e erased[E]) Return(values ...any) any     { return e.f.Return(cast[E](values)...) }
func (e erased[E]) Throw(err any) any            { return e.f.Throw(err.(E)) }
func (e erased[E]) String(s string) any          { return e.f.String(s) }
func (e erased[E]) Int(i int) any                { return e.f.Int(i) }
func (e erased[E]) Null() any                    { return e.f.Null() }
func (e erased[E]) Self() any                    { return e.f.Self() }
func (e erased[E]) Binary(op Op, l, r any) any   { return e.f.Binary(op, l.(E), r.(E)) }
func (e erased[E]) If(cond, then any, els ...any) any {
	return e.f.If(cond.(E), then.(E), cast[E](els)...)
}
func (e erased[E]) ForEach(name string, seq, body any) any {
	return e.f.ForEach(name, seq.(E), body.(E))
}
func (e erased[E]) Declare(name string, value any) any { return e.f.Declare(name, value.(E)) }
func (e erased[E]) Var(name string) any                { return e.f.Var(name) }

func evalAll(f Factory[any], cs []Code) []any {
	out := make([]any, len(cs))
	for i, c := range cs {
		out[i] = c(f)
	}
	return out
}

// Block groups statements. Nested blocks are flattened by the backends.
func Block(stmts ...Code) Code {
	return func(f Factory[any]) any { return f.Block(evalAll(f, stmts)...) }
}

// Stmt turns an expression into a statement.
func Stmt(e Code) Code {
	return func(f Factory[any]) any { return f.Stmt(e(f)) }
}

// Field reads field name of recv.
func Field(recv Code, name string) Code {
	return func(f Factory[any]) any { return f.Field(recv(f), name) }
}

// Call calls method on recv.
func Call(recv Code, method string, args ...Code) Code {
	return func(f Factory[any]) any { return f.Call(recv(f), method, evalAll(f, args)...) }
}

// CallSelf calls method on the receiver.
func CallSelf(method string, args ...Code) Code {
	return Call(Self(), method, args...)
}

// Static calls the package-level function fn.
func Static(fn types.Func, typeArgs []types.Descriptor, args ...Code) Code {
	return func(f Factory[any]) any { return f.Static(fn, typeArgs, evalAll(f, args)...) }
}

// New constructs a value of type t.
func New(t types.Descriptor, args ...Code) Code {
	return func(f Factory[any]) any { return f.New(t, evalAll(f, args)...) }
}

// Assign stores value into target.
func Assign(target, value Code) Code {
	return func(f Factory[any]) any { return f.Assign(target(f), value(f)) }
}

// Return returns values.
func Return(values ...Code) Code {
	return func(f Factory[any]) any { return f.Return(evalAll(f, values)...) }
}

// Throw aborts with err.
func Throw(err Code) Code {
	return func(f Factory[any]) any { return f.Throw(err(f)) }
}

// Str is a string literal.
func Str(s string) Code {
	return func(f Factory[any]) any { return f.String(s) }
}

// Int is an integer literal.
func Int(i int) Code {
	return func(f Factory[any]) any { return f.Int(i) }
}

// Null is the absent value.
func Null() Code {
	return func(f Factory[any]) any { return f.Null() }
}

// Self is the method receiver.
func Self() Code {
	return func(f Factory[any]) any { return f.Self() }
}

// Binary applies op to l and r.
func Binary(op Op, l, r Code) Code {
	return func(f Factory[any]) any { return f.Binary(op, l(f), r(f)) }
}

// Eq is l == r.
func Eq(l, r Code) Code { return Binary(OpEq, l, r) }

// Ne is l != r.
func Ne(l, r Code) Code { return Binary(OpNe, l, r) }

// IsNull is c == nil.
func IsNull(c Code) Code { return Eq(c, Null()) }

// NotNull is c != nil.
func NotNull(c Code) Code { return Ne(c, Null()) }

// If runs then when cond holds, else els if given.
func If(cond, then Code, els ...Code) Code {
	return func(f Factory[any]) any { return f.If(cond(f), then(f), evalAll(f, els)...) }
}

// ForEach runs body per element of seq, bound to name.
func ForEach(name string, seq, body Code) Code {
	return func(f Factory[any]) any { return f.ForEach(name, seq(f), body(f)) }
}

// Declare declares a local variable.
func Declare(name string, value Code) Code {
	return func(f Factory[any]) any { return f.Declare(name, value(f)) }
}

// Var reads a local variable or parameter.
func Var(name string) Code {
	return func(f Factory[any]) any { return f.Var(name) }
}
