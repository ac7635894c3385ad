// Package emit renders generated artifacts as Go source with jennifer, or
// as readable text, and writes the results to a Sink.
package emit

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/facet/compiler/ir"
	"github.com/syssam/facet/compiler/types"
)

// Node is the jennifer representation of a piece of code: a single
// expression or statement, or a flattened block of statements.
type Node struct {
	stmt    *jen.Statement
	block   []jen.Code
	isBlock bool
}

// Stmts returns the statements of n.
func (n Node) Stmts() []jen.Code {
	if n.isBlock {
		return n.block
	}
	if n.stmt == nil {
		return nil
	}
	return []jen.Code{n.stmt}
}

// Code returns n as a single jennifer code.
func (n Node) Code() jen.Code {
	if n.isBlock {
		return jen.Block(n.block...)
	}
	return n.stmt
}

func expr(s *jen.Statement) Node { return Node{stmt: s} }

func codes(ns []Node) []jen.Code {
	out := make([]jen.Code, len(ns))
	for i, n := range ns {
		out[i] = n.Code()
	}
	return out
}

// GoFactory builds jennifer nodes. Receiver names the method receiver
// that ir.Self stands for.
type GoFactory struct {
	Receiver string
}

var _ ir.Factory[Node] = GoFactory{}

// Eval evaluates c into jennifer statements.
func (g GoFactory) Eval(c ir.Code) []jen.Code {
	return ir.Eval(c, g).Stmts()
}

func (GoFactory) Block(stmts ...Node) Node {
	var out []jen.Code
	for _, s := range stmts {
		out = append(out, s.Stmts()...)
	}
	return Node{block: out, isBlock: true}
}

func (GoFactory) Stmt(e Node) Node { return e }

func (GoFactory) Field(recv Node, name string) Node {
	return expr(jen.Add(recv.Code()).Dot(name))
}

func (GoFactory) Call(recv Node, method string, args ...Node) Node {
	return expr(jen.Add(recv.Code()).Dot(method).Call(codes(args)...))
}

func (GoFactory) Static(fn types.Func, typeArgs []types.Descriptor, args ...Node) Node {
	s := qual(fn.Pkg, fn.Name)
	if len(typeArgs) > 0 {
		s = s.Types(typeList(typeArgs)...)
	}
	return expr(s.Call(codes(args)...))
}

// New calls the constructor of t: NewX for artifacts and runtime types,
// facet.NewList and friends for containers, and new(T) otherwise.
func (GoFactory) New(t types.Descriptor, args ...Node) Node {
	switch t := t.(type) {
	case *types.Artifact:
		return expr(qual(t.Ref.Path(), "New"+t.Ref.Name()).Call(codes(args)...))
	case *types.Container:
		return expr(jen.Qual(types.RuntimePackage, "New"+t.Multiplicity.Container()).Types(Type(t.Elem)).Call())
	case *types.Named:
		if t.Pkg == types.RuntimePackage {
			return expr(jen.Qual(t.Pkg, "New"+t.Name).Types(typeList(t.Args)...).Call(codes(args)...))
		}
		return expr(jen.Op("&").Add(Type(t)).Values(codes(args)...))
	default:
		return expr(jen.New(Type(t)))
	}
}

func (GoFactory) Assign(target, value Node) Node {
	return expr(jen.Add(target.Code()).Op("=").Add(value.Code()))
}

func (GoFactory) Return(values ...Node) Node {
	return expr(jen.Return(codes(values)...))
}

// Throw panics with err. Generated entry points recover it with
// facet.Guard.
func (GoFactory) Throw(err Node) Node {
	return expr(jen.Panic(err.Code()))
}

func (GoFactory) String(s string) Node { return expr(jen.Lit(s)) }

func (GoFactory) Int(i int) Node { return expr(jen.Lit(i)) }

func (GoFactory) Null() Node { return expr(jen.Nil()) }

func (g GoFactory) Self() Node { return expr(jen.Id(g.Receiver)) }

func (GoFactory) Binary(op ir.Op, l, r Node) Node {
	return expr(jen.Add(l.Code()).Op(string(op)).Add(r.Code()))
}

func (GoFactory) If(cond, then Node, els ...Node) Node {
	s := jen.If(cond.Code()).Block(then.Stmts()...)
	for _, e := range els {
		s = s.Else().Block(e.Stmts()...)
	}
	return expr(s)
}

func (GoFactory) ForEach(name string, seq, body Node) Node {
	return expr(jen.For(jen.List(jen.Id("_"), jen.Id(name)).Op(":=").Range().Add(seq.Code())).Block(body.Stmts()...))
}

func (GoFactory) Declare(name string, value Node) Node {
	return expr(jen.Id(name).Op(":=").Add(value.Code()))
}

func (GoFactory) Var(name string) Node { return expr(jen.Id(name)) }
