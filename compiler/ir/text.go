package ir

import (
	"strconv"
	"strings"

	"github.com/syssam/facet/compiler/types"
)

// Text renders code as readable pseudo-code. Statements are separated by
// newlines and nested bodies are indented with a tab.
type Text struct{}

var _ Factory[string] = Text{}

// Render evaluates c with the Text factory.
func Render(c Code) string {
	return Eval(c, Text{})
}

func (Text) Block(stmts ...string) string {
	lines := make([]string, 0, len(stmts))
	for _, s := range stmts {
		if s != "" {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n")
}

func (Text) Stmt(e string) string { return e }

func (Text) Field(recv, name string) string { return recv + "." + name }

func (Text) Call(recv, method string, args ...string) string {
	return recv + "." + method + "(" + strings.Join(args, ", ") + ")"
}

func (Text) Static(fn types.Func, typeArgs []types.Descriptor, args ...string) string {
	return fn.String() + typeList(typeArgs) + "(" + strings.Join(args, ", ") + ")"
}

func (Text) New(t types.Descriptor, args ...string) string {
	return "new " + t.String() + "(" + strings.Join(args, ", ") + ")"
}

func (Text) Assign(target, value string) string { return target + " = " + value }

func (Text) Return(values ...string) string {
	if len(values) == 0 {
		return "return"
	}
	return "return " + strings.Join(values, ", ")
}

func (Text) Throw(err string) string { return "throw " + err }

func (Text) String(s string) string { return strconv.Quote(s) }

func (Text) Int(i int) string { return strconv.Itoa(i) }

func (Text) Null() string { return "null" }

func (Text) Self() string { return "this" }

func (Text) Binary(op Op, l, r string) string { return l + " " + string(op) + " " + r }

func (Text) If(cond, then string, els ...string) string {
	var b strings.Builder
	b.WriteString("if " + cond + " {\n")
	b.WriteString(indent(then))
	b.WriteString("}")
	for _, e := range els {
		b.WriteString(" else {\n")
		b.WriteString(indent(e))
		b.WriteString("}")
	}
	return b.String()
}

func (Text) ForEach(name, seq, body string) string {
	return "for " + name + " in " + seq + " {\n" + indent(body) + "}"
}

func (Text) Declare(name, value string) string { return "var " + name + " = " + value }

func (Text) Var(name string) string { return name }

func indent(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		b.WriteString("\t")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func typeList(ts []types.Descriptor) string {
	if len(ts) == 0 {
		return ""
	}
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}
