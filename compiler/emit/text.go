package emit

import (
	"strings"

	"github.com/syssam/facet/compiler/gen"
	"github.com/syssam/facet/compiler/ir"
)

// Text renders a as readable pseudo-code, with method bodies rendered by
// ir.Text.
//
//	struct PointData : PointRecord {
//		x int
//		y int
//
//		X() int {
//			return this.x
//		}
//	}
func Text(a *gen.Artifact) string {
	var b strings.Builder
	for _, line := range lines(a.Doc) {
		b.WriteString("// " + line + "\n")
	}
	b.WriteString(a.Form.String() + " " + a.Name)
	if len(a.Supertypes) > 0 {
		names := make([]string, len(a.Supertypes))
		for i, st := range a.Supertypes {
			names[i] = st.String()
		}
		b.WriteString(" : " + strings.Join(names, ", "))
	}
	b.WriteString(" {\n")
	for _, f := range a.Fields {
		b.WriteString("\t" + f.Name + " " + f.Type.String())
		switch {
		case f.Param:
			b.WriteString(" // param")
		case f.Init != nil:
			b.WriteString(" = " + ir.Render(f.Init))
		}
		b.WriteString("\n")
	}
	if len(a.Fields) > 0 && len(a.Methods) > 0 {
		b.WriteString("\n")
	}
	for _, m := range a.Methods {
		b.WriteString("\t" + Signature(m))
		if m.Body == nil {
			b.WriteString("\n")
			continue
		}
		b.WriteString(" {\n")
		for _, line := range strings.Split(ir.Render(m.Body), "\n") {
			if line != "" {
				b.WriteString("\t\t" + line + "\n")
			}
		}
		b.WriteString("\t}\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// Signature returns the signature of m, such as
// "AddAllTags(items ...string) CircleRecord". Guarded methods show their
// error result.
func Signature(m *gen.Method) string {
	var b strings.Builder
	b.WriteString(m.Name + "(")
	for i, p := range m.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name + " ")
		if p.Variadic {
			b.WriteString("...")
		}
		b.WriteString(p.Type.String())
	}
	b.WriteString(")")
	switch {
	case m.Result == nil:
	case m.Guarded:
		b.WriteString(" (" + m.Result.String() + ", error)")
	default:
		b.WriteString(" " + m.Result.String())
	}
	return b.String()
}
