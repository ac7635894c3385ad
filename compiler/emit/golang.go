package emit

import (
	"bytes"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/facet/compiler/gen"
	"github.com/syssam/facet/compiler/types"
)

// File is one rendered source file.
type File struct {
	// Namespace is the entity namespace, resolved by sinks to a
	// directory. Empty for the root package.
	Namespace string
	// Name is the file name, including the extension.
	Name string
	Body []byte
}

// Path returns the slash-separated path of f relative to the target.
func (f *File) Path() string {
	return path.Join(f.Namespace, f.Name)
}

// Files groups artifacts by file and renders each group as Go source.
// Files are returned sorted by path.
func Files(cfg *gen.Config, artifacts []*gen.Artifact) ([]*File, error) {
	type group struct {
		namespace string
		pkg       string
		name      string
		artifacts []*gen.Artifact
	}
	groups := make(map[string]*group)
	for _, a := range artifacts {
		ns := namespace(a)
		key := path.Join(ns, a.File)
		g, ok := groups[key]
		if !ok {
			g = &group{namespace: ns, pkg: a.Path, name: a.File + ".go"}
			groups[key] = g
		}
		g.artifacts = append(g.artifacts, a)
	}
	files := make([]*File, 0, len(groups))
	for _, g := range groups {
		f := GoFile(g.pkg, cfg.Header, g.artifacts...)
		var buf bytes.Buffer
		if err := f.Render(&buf); err != nil {
			return nil, gen.NewGenerationError("render", "", g.name, err)
		}
		files = append(files, &File{Namespace: g.namespace, Name: g.name, Body: buf.Bytes()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path() < files[j].Path() })
	return files, nil
}

func namespace(a *gen.Artifact) string {
	if a.Entity == nil {
		return ""
	}
	return a.Entity.Namespace
}

// GoFile renders artifacts declared in the package pkg.
func GoFile(pkg, header string, artifacts ...*gen.Artifact) *jen.File {
	f := jen.NewFilePathName(pkg, PackageName(pkg))
	if header != "" {
		f.HeaderComment(header)
	}
	for _, a := range artifacts {
		Artifact(f, a)
	}
	return f
}

// PackageName returns the package name of the import path pkg.
func PackageName(pkg string) string {
	name := path.Base(pkg)
	if name == "." || name == "/" || name == "" {
		return "model"
	}
	return strings.NewReplacer("-", "_", ".", "_").Replace(name)
}

// Artifact adds the declaration of a to f.
func Artifact(f *jen.File, a *gen.Artifact) {
	comment(f, a.Doc)
	if a.Form == gen.Interface {
		var members []jen.Code
		for _, st := range a.Supertypes {
			members = append(members, Type(st))
		}
		for _, m := range a.Methods {
			for _, line := range lines(m.Doc) {
				members = append(members, jen.Comment(line))
			}
			members = append(members, jen.Id(m.Name).Params(params(m.Params)...).Add(result(m)))
		}
		f.Type().Id(a.Name).Interface(members...)
		return
	}

	fields := make([]jen.Code, len(a.Fields))
	for i, fd := range a.Fields {
		fields[i] = jen.Id(fd.Name).Add(Type(fd.Type))
	}
	f.Type().Id(a.Name).Struct(fields...)
	for _, st := range a.Supertypes {
		f.Var().Id("_").Add(Type(st)).Op("=").Parens(jen.Op("*").Id(a.Name)).Call(jen.Nil())
	}
	constructor(f, a)
	self := GoFactory{Receiver: a.Receiver}
	for _, m := range a.Methods {
		comment(f, m.Doc)
		fn := f.Func().Params(jen.Id(a.Receiver).Op("*").Id(a.Name)).Id(m.Name).Params(params(m.Params)...)
		if !m.Guarded {
			fn.Add(result(m)).Block(self.Eval(m.Body)...)
			continue
		}
		fn.Params(Type(m.Result), jen.Error()).Block(
			jen.Return(jen.Qual(types.RuntimePackage, "Guard").Call(
				jen.Func().Params().Add(Type(m.Result)).Block(self.Eval(m.Body)...),
			)),
		)
	}
}

// constructor renders NewX, taking the Param fields in order and
// initializing the others.
func constructor(f *jen.File, a *gen.Artifact) {
	var (
		ps     []jen.Code
		values = jen.Dict{}
		ctor   = GoFactory{}
	)
	for _, fd := range a.Fields {
		switch {
		case fd.Param:
			ps = append(ps, jen.Id(fd.Name).Add(Type(fd.Type)))
			values[jen.Id(fd.Name)] = jen.Id(fd.Name)
		case fd.Init != nil:
			values[jen.Id(fd.Name)] = ctor.Eval(fd.Init)[0]
		}
	}
	f.Comment(fmt.Sprintf("%s returns a new %s.", a.Constructor(), a.Name))
	f.Func().Id(a.Constructor()).Params(ps...).Op("*").Id(a.Name).Block(
		jen.Return(jen.Op("&").Id(a.Name).Values(values)),
	)
}

func params(ps []*gen.Param) []jen.Code {
	out := make([]jen.Code, len(ps))
	for i, p := range ps {
		s := jen.Id(p.Name)
		if p.Variadic {
			s.Op("...")
		}
		out[i] = s.Add(Type(p.Type))
	}
	return out
}

func result(m *gen.Method) jen.Code {
	if m.Result == nil {
		return jen.Null()
	}
	return Type(m.Result)
}

func comment(f *jen.File, doc string) {
	for _, line := range lines(doc) {
		f.Comment(line)
	}
}

func lines(doc string) []string {
	if doc == "" {
		return nil
	}
	return strings.Split(doc, "\n")
}
