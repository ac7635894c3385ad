package emit

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/facet/compiler/gen"
	"github.com/syssam/facet/compiler/gen/process"
	"github.com/syssam/facet/compiler/ir"
	"github.com/syssam/facet/compiler/types"
	"github.com/syssam/facet/graph"
	"github.com/syssam/facet/schema"
)

type ref struct {
	name, path string
	isStruct   bool
}

func (r ref) Name() string   { return r.name }
func (r ref) Path() string   { return r.path }
func (r ref) IsStruct() bool { return r.isStruct }

func TestType(t *testing.T) {
	view := &types.Artifact{Ref: ref{name: "PointView", path: "example.com/geo"}}
	data := &types.Artifact{Ref: ref{name: "PointData", path: "example.com/geo", isStruct: true}}
	tests := []struct {
		name string
		d    types.Descriptor
		want string
	}{
		{"basic", types.String, "string"},
		{"pointer", &types.Pointer{Elem: types.Int}, "*int"},
		{"slice", &types.Slice{Elem: types.String}, "[]string"},
		{"map", &types.Map{Key: types.String, Elem: &types.Slice{Elem: types.Int}}, "map[string][]int"},
		{"named", &types.Named{Pkg: "time", Name: "Time"}, "time.Time"},
		{"generic", &types.Named{Pkg: "example.com/pair", Name: "Pair", Args: []types.Descriptor{types.Int, types.String}}, "pair.Pair[int, string]"},
		{"seq", &types.Container{Multiplicity: types.Set, Elem: types.String, Variance: types.Out}, "facet.Seq[string]"},
		{"sink", &types.Container{Multiplicity: types.List, Elem: types.Int, Variance: types.In}, "facet.Sink[int]"},
		{"bag", &types.Container{Multiplicity: types.Collection, Elem: types.Int}, "*facet.Bag[int]"},
		{"interface artifact", view, "geo.PointView"},
		{"struct artifact", data, "*geo.PointData"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Type(tt.d).GoString())
		})
	}
}

func render(t *testing.T, c ir.Code) string {
	t.Helper()
	stmts := GoFactory{Receiver: "p"}.Eval(c)
	return jen.Func().Id("f").Params().Block(stmts...).GoString()
}

func TestGoFactory(t *testing.T) {
	data := &types.Artifact{Ref: ref{name: "PointData", isStruct: true}}
	tests := []struct {
		name string
		code ir.Code
		want []string
	}{
		{
			"assign and return",
			ir.Block(ir.Assign(ir.Field(ir.Self(), "x"), ir.Var("v")), ir.Return(ir.Self())),
			[]string{"p.x = v", "return p"},
		},
		{
			"nested blocks are flattened",
			ir.Block(ir.Block(ir.Stmt(ir.CallSelf("a")), ir.Block()), ir.Stmt(ir.CallSelf("b", ir.Int(1), ir.Str("s")))),
			[]string{"p.a()\n\tp.b(1, \"s\")"},
		},
		{
			"if else",
			ir.If(ir.IsNull(ir.Var("in")), ir.Return(ir.Null()), ir.Return(ir.Var("in"))),
			[]string{"if in == nil {", "return nil", "} else {", "return in"},
		},
		{
			"for each",
			ir.ForEach("item", ir.Call(ir.Var("value"), "Items"), ir.Stmt(ir.Call(ir.Var("out"), "Add", ir.Var("item")))),
			[]string{"for _, item := range value.Items() {", "out.Add(item)"},
		},
		{
			"declare and construct",
			ir.Declare("sub", ir.New(data)),
			[]string{"sub := NewPointData()"},
		},
		{
			"container",
			ir.Declare("tags", ir.New(&types.Container{Multiplicity: types.Set, Elem: types.String})),
			[]string{"tags := facet.NewSet[string]()"},
		},
		{
			"static with type arguments",
			ir.Return(ir.Static(types.RuntimeFunc("Expect"), []types.Descriptor{types.Int}, ir.Var("v"), ir.Str("Point"))),
			[]string{`return facet.Expect[int](v, "Point")`},
		},
		{
			"throw",
			ir.Throw(ir.Static(types.RuntimeFunc("Detached"), nil, ir.Str("B"), ir.Str("M"))),
			[]string{`panic(facet.Detached("B", "M"))`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := render(t, tt.code)
			for _, want := range tt.want {
				assert.Contains(t, code, want)
			}
		})
	}
}

func generated(t *testing.T) (*gen.Context, []*File) {
	t.Helper()
	g, err := graph.Build(schema.Declarations(
		schema.Declare("Point").Accessors(schema.Get("X", "int"), schema.Get("Y", "int")),
		schema.Declare("Shape").Accessors(
			schema.Get("Name", "string"),
			schema.Get("Tags", "string").Set(),
		),
		schema.Declare("Polygon").Extends("Shape").Accessors(
			schema.Get("Points", "Point").List(),
			schema.Get("Origin", "Point").Reference().Optional(),
		),
		schema.Declare("Pin").In("geo").Accessors(schema.Get("Label", "string")),
	))
	require.NoError(t, err)
	ctx := gen.NewContext(g, gen.MustNewConfig(gen.WithPackage("example.com/model")))
	require.NoError(t, gen.Run(ctx, gen.Generators(gen.AllKinds()...)...))
	_, err = process.Generate(ctx, process.DeepCopy{}, process.Dump{})
	require.NoError(t, err)
	files, err := Files(ctx.Config, ctx.Artifacts())
	require.NoError(t, err)
	return ctx, files
}

func file(t *testing.T, files []*File, p string) string {
	t.Helper()
	for _, f := range files {
		if f.Path() == p {
			return string(f.Body)
		}
	}
	require.Failf(t, "missing file", p)
	return ""
}

func TestFiles(t *testing.T) {
	_, files := generated(t)
	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path())
	}
	assert.Equal(t, []string{
		"deep_copier.go", "dumper.go", "geo/pin.go", "point.go", "polygon.go", "shape.go",
	}, paths)

	point := file(t, files, "point.go")
	for _, want := range []string{
		"// Code generated by facet, DO NOT EDIT.",
		"package model",
		"type PointView interface {",
		"type PointRecord interface {",
		"func (p *PointData) SetX(v int) PointRecord {",
		"var _ PointRecord = (*PointData)(nil)",
		"func NewPointData() *PointData {",
		"func NewPointProxyRef(table facet.Table, key string, fallback any) *PointProxyRef {",
		"return facet.Expect[PointView](p.value, \"Point\")",
		"facet.NewBuilderState(\"PointRecordBuilder\")",
		"func (p *PointRecordBuilder) Open(x int, y int) {",
	} {
		assert.Contains(t, point, want)
	}

	polygon := file(t, files, "polygon.go")
	for _, want := range []string{
		"ShapeView",
		"Points() facet.Seq[PointView]",
		"points *facet.List[PointView]",
		"func (p *PolygonData) AddAllPoints(items ...PointView) PolygonRecord {",
		"for _, item := range items {",
		"panic(facet.Detached(\"PolygonBuilderBase\", \"AddPoint\"))",
		"sub := NewPointData()",
		"return NewPointRecordBuilder(sub)",
	} {
		assert.Contains(t, polygon, want)
	}

	pin := file(t, files, "geo/pin.go")
	assert.Contains(t, pin, "package geo")
	assert.Contains(t, pin, "func (p *PinData) Label() string {")

	copier := file(t, files, "deep_copier.go")
	for _, want := range []string{
		"type DeepCopier struct {",
		"func (d *DeepCopier) Point(in PointView) (*PointData, error) {",
		"return facet.Guard(func() *PointData {",
		"d.trace.Record(in, out)",
		"return NewPointLiteralRef(v.Resolve())",
		"func (d *DeepCopier) processPin(in geo.PinView) *geo.PinData {",
		"out := geo.NewPinData()",
	} {
		assert.Contains(t, copier, want)
	}
}

func TestText(t *testing.T) {
	ctx, _ := generated(t)
	point := ctx.Graph.Entity("Point")
	text := Text(ctx.Slot(gen.KindData, point).Artifact())
	assert.True(t, strings.HasPrefix(text, "// PointData holds the data of a Point record.\nstruct PointData : PointRecord {\n"))
	assert.Contains(t, text, "\tx int\n\ty int\n\n")
	assert.Contains(t, text, "\tSetX(v int) PointRecord {\n\t\tthis.x = v\n\t\treturn this\n\t}\n")

	view := Text(ctx.Slot(gen.KindView, point).Artifact())
	assert.Contains(t, view, "interface PointView {\n\tX() int\n\tY() int\n}\n")

	m := &gen.Method{Name: "Point", Result: types.String, Guarded: true,
		Params: []*gen.Param{{Name: "in", Type: types.Any}}}
	assert.Equal(t, "Point(in any) (string, error)", Signature(m))
}

func TestFileSink(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(dir, nil)
	files := []*File{
		{Name: "a.go", Body: []byte("package model\nfunc A() int {return 1}\n")},
		{Namespace: "geo", Name: "b.go", Body: []byte("package geo\nfunc B() string {return \"b\"}\n")},
	}
	require.NoError(t, WriteAll(context.Background(), sink, files, 2))

	a, err := os.ReadFile(filepath.Join(dir, "a.go"))
	require.NoError(t, err)
	assert.Equal(t, "package model\n\nfunc A() int { return 1 }\n", string(a))
	_, err = os.Stat(filepath.Join(dir, "geo", "b.go"))
	require.NoError(t, err)
	assert.Equal(t, 2, sink.Metrics().FilesWritten)

	err = sink.Write("", "broken.go", []byte("package model\nfunc {"))
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "broken.go.error"))
	assert.NoError(t, statErr)
}

func TestMemorySink(t *testing.T) {
	_, files := generated(t)
	sink := NewMemorySink()
	require.NoError(t, WriteAll(context.Background(), sink, files, 0))
	assert.Len(t, sink.Paths(), len(files))
	body, ok := sink.File("geo/pin.go")
	require.True(t, ok)
	assert.Contains(t, string(body), "type PinView interface")
	_, ok = sink.File("missing.go")
	assert.False(t, ok)
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "model", PackageName("example.com/model"))
	assert.Equal(t, "my_model", PackageName("example.com/my-model"))
	assert.Equal(t, "model", PackageName(""))
}
