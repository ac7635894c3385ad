package eval

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/facet"
	"github.com/syssam/facet/compiler/gen"
	"github.com/syssam/facet/compiler/gen/process"
	"github.com/syssam/facet/graph"
	"github.com/syssam/facet/schema"
)

func declarations() []*schema.Builder {
	return []*schema.Builder{
		schema.Declare("Point").Accessors(
			schema.Get("X", "int"),
			schema.Get("Y", "int"),
		),
		schema.Declare("Shape").Accessors(
			schema.Get("Name", "string"),
			schema.Get("Tags", "string").Set(),
			schema.Get("Label", "string").Optional(),
		),
		schema.Declare("Polygon").Extends("Shape").Accessors(
			schema.Get("Points", "Point").List(),
			schema.Get("Origin", "Point").Reference().Optional(),
		),
		schema.Declare("Node").Accessors(
			schema.Get("Name", "string"),
			schema.Get("Next", "Node").Optional(),
		),
	}
}

func program(t *testing.T) *Program {
	t.Helper()
	g, err := graph.Build(schema.Declarations(declarations()...))
	require.NoError(t, err)
	require.Empty(t, g.Diagnostics)
	ctx := gen.NewContext(g, gen.MustNewConfig(gen.WithPackage("example.com/shapes")))
	require.NoError(t, gen.Run(ctx, gen.Generators(gen.AllKinds()...)...))
	_, err = process.Generate(ctx, process.DeepCopy{}, process.Dump{})
	require.NoError(t, err)
	return New(ctx.Artifacts())
}

func construct(t *testing.T, p *Program, class string, args ...any) *Object {
	t.Helper()
	obj, err := p.New(class, args...)
	require.NoError(t, err)
	return obj
}

func call(t *testing.T, p *Program, recv any, method string, args ...any) any {
	t.Helper()
	out, err := p.Call(recv, method, args...)
	require.NoError(t, err, method)
	return out
}

func point(t *testing.T, p *Program, x, y int) *Object {
	t.Helper()
	data := construct(t, p, "PointData")
	rb := construct(t, p, "PointRecordBuilder", data)
	call(t, p, rb, "Open", x, y)
	call(t, p, rb, "Close")
	return data
}

// polygon builds a triangle without label whose origin refers to a point
// outside of it.
func polygon(t *testing.T, p *Program) (poly, origin *Object) {
	t.Helper()
	origin = point(t, p, 5, 5)
	poly = construct(t, p, "PolygonData")
	rb := construct(t, p, "PolygonRecordBuilder", poly)
	call(t, p, rb, "Open", "tri", nil)
	call(t, p, rb, "AddTag", "a")
	call(t, p, rb, "AddTag", "b")
	call(t, p, rb, "AddTag", "a")
	for _, xy := range [][2]int{{0, 0}, {1, 0}, {0, 1}} {
		sub := call(t, p, rb, "AddPoint")
		call(t, p, sub, "Open", xy[0], xy[1])
		call(t, p, sub, "Close")
	}
	call(t, p, rb, "SetOrigin", construct(t, p, "PointLiteralRef", origin))
	call(t, p, rb, "Close")
	return poly, origin
}

func TestRecordBuilderOpenClose(t *testing.T) {
	p := program(t)
	data := point(t, p, 1, 2)
	assert.Equal(t, 1, call(t, p, data, "X"))
	assert.Equal(t, 2, call(t, p, data, "Y"))
}

func TestRecordBuilderSubRecords(t *testing.T) {
	p := program(t)
	poly, origin := polygon(t, p)
	assert.Equal(t, "tri", call(t, p, poly, "Name"))
	assert.Nil(t, call(t, p, poly, "Label"))

	tags := call(t, p, call(t, p, poly, "Tags"), "Items")
	assert.Equal(t, []any{"a", "b"}, tags)

	points := call(t, p, call(t, p, poly, "Points"), "Items").([]any)
	require.Len(t, points, 3)
	assert.Equal(t, 1, call(t, p, points[1], "X"))
	assert.Equal(t, 1, call(t, p, points[2], "Y"))

	ref := call(t, p, poly, "Origin")
	assert.Same(t, origin, call(t, p, ref, "Resolve"))
}

func TestRecordBuilderState(t *testing.T) {
	p := program(t)
	tests := []struct {
		name string
		ops  []string
		op   string
	}{
		{name: "relation before open", op: "AddTag"},
		{name: "close before open", op: "Close"},
		{name: "open twice", ops: []string{"Open"}, op: "Open"},
		{name: "relation after close", ops: []string{"Open", "Close"}, op: "AddTag"},
		{name: "close twice", ops: []string{"Open", "Close"}, op: "Close"},
	}
	args := map[string][]any{"Open": {"s", nil}, "AddTag": {"t"}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := construct(t, p, "ShapeRecordBuilder", construct(t, p, "ShapeData"))
			for _, op := range tt.ops {
				call(t, p, rb, op, args[op]...)
			}
			_, err := p.Call(rb, tt.op, args[tt.op]...)
			require.Error(t, err)
			assert.True(t, facet.IsBuilderState(err))
			assert.ErrorIs(t, err, facet.ErrBuilderState)
			var stateErr *facet.BuilderStateError
			require.True(t, errors.As(err, &stateErr))
			assert.Equal(t, "ShapeRecordBuilder", stateErr.Builder)
			assert.Equal(t, tt.op, stateErr.Op)
		})
	}
}

func TestBuilderBaseWithoutDelegate(t *testing.T) {
	p := program(t)

	base := construct(t, p, "PointBuilderBase", nil)
	call(t, p, base, "Open", 1, 2)
	call(t, p, base, "Close")

	poly := construct(t, p, "PolygonBuilderBase", nil)
	// Relation calls before Open are ignored as well.
	assert.Nil(t, call(t, p, poly, "AddTag", "early"))
	assert.Nil(t, call(t, p, poly, "SetOrigin", nil))
	call(t, p, poly, "Open", "p", nil)
	call(t, p, poly, "AddTag", "x")
	call(t, p, poly, "SetOrigin", nil)

	_, err := p.Call(poly, "AddPoint")
	require.Error(t, err)
	assert.True(t, facet.IsDetached(err))
	assert.EqualError(t, err, "facet: PolygonBuilderBase.AddPoint requires a delegate")
}

func TestBuilderBaseForwards(t *testing.T) {
	p := program(t)
	data := construct(t, p, "PolygonData")
	base := construct(t, p, "PolygonBuilderBase", construct(t, p, "PolygonRecordBuilder", data))
	call(t, p, base, "Open", "square", "big")
	sub := call(t, p, base, "AddPoint")
	call(t, p, sub, "Open", 3, 4)
	call(t, p, sub, "Close")
	call(t, p, base, "Close")

	assert.Equal(t, "big", call(t, p, data, "Label"))
	points := call(t, p, call(t, p, data, "Points"), "Items").([]any)
	require.Len(t, points, 1)
	assert.Equal(t, 4, call(t, p, points[0], "Y"))
}

func TestDeepCopyIdempotent(t *testing.T) {
	p := program(t)
	poly, origin := polygon(t, p)
	copier := construct(t, p, "DeepCopier")

	first := call(t, p, copier, "Polygon", poly)
	require.IsType(t, &Object{}, first)
	assert.NotSame(t, poly, first)
	assert.True(t, Equal(poly, first))

	second := call(t, p, copier, "Polygon", first)
	assert.NotSame(t, first, second)
	assert.True(t, Equal(first, second))

	// References keep pointing at their current target.
	ref := call(t, p, second, "Origin")
	assert.Same(t, origin, call(t, p, ref, "Resolve"))

	// Copies are independent of their source.
	call(t, p, first, "AddTag", "c")
	assert.False(t, Equal(poly, first))
	assert.True(t, Equal(poly, second))
}

func TestDeepCopyNil(t *testing.T) {
	p := program(t)
	copier := construct(t, p, "DeepCopier")
	assert.Nil(t, call(t, p, copier, "Point", nil))
}

func TestDeepCopyCycle(t *testing.T) {
	p := program(t)
	a := construct(t, p, "NodeData")
	b := construct(t, p, "NodeData")
	call(t, p, a, "SetName", "a")
	call(t, p, b, "SetName", "b")
	call(t, p, a, "SetNext", b)
	call(t, p, b, "SetNext", a)

	copier := construct(t, p, "DeepCopier")
	out, err := p.Call(copier, "Node", a)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, facet.IsCycle(err))
	var cycle *facet.CycleError
	require.True(t, errors.As(err, &cycle))
	assert.Same(t, a, cycle.Instance())
	assert.Contains(t, err.Error(), a.String())

	// The trace is reset on every entry.
	call(t, p, b, "SetNext", nil)
	copied := call(t, p, copier, "Node", a)
	assert.True(t, Equal(a, copied))
}

func TestDeepCopyAliasing(t *testing.T) {
	p := program(t)
	shared := point(t, p, 1, 1)
	poly := construct(t, p, "PolygonData")
	call(t, p, poly, "SetName", "twice")
	call(t, p, poly, "AddPoint", shared)
	call(t, p, poly, "AddPoint", shared)

	_, err := p.Call(construct(t, p, "DeepCopier"), "Polygon", poly)
	assert.True(t, facet.IsCycle(err))
}

func TestDump(t *testing.T) {
	p := program(t)
	poly, _ := polygon(t, p)
	dumper := construct(t, p, "Dumper")

	want := `Polygon#1 {
  name: "tri"
  tags: [
    "a"
    "b"
  ]
  points: [
    Point#2 {
      x: 0
      y: 0
    }
    Point#3 {
      x: 1
      y: 0
    }
    Point#4 {
      x: 0
      y: 1
    }
  ]
  origin: -> Point#5
}
`
	assert.Equal(t, want, call(t, p, dumper, "Polygon", poly))
	// Identity numbers restart with every entry.
	assert.Equal(t, want, call(t, p, dumper, "Polygon", poly))
}

func TestDumpBackReference(t *testing.T) {
	p := program(t)
	a := construct(t, p, "NodeData")
	b := construct(t, p, "NodeData")
	call(t, p, a, "SetName", "a")
	call(t, p, b, "SetName", "b")
	call(t, p, a, "SetNext", b)
	call(t, p, b, "SetNext", a)

	want := `Node#1 {
  name: "a"
  next: Node#2 {
    name: "b"
    next: -> Node#1
  }
}
`
	assert.Equal(t, want, call(t, p, construct(t, p, "Dumper"), "Node", a))
}

func TestReferences(t *testing.T) {
	p := program(t)
	origin := point(t, p, 1, 2)

	t.Run("literal", func(t *testing.T) {
		ref := construct(t, p, "PointLiteralRef", origin)
		assert.Same(t, origin, call(t, p, ref, "Resolve"))
	})
	t.Run("literal of wrong type", func(t *testing.T) {
		ref := construct(t, p, "PointLiteralRef", "oops")
		_, err := p.Call(ref, "Resolve")
		require.Error(t, err)
		assert.True(t, facet.IsReferenceError(err))
		assert.EqualError(t, err, "facet: reference resolved to string, expected Point")
	})
	t.Run("literal of other entity", func(t *testing.T) {
		ref := construct(t, p, "PointLiteralRef", construct(t, p, "NodeData"))
		_, err := p.Call(ref, "Resolve")
		assert.True(t, facet.IsReferenceError(err))
	})
	t.Run("proxy", func(t *testing.T) {
		table := facet.Table{"origin": origin}
		ref := construct(t, p, "PointProxyRef", table, "origin", nil)
		assert.Same(t, origin, call(t, p, ref, "Resolve"))
	})
	t.Run("proxy fallback", func(t *testing.T) {
		ref := construct(t, p, "PointProxyRef", facet.Table{}, "missing", origin)
		assert.Same(t, origin, call(t, p, ref, "Resolve"))
	})
	t.Run("proxy missing", func(t *testing.T) {
		ref := construct(t, p, "PointProxyRef", facet.Table{}, "missing", nil)
		_, err := p.Call(ref, "Resolve")
		require.Error(t, err)
		assert.EqualError(t, err, "facet: reference resolved to nil, expected Point")
	})
}

func TestFaults(t *testing.T) {
	p := program(t)
	_, err := p.New("Nope")
	assert.EqualError(t, err, "eval: unknown class Nope")

	_, err = p.New("PointRecordBuilder")
	assert.EqualError(t, err, "eval: NewPointRecordBuilder: 0 constructor arguments, want 1")

	_, err = p.Call(point(t, p, 0, 0), "Z")
	assert.EqualError(t, err, "eval: PointData has no method Z")

	_, err = p.Call(nil, "X")
	assert.Error(t, err)
}

func TestImplements(t *testing.T) {
	p := program(t)
	assert.True(t, p.Implements("PolygonData", "PolygonView"))
	assert.True(t, p.Implements("PolygonData", "ShapeView"))
	assert.True(t, p.Implements("PolygonRecordBuilder", "PolygonBuilder"))
	assert.False(t, p.Implements("PolygonData", "PointView"))
	assert.False(t, p.Implements("Nope", "PointView"))
}
