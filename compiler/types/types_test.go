package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/facet/compiler/types"
)

type ref struct {
	name   string
	isType bool
}

func (r *ref) Name() string   { return r.name }
func (r *ref) Path() string   { return "" }
func (r *ref) IsStruct() bool { return r.isType }

func TestParse(t *testing.T) {
	imports := map[string]string{"geo": "example.com/geo"}
	tests := []struct {
		expr string
		want string
	}{
		{"int", "int"},
		{"Point", "Point"},
		{"*Point", "*Point"},
		{"[]string", "[]string"},
		{"map[string][]Point", "map[string][]Point"},
		{"geo.Pair[int, Point]", "geo.Pair[int, Point]"},
		{"time.Duration", "time.Duration"},
		{"interface{}", "any"},
		{"(int)", "int"},
		{"Box[map[string]*Point]", "Box[map[string]*Point]"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			d, err := types.Parse(tt.expr, imports)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}

	t.Run("import resolution", func(t *testing.T) {
		d, err := types.Parse("geo.Coord", imports)
		require.NoError(t, err)
		named, ok := d.(*types.Named)
		require.True(t, ok)
		assert.Equal(t, "example.com/geo", named.Pkg)
		assert.Equal(t, "Coord", named.Name)
	})
}

func TestParseError(t *testing.T) {
	for _, expr := range []string{"[3]int", "func()", "interface{ M() }", "a.b.C", "1 +", "chan int"} {
		t.Run(expr, func(t *testing.T) {
			_, err := types.Parse(expr, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), expr)
		})
	}
	assert.Panics(t, func() { types.MustParse("[", nil) })
}

func TestMultiplicity(t *testing.T) {
	assert.Equal(t, "ZERO_OR_ONE", types.ZeroOrOne.String())
	assert.Equal(t, "INVALID", types.Multiplicity(42).String())
	assert.True(t, types.Set.IsCollection())
	assert.False(t, types.ZeroOrOne.IsCollection())
	assert.Equal(t, "Bag", types.Collection.Container())
	assert.Empty(t, types.One.Container())

	text, err := types.List.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "LIST", string(text))

	m, ok := types.ParseCollection("Set")
	assert.True(t, ok)
	assert.Equal(t, types.Set, m)
	_, ok = types.ParseCollection("queue")
	assert.False(t, ok)
}

func TestContainerString(t *testing.T) {
	c := &types.Container{Multiplicity: types.Set, Elem: types.String, Variance: types.Out}
	assert.Equal(t, "Set<out string>", c.String())
	c = &types.Container{Multiplicity: types.Collection, Elem: types.Int}
	assert.Equal(t, "Collection<int>", c.String())
	c = &types.Container{Multiplicity: types.List, Elem: &types.Artifact{Ref: &ref{name: "PointView"}}, Variance: types.In}
	assert.Equal(t, "List<in PointView>", c.String())
}

func TestNilable(t *testing.T) {
	tests := []struct {
		d    types.Descriptor
		want bool
	}{
		{types.Int, false},
		{types.Any, true},
		{types.Error, true},
		{&types.Named{Name: "Point"}, false},
		{&types.Pointer{Elem: types.Int}, true},
		{&types.Slice{Elem: types.Int}, true},
		{&types.Map{Key: types.String, Elem: types.Int}, true},
		{&types.Container{Multiplicity: types.List, Elem: types.Int}, true},
		{&types.Artifact{Ref: &ref{name: "PointView"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, types.Nilable(tt.d))
		})
	}
}

func TestComparable(t *testing.T) {
	tests := []struct {
		d    types.Descriptor
		want bool
	}{
		{types.String, true},
		{&types.Named{Pkg: "time", Name: "Time"}, true},
		{&types.Pointer{Elem: &types.Slice{Elem: types.Int}}, true},
		{&types.Slice{Elem: types.Int}, false},
		{&types.Map{Key: types.String, Elem: types.Int}, false},
		{&types.Artifact{Ref: &ref{name: "PointView"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, types.Comparable(tt.d))
		})
	}
}

func TestRewrite(t *testing.T) {
	view := &ref{name: "PointView"}
	d := types.MustParse("map[string][]Point", nil)
	out := types.Rewrite(d, func(d types.Descriptor) (types.Descriptor, bool) {
		if n, ok := d.(*types.Named); ok && n.Name == "Point" {
			return &types.Artifact{Ref: view}, true
		}
		return nil, false
	})
	assert.Equal(t, "map[string][]PointView", out.String())
	assert.Equal(t, "map[string][]Point", d.String(), "input is not modified")

	var names []string
	types.Walk(d, func(d types.Descriptor) { names = append(names, d.String()) })
	assert.Equal(t, []string{"map[string][]Point", "string", "[]Point", "Point"}, names)
}

func TestEqual(t *testing.T) {
	a, b := &ref{name: "A"}, &ref{name: "A"}
	assert.True(t, types.Equal(types.MustParse("map[string][]int", nil), types.MustParse("map[string][]int", nil)))
	assert.False(t, types.Equal(types.MustParse("[]int", nil), types.MustParse("[]string", nil)))
	assert.True(t, types.Equal(&types.Artifact{Ref: a}, &types.Artifact{Ref: a}))
	assert.False(t, types.Equal(&types.Artifact{Ref: a}, &types.Artifact{Ref: b}))
	assert.False(t, types.Equal(
		&types.Container{Multiplicity: types.List, Elem: types.Int, Variance: types.Out},
		&types.Container{Multiplicity: types.List, Elem: types.Int},
	))
	assert.True(t, types.Equal(types.MustParse("geo.P[int]", nil), types.MustParse("geo.P[int]", nil)))
}

func TestFunc(t *testing.T) {
	assert.Equal(t, "facet.Expect", types.RuntimeFunc("Expect").String())
	assert.Equal(t, "helper", types.Func{Name: "helper"}.String())
	assert.Equal(t, "facet.List[int]", types.Runtime("List", types.Int).String())
}
