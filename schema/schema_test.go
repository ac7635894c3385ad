package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/facet/schema"
)

func TestDeclare(t *testing.T) {
	d := schema.Declare("Polygon").
		In("geo").
		Extends("Shape", "Named").
		Import("ext", "example.com/ext").
		Comment("Polygon is a closed shape.").
		Annotate("table", "polygons").
		Accessors(
			schema.Get("Points", "Point").List(),
			schema.Get("Origin", "Point").Reference().Optional(),
			schema.Is("Closed"),
			schema.Has("Holes").Skip(),
			schema.Method("Area", "float64").Params("int"),
		).
		Declaration()

	assert.Equal(t, "Polygon", d.Name)
	assert.Equal(t, "geo", d.Namespace)
	assert.Equal(t, []string{"Shape", "Named"}, d.Supertypes)
	assert.Equal(t, map[string]string{"ext": "example.com/ext"}, d.Imports)
	assert.Equal(t, "Polygon is a closed shape.", d.Comment)
	assert.Equal(t, "polygons", d.Metadata["table"])
	require.Len(t, d.Accessors, 5)

	points := d.Accessor("GetPoints")
	require.NotNil(t, points)
	assert.Equal(t, schema.KindList, points.Collection)
	assert.Equal(t, "Point", points.Result)

	origin := d.Accessor("GetOrigin")
	assert.True(t, origin.Reference)
	assert.True(t, origin.Optional)

	closed := d.Accessor("IsClosed")
	assert.Equal(t, "bool", closed.Result)

	holes := d.Accessor("HasHoles")
	assert.True(t, holes.Skip)

	area := d.Accessor("Area")
	assert.Equal(t, 1, area.Arity())
	assert.Nil(t, d.Accessor("Missing"))
}

func TestAccessorCollections(t *testing.T) {
	tests := []struct {
		name string
		b    *schema.AccessorBuilder
		want string
	}{
		{"list", schema.Get("A", "int").List(), schema.KindList},
		{"set", schema.Get("A", "int").Set(), schema.KindSet},
		{"collection", schema.Get("A", "int").Collection(), schema.KindCollection},
		{"single", schema.Get("A", "int"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.b.Descriptor().Collection)
		})
	}
}

func TestAccessorIsVoid(t *testing.T) {
	assert.True(t, schema.Method("Run", "").Descriptor().IsVoid())
	assert.True(t, schema.Method("Run", schema.Void).Descriptor().IsVoid())
	assert.False(t, schema.Get("X", "int").Descriptor().IsVoid())
}

func TestDeclarationClone(t *testing.T) {
	orig := schema.Declare("Point").
		Extends("Shape").
		Annotate("k", "v").
		Accessors(schema.Get("X", "int").Annotate("a", 1)).
		Declaration()
	c := orig.Clone()
	c.Supertypes[0] = "Other"
	c.Accessors[0].Name = "GetY"
	c.Accessors[0].Metadata["a"] = 2
	c.Metadata["k"] = "w"

	assert.Equal(t, "Shape", orig.Supertypes[0])
	assert.Equal(t, "GetX", orig.Accessors[0].Name)
	assert.Equal(t, 1, orig.Accessors[0].Metadata["a"])
	assert.Equal(t, "v", orig.Metadata["k"])
}

func TestDeclarations(t *testing.T) {
	decls := schema.Declarations(schema.Declare("A"), schema.Declare("B"))
	require.Len(t, decls, 2)
	assert.Equal(t, "A", decls[0].Name)
	assert.Equal(t, "B", decls[1].Name)
}
