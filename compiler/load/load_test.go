package load

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/facet/schema"
)

func withoutPos(ds []*schema.Declaration) []*schema.Declaration {
	out := make([]*schema.Declaration, len(ds))
	for i, d := range ds {
		c := d.Clone()
		c.Pos = ""
		out[i] = c
	}
	return out
}

func TestYAML(t *testing.T) {
	ds, err := File("testdata/shapes.yaml")
	require.NoError(t, err)
	require.Len(t, ds, 2)

	point := ds[0]
	assert.Equal(t, "Point", point.Name)
	assert.Equal(t, "testdata/shapes.yaml:2", point.Pos)
	assert.Equal(t, "Point is a location on the plane.", point.Comment)
	require.Len(t, point.Accessors, 2)
	assert.Equal(t, &schema.Accessor{Name: "GetX", Result: "int"}, point.Accessors[0])

	poly := ds[1]
	assert.Equal(t, "testdata/shapes.yaml:8", poly.Pos)
	assert.Equal(t, "geo", poly.Namespace)
	assert.Equal(t, []string{"Shape"}, poly.Supertypes)
	assert.Equal(t, map[string]string{"time": "time"}, poly.Imports)
	origin := poly.Accessor("GetOrigin")
	require.NotNil(t, origin)
	assert.True(t, origin.Optional)
	assert.True(t, origin.Reference)
	assert.Equal(t, schema.KindList, poly.Accessor("GetPoints").Collection)
	assert.True(t, poly.Accessor("GetCreated").Skip)
}

func TestHCLMatchesYAML(t *testing.T) {
	fromYAML, err := File("testdata/shapes.yaml")
	require.NoError(t, err)
	fromHCL, err := File("testdata/shapes.hcl")
	require.NoError(t, err)
	assert.Equal(t, withoutPos(fromYAML), withoutPos(fromHCL))
	assert.Equal(t, "testdata/shapes.hcl:1", fromHCL[0].Pos)
	assert.Equal(t, "testdata/shapes.hcl:12", fromHCL[1].Pos)
}

func TestPaths(t *testing.T) {
	ds, err := Paths("testdata/mixed", "testdata/shapes.yaml")
	require.NoError(t, err)
	var names []string
	for _, d := range ds {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Shape", "Circle", "Point", "Polygon"}, names)
	assert.Equal(t, filepath.Join("testdata", "mixed", "b_circle.hcl")+":1", ds[1].Pos)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		src     string
		wantErr string
	}{
		{
			name:    "unknown yaml field",
			format:  YAML,
			src:     "declarations:\n  - name: A\n    extends: [B]\n",
			wantErr: "field extends not found",
		},
		{
			name:    "yaml without name",
			format:  YAML,
			src:     "declarations:\n  - accessors: []\n",
			wantErr: "x.yaml:2: declaration without name",
		},
		{
			name:    "empty yaml accessor",
			format:  YAML,
			src:     "declarations:\n  - name: A\n    accessors:\n      -\n",
			wantErr: "x.yaml:2: accessor 0 is empty",
		},
		{
			name:    "hcl syntax",
			format:  HCL,
			src:     "declaration \"A\" {\n",
			wantErr: "failed to parse HCL file x.hcl",
		},
		{
			name:    "hcl unknown attribute",
			format:  HCL,
			src:     "declaration \"A\" {\n  supertypes = [\"B\"]\n}\n",
			wantErr: "failed to decode HCL file x.hcl",
		},
		{
			name:    "unknown format",
			format:  Format("toml"),
			wantErr: "unknown declaration format",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bytes("x."+string(tt.format), tt.format, []byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEmptyYAML(t *testing.T) {
	ds, err := Bytes("empty.yaml", YAML, nil)
	require.NoError(t, err)
	assert.Empty(t, ds)
}

func TestFileErrors(t *testing.T) {
	_, err := File("testdata/mixed/README.md")
	assert.ErrorIs(t, err, ErrFormat)

	_, err = File(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Paths("testdata/none")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{"a.yaml": YAML, "b.YML": YAML, "c.hcl": HCL} {
		f, ok := FormatOf(path)
		assert.True(t, ok, path)
		assert.Equal(t, want, f, path)
	}
	_, ok := FormatOf("d.json")
	assert.False(t, ok)
}
