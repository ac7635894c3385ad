package facet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/facet"
)

func TestCollections(t *testing.T) {
	t.Parallel()

	t.Run("list keeps order and duplicates", func(t *testing.T) {
		l := facet.NewList[string]()
		l.Add("a")
		l.AddAll("b", "a")
		assert.Equal(t, 3, l.Len())
		assert.Equal(t, []string{"a", "b", "a"}, l.Items())
		assert.Equal(t, "b", l.At(1))
	})

	t.Run("items is a snapshot", func(t *testing.T) {
		l := facet.NewList[int]()
		l.Add(1)
		items := l.Items()
		items[0] = 2
		assert.Equal(t, []int{1}, l.Items())
	})

	t.Run("set drops duplicates", func(t *testing.T) {
		s := facet.NewSet[string]()
		s.AddAll("x", "y", "x")
		assert.Equal(t, 2, s.Len())
		assert.True(t, s.Contains("y"))
		assert.False(t, s.Contains("z"))
		assert.Equal(t, []string{"x", "y"}, s.Items())
	})

	t.Run("set of pointers uses identity", func(t *testing.T) {
		a, b := &named{name: "a"}, &named{name: "a"}
		s := facet.NewSet[*named]()
		s.AddAll(a, b, a)
		assert.Equal(t, 2, s.Len())
	})

	t.Run("bag", func(t *testing.T) {
		b := facet.NewBag[int]()
		b.AddAll(1, 1)
		assert.Equal(t, 2, b.Len())
		assert.ElementsMatch(t, []int{1, 1}, b.Items())
	})
}

func TestTraceMap(t *testing.T) {
	t.Parallel()
	in1, in2 := &named{name: "in1"}, &named{name: "in2"}
	m := facet.NewTraceMap()
	m.Record(in1, "out1")
	m.Record(in2, "out2")
	assert.Equal(t, 2, m.Len())
	out, ok := m.Lookup(in1)
	require.True(t, ok)
	assert.Equal(t, "out1", out)

	assert.PanicsWithError(t, "facet: cycle detected: instance in1 was already visited", func() {
		m.Record(in1, "again")
	})
}

func TestWriter(t *testing.T) {
	t.Parallel()
	p1, p2 := &named{name: "p1"}, &named{name: "p2"}
	label := "tri"
	w := facet.NewWriter()
	w.Begin("Polygon", p1)
	w.Key("label").Value(&label)
	w.Key("sides").Value(3)
	w.Key("points").BeginList()
	w.Begin("Point", p2).Key("x").Value(1).End()
	w.EndList()
	w.Key("origin").Ref("Point", p2)
	w.Key("parent").Ref("Polygon", nil)
	w.End()

	assert.Equal(t, `Polygon#1 {
  label: "tri"
  sides: 3
  points: [
    Point#2 {
      x: 1
    }
  ]
  origin: -> Point#2
  parent: -> nil
}
`, w.String())
	assert.True(t, w.Seen(p2))
	assert.False(t, w.Seen(&named{}))
	assert.False(t, w.Seen(nil))
}

func TestBuilderState(t *testing.T) {
	t.Parallel()

	t.Run("happy path", func(t *testing.T) {
		s := facet.NewBuilderState("PointRecordBuilder")
		assert.Equal(t, facet.Unopened, s.Phase())
		s.Open()
		s.Check("AddTag")
		s.Close()
		assert.Equal(t, facet.Closed, s.Phase())
	})

	tests := []struct {
		name string
		run  func(s *facet.BuilderState)
		op   string
	}{
		{"check before open", func(s *facet.BuilderState) { s.Check("AddTag") }, "AddTag"},
		{"close before open", func(s *facet.BuilderState) { s.Close() }, "Close"},
		{"open twice", func(s *facet.BuilderState) { s.Open(); s.Open() }, "Open"},
		{"close twice", func(s *facet.BuilderState) { s.Open(); s.Close(); s.Close() }, "Close"},
		{"check after close", func(s *facet.BuilderState) { s.Open(); s.Close(); s.Check("SetX") }, "SetX"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := facet.NewBuilderState("B")
			defer func() {
				r := recover()
				require.NotNil(t, r)
				err, ok := r.(*facet.BuilderStateError)
				require.True(t, ok)
				assert.Equal(t, tt.op, err.Op)
			}()
			tt.run(s)
		})
	}
}

func TestReferences(t *testing.T) {
	t.Parallel()
	n := &named{name: "n"}
	table := facet.Table{"a": n}
	assert.Same(t, n, table.Lookup("a", nil))
	assert.Equal(t, "dflt", table.Lookup("missing", "dflt"))

	assert.Same(t, n, facet.Expect[*named](n, "Named"))
	_, err := facet.Guard(func() *named { return facet.Expect[*named](42, "Named") })
	require.Error(t, err)
	assert.True(t, facet.IsReferenceError(err))
}
