package facet_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/facet"
)

type named struct{ name string }

func (n *named) String() string { return n.name }

func TestCycleError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := facet.NewCycleError(&named{name: "Point#1"})
		assert.Equal(t, "facet: cycle detected: instance Point#1 was already visited", err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := facet.NewCycleError(1)
		assert.True(t, errors.Is(err, facet.ErrCycle))
	})

	t.Run("IsCycle", func(t *testing.T) {
		err := facet.NewCycleError("x")
		assert.True(t, facet.IsCycle(err))
		assert.True(t, facet.IsCycle(fmt.Errorf("wrapper: %w", err)))
		assert.True(t, facet.IsCycle(facet.ErrCycle))
		assert.False(t, facet.IsCycle(errors.New("other error")))
		assert.False(t, facet.IsCycle(nil))
	})

	t.Run("Instance", func(t *testing.T) {
		n := &named{name: "n"}
		assert.Same(t, n, facet.NewCycleError(n).Instance())
	})
}

func TestReferenceError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		assert.Equal(t, "facet: reference resolved to int, expected Point", facet.NewReferenceError("Point", 1).Error())
		assert.Equal(t, "facet: reference resolved to nil, expected Point", facet.NewReferenceError("Point", nil).Error())
	})

	t.Run("IsReferenceError", func(t *testing.T) {
		err := facet.NewReferenceError("Point", "x")
		assert.True(t, errors.Is(err, facet.ErrReference))
		assert.True(t, facet.IsReferenceError(fmt.Errorf("wrapper: %w", err)))
		assert.False(t, facet.IsReferenceError(nil))
	})
}

func TestBuilderStateError(t *testing.T) {
	err := &facet.BuilderStateError{Builder: "PointRecordBuilder", Op: "Close", Phase: facet.Closed}
	assert.Equal(t, "facet: PointRecordBuilder.Close called while closed", err.Error())
	assert.True(t, facet.IsBuilderState(err))
	assert.False(t, facet.IsBuilderState(errors.New("other")))
}

func TestDetachedError(t *testing.T) {
	err := facet.Detached("PolygonBuilderBase", "AddPoint")
	assert.Equal(t, "facet: PolygonBuilderBase.AddPoint requires a delegate", err.Error())
	assert.True(t, facet.IsDetached(err))
	assert.True(t, errors.Is(err, facet.ErrDetached))
}

func TestGuard(t *testing.T) {
	t.Run("value", func(t *testing.T) {
		v, err := facet.Guard(func() int { return 42 })
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("error panic", func(t *testing.T) {
		v, err := facet.Guard(func() string {
			panic(facet.NewCycleError("x"))
		})
		require.Error(t, err)
		assert.True(t, facet.IsCycle(err))
		assert.Empty(t, v)
	})

	t.Run("runtime faults are re-raised", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = facet.Guard(func() int {
				var m map[string]int
				m["x"] = 1
				return 0
			})
		})
	})

	t.Run("non-error panics are re-raised", func(t *testing.T) {
		assert.PanicsWithValue(t, "boom", func() {
			_, _ = facet.Guard(func() int { panic("boom") })
		})
	})
}
