package eval

import (
	"reflect"

	"github.com/syssam/facet"
)

// Equal reports whether a and b are structurally equal: objects of the
// same class with pairwise equal fields, collections with equal items in
// order, and equal plain values. Sets compare in insertion order. Cycles
// are followed once.
func Equal(a, b any) bool {
	return equal(a, b, make(map[[2]*Object]bool))
}

func equal(a, b any, visited map[[2]*Object]bool) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	switch x := a.(type) {
	case *Object:
		y, ok := b.(*Object)
		if !ok || x.Class != y.Class {
			return false
		}
		key := [2]*Object{x, y}
		if visited[key] {
			return true
		}
		visited[key] = true
		if len(x.fields) != len(y.fields) {
			return false
		}
		for name, v := range x.fields {
			w, ok := y.fields[name]
			if !ok || !equal(v, w, visited) {
				return false
			}
		}
		return true
	case *facet.TraceMap, *facet.Writer, *facet.BuilderState:
		// Bookkeeping of processors and builders.
		return reflect.TypeOf(a) == reflect.TypeOf(b)
	}
	xs, xok := items(a)
	ys, yok := items(b)
	if xok || yok {
		if !xok || !yok || reflect.TypeOf(a) != reflect.TypeOf(b) || len(xs) != len(ys) {
			return false
		}
		for i := range xs {
			if !equal(xs[i], ys[i], visited) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// items returns the elements of a runtime collection.
func items(v any) ([]any, bool) {
	switch c := v.(type) {
	case *facet.List[any]:
		return c.Items(), true
	case *facet.Set[any]:
		return c.Items(), true
	case *facet.Bag[any]:
		return c.Items(), true
	case []any:
		return c, true
	}
	return nil, false
}
