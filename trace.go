package facet

import (
	"fmt"
	"reflect"
)

// TraceMap records input → output instance pairs during a recursive
// graph copy. Recording the same input twice raises a CycleError.
type TraceMap struct {
	seen  map[any]any
	order []any
}

// NewTraceMap returns an empty trace map.
func NewTraceMap() *TraceMap {
	return &TraceMap{seen: make(map[any]any)}
}

// Record stores the (in, out) pair. It panics with a *CycleError if in
// was already recorded.
func (m *TraceMap) Record(in, out any) {
	if _, ok := m.seen[in]; ok {
		panic(NewCycleError(in))
	}
	m.seen[in] = out
	m.order = append(m.order, in)
}

// Lookup returns the output recorded for in.
func (m *TraceMap) Lookup(in any) (any, bool) {
	out, ok := m.seen[in]
	return out, ok
}

// Len returns the number of recorded pairs.
func (m *TraceMap) Len() int {
	return len(m.order)
}

// Describe returns a short identity description of v used in error
// messages: its String method when it has one, otherwise its dynamic
// type and address.
func Describe(v any) string {
	switch v := v.(type) {
	case nil:
		return "<nil>"
	case fmt.Stringer:
		return v.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return fmt.Sprintf("%T(%#x)", v, rv.Pointer())
	default:
		return fmt.Sprintf("%T(%v)", v, v)
	}
}
