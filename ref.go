package facet

// Table is the key space consulted by generated proxy references.
type Table map[string]any

// Lookup returns the value stored under key, or fallback if there is none.
func (t Table) Lookup(key string, fallback any) any {
	if v, ok := t[key]; ok {
		return v
	}
	return fallback
}

// Expect asserts that v has type T. It panics with a *ReferenceError
// naming the expected entity otherwise.
func Expect[T any](v any, expected string) T {
	t, ok := v.(T)
	if !ok {
		panic(NewReferenceError(expected, v))
	}
	return t
}
