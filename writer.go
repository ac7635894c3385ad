package facet

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Writer renders indented nested text for the generated dump processors.
// Every instance passed to Begin or Ref gets a stable identity number so
// that shared or back-referenced instances can be recognized in the output.
type Writer struct {
	b       strings.Builder
	indent  string
	depth   int
	pending string
	ids     map[any]int
	next    int
}

// NewWriter returns an empty writer indenting with two spaces.
func NewWriter() *Writer {
	return &Writer{indent: "  ", ids: make(map[any]int)}
}

// Key sets the label of the next line.
func (w *Writer) Key(name string) *Writer {
	w.pending = name + ": "
	return w
}

// Begin opens a nested block for instance v of the given entity.
func (w *Writer) Begin(entity string, v any) *Writer {
	w.line(fmt.Sprintf("%s#%d {", entity, w.Identify(v)))
	w.depth++
	return w
}

// End closes the block opened by Begin.
func (w *Writer) End() *Writer {
	w.depth--
	w.line("}")
	return w
}

// BeginList opens a bracketed list.
func (w *Writer) BeginList() *Writer {
	w.line("[")
	w.depth++
	return w
}

// EndList closes the list opened by BeginList.
func (w *Writer) EndList() *Writer {
	w.depth--
	w.line("]")
	return w
}

// Value writes a plain value. Strings are quoted and pointers are
// dereferenced.
func (w *Writer) Value(v any) *Writer {
	w.line(format(v))
	return w
}

// Ref writes a reference to v without descending into it.
func (w *Writer) Ref(entity string, v any) *Writer {
	if isNil(v) {
		w.line("-> nil")
		return w
	}
	w.line(fmt.Sprintf("-> %s#%d", entity, w.Identify(v)))
	return w
}

// Seen reports whether v already has an identity number.
func (w *Writer) Seen(v any) bool {
	if isNil(v) {
		return false
	}
	_, ok := w.ids[v]
	return ok
}

// Identify returns the identity number of v, assigning the next one if v
// was not seen before.
func (w *Writer) Identify(v any) int {
	if id, ok := w.ids[v]; ok {
		return id
	}
	w.next++
	w.ids[v] = w.next
	return w.next
}

// String returns the text written so far.
func (w *Writer) String() string {
	return w.b.String()
}

func (w *Writer) line(s string) {
	w.b.WriteString(strings.Repeat(w.indent, max(w.depth, 0)))
	w.b.WriteString(w.pending)
	w.b.WriteString(s)
	w.b.WriteByte('\n')
	w.pending = ""
}

func format(v any) string {
	if isNil(v) {
		return "nil"
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.String {
		return strconv.Quote(rv.String())
	}
	return fmt.Sprint(rv.Interface())
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
