package facet

import "slices"

// Seq is the read-only (covariant) view of a collection relation.
type Seq[T any] interface {
	// Len returns the number of elements.
	Len() int
	// Items returns a snapshot of the elements.
	Items() []T
}

// Sink is the write-only (contravariant) view of a collection relation.
type Sink[T any] interface {
	Add(v T)
}

// List is an ordered collection that allows duplicates.
type List[T any] struct {
	items []T
}

// NewList returns an empty list.
func NewList[T any]() *List[T] {
	return &List[T]{}
}

// Add appends v to the list.
func (l *List[T]) Add(v T) {
	l.items = append(l.items, v)
}

// AddAll appends vs to the list.
func (l *List[T]) AddAll(vs ...T) {
	l.items = append(l.items, vs...)
}

// At returns the i-th element.
func (l *List[T]) At(i int) T {
	return l.items[i]
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Items returns a copy of the elements in insertion order.
func (l *List[T]) Items() []T {
	return slices.Clone(l.items)
}

// Set is an unordered collection without duplicates. Elements must have
// comparable dynamic types. Iteration follows insertion order so that
// generated output stays deterministic.
type Set[T any] struct {
	index map[any]struct{}
	items []T
}

// NewSet returns an empty set.
func NewSet[T any]() *Set[T] {
	return &Set[T]{index: make(map[any]struct{})}
}

// Add inserts v unless an equal element is already present.
func (s *Set[T]) Add(v T) {
	if _, ok := s.index[any(v)]; ok {
		return
	}
	s.index[any(v)] = struct{}{}
	s.items = append(s.items, v)
}

// AddAll inserts every element of vs.
func (s *Set[T]) AddAll(vs ...T) {
	for _, v := range vs {
		s.Add(v)
	}
}

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool {
	_, ok := s.index[any(v)]
	return ok
}

// Len returns the number of elements.
func (s *Set[T]) Len() int {
	return len(s.items)
}

// Items returns a copy of the elements.
func (s *Set[T]) Items() []T {
	return slices.Clone(s.items)
}

// Bag is an unordered collection that allows duplicates.
type Bag[T any] struct {
	items []T
}

// NewBag returns an empty bag.
func NewBag[T any]() *Bag[T] {
	return &Bag[T]{}
}

// Add puts v into the bag.
func (b *Bag[T]) Add(v T) {
	b.items = append(b.items, v)
}

// AddAll puts every element of vs into the bag.
func (b *Bag[T]) AddAll(vs ...T) {
	b.items = append(b.items, vs...)
}

// Len returns the number of elements.
func (b *Bag[T]) Len() int {
	return len(b.items)
}

// Items returns a copy of the elements. The order carries no meaning.
func (b *Bag[T]) Items() []T {
	return slices.Clone(b.items)
}

var (
	_ Seq[int]  = (*List[int])(nil)
	_ Sink[int] = (*List[int])(nil)
	_ Seq[int]  = (*Set[int])(nil)
	_ Sink[int] = (*Set[int])(nil)
	_ Seq[int]  = (*Bag[int])(nil)
	_ Sink[int] = (*Bag[int])(nil)
)
