// Package collection provides the order-preserving containers that mockcoll
// builds and injects into fields of an object under test.
//
// Every container keeps the order in which elements were added, including the
// set shapes whose interfaces would not normally promise any order. This keeps
// the order of injected test doubles identical to the order they were declared
// on the test fixture.
package collection

import (
	"errors"
	"iter"
)

var (
	// ErrUnsupportedOperation is returned by the range and comparator queries of
	// a LinkedSortedSet.
	ErrUnsupportedOperation = errors.New("injected sorted set does not support this operation")

	// ErrElementMismatch is returned when a value cannot be stored in a
	// container of the requested element type.
	ErrElementMismatch = errors.New("element is not assignable to the collection element type")
)

// Collection is the shape every container produced by mockcoll satisfies.
type Collection[E any] interface {
	// Add adds e and reports whether the collection changed.
	Add(e E) bool

	// AddAll adds every element in order and reports whether the collection changed.
	AddAll(es ...E) bool

	// Remove removes e and reports whether it was present.
	Remove(e E) bool

	Contains(e E) bool
	Len() int
	IsEmpty() bool
	Clear()

	// Values returns a copy of the elements in iteration order.
	Values() []E

	// All iterates the elements in iteration order.
	All() iter.Seq[E]
}

// Set is a duplicate-free Collection.
type Set[E any] interface {
	Collection[E]

	ContainsAll(es ...E) bool
	RetainAll(es ...E) bool
	RemoveAll(es ...E) bool

	// Equal reports whether both sets hold the same elements, irrespective of order.
	Equal(other Set[E]) bool
}

// SortedSet is a Set with first and last element access.
//
// The containers mockcoll builds order elements by insertion rank, so range
// queries and the comparator are not available and return ErrUnsupportedOperation.
type SortedSet[E any] interface {
	Set[E]

	First() (E, bool)
	Last() (E, bool)
	Comparator() (func(a, b E) int, error)
	SubSet(from, to E) (SortedSet[E], error)
	HeadSet(to E) (SortedSet[E], error)
	TailSet(from E) (SortedSet[E], error)
}

// List is an indexed Collection that allows duplicates.
type List[E any] interface {
	Collection[E]

	Get(index int) (E, bool)
	IndexOf(e E) int
}

// Queue is a FIFO Collection.
type Queue[E any] interface {
	Collection[E]

	Offer(e E) bool
	Poll() (E, bool)
	Peek() (E, bool)
}

// cast converts a value held by an untyped gods container back to E. A nil
// interface value becomes the zero E.
func cast[E any](v any) E {
	e, _ := v.(E)
	return e
}

func toAny[E any](es []E) []any {
	out := make([]any, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}
