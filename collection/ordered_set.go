package collection

import (
	"iter"

	"github.com/emirpasic/gods/sets/linkedhashset"
)

var _ Set[any] = (*OrderedSet[any])(nil)

// OrderedSet is a duplicate-free set that iterates in insertion order.
// Re-adding an element that is already present does not move it.
//
// Elements are used as map keys, so their dynamic types must be comparable.
type OrderedSet[E any] struct {
	set *linkedhashset.Set
}

// NewOrderedSet creates an OrderedSet holding values in order, duplicates dropped.
func NewOrderedSet[E any](values ...E) *OrderedSet[E] {
	s := &OrderedSet[E]{set: linkedhashset.New()}
	s.AddAll(values...)
	return s
}

func (s *OrderedSet[E]) Add(e E) bool {
	if s.set.Contains(e) {
		return false
	}
	s.set.Add(e)
	return true
}

func (s *OrderedSet[E]) AddAll(es ...E) bool {
	changed := false
	for _, e := range es {
		if s.Add(e) {
			changed = true
		}
	}
	return changed
}

func (s *OrderedSet[E]) Remove(e E) bool {
	if !s.set.Contains(e) {
		return false
	}
	s.set.Remove(e)
	return true
}

func (s *OrderedSet[E]) Contains(e E) bool {
	return s.set.Contains(e)
}

func (s *OrderedSet[E]) ContainsAll(es ...E) bool {
	return s.set.Contains(toAny(es)...)
}

// RetainAll removes every element not in es.
func (s *OrderedSet[E]) RetainAll(es ...E) bool {
	keep := linkedhashset.New(toAny(es)...)
	changed := false
	for _, v := range s.set.Values() {
		if !keep.Contains(v) {
			s.set.Remove(v)
			changed = true
		}
	}
	return changed
}

func (s *OrderedSet[E]) RemoveAll(es ...E) bool {
	changed := false
	for _, e := range es {
		if s.Remove(e) {
			changed = true
		}
	}
	return changed
}

func (s *OrderedSet[E]) Len() int {
	return s.set.Size()
}

func (s *OrderedSet[E]) IsEmpty() bool {
	return s.set.Empty()
}

func (s *OrderedSet[E]) Clear() {
	s.set.Clear()
}

func (s *OrderedSet[E]) Values() []E {
	values := s.set.Values()
	out := make([]E, len(values))
	for i, v := range values {
		out[i] = cast[E](v)
	}
	return out
}

func (s *OrderedSet[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		it := s.set.Iterator()
		for it.Next() {
			if !yield(cast[E](it.Value())) {
				return
			}
		}
	}
}

// Equal ignores order: two sets are equal when they hold the same elements.
func (s *OrderedSet[E]) Equal(other Set[E]) bool {
	if other == nil {
		return false
	}
	if s.Len() != other.Len() {
		return false
	}
	return s.ContainsAll(other.Values()...)
}
