package collection

import (
	"iter"

	"github.com/emirpasic/gods/lists/arraylist"
)

var _ List[any] = (*ArrayList[any])(nil)

// ArrayList is a resizable List that keeps insertion order and allows duplicates.
type ArrayList[E any] struct {
	list *arraylist.List
}

func NewArrayList[E any](values ...E) *ArrayList[E] {
	return &ArrayList[E]{list: arraylist.New(toAny(values)...)}
}

// Add appends e; a list always changes.
func (l *ArrayList[E]) Add(e E) bool {
	l.list.Add(e)
	return true
}

func (l *ArrayList[E]) AddAll(es ...E) bool {
	l.list.Add(toAny(es)...)
	return len(es) > 0
}

// Remove removes the first occurrence of e.
func (l *ArrayList[E]) Remove(e E) bool {
	index := l.list.IndexOf(e)
	if index < 0 {
		return false
	}
	l.list.Remove(index)
	return true
}

func (l *ArrayList[E]) Contains(e E) bool {
	return l.list.Contains(e)
}

func (l *ArrayList[E]) Get(index int) (E, bool) {
	v, ok := l.list.Get(index)
	if !ok {
		var zero E
		return zero, false
	}
	return cast[E](v), true
}

func (l *ArrayList[E]) IndexOf(e E) int {
	return l.list.IndexOf(e)
}

func (l *ArrayList[E]) Len() int {
	return l.list.Size()
}

func (l *ArrayList[E]) IsEmpty() bool {
	return l.list.Empty()
}

func (l *ArrayList[E]) Clear() {
	l.list.Clear()
}

func (l *ArrayList[E]) Values() []E {
	values := l.list.Values()
	out := make([]E, len(values))
	for i, v := range values {
		out[i] = cast[E](v)
	}
	return out
}

func (l *ArrayList[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		it := l.list.Iterator()
		for it.Next() {
			if !yield(cast[E](it.Value())) {
				return
			}
		}
	}
}
