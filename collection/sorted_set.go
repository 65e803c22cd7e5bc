package collection

var _ SortedSet[any] = (*LinkedSortedSet[any])(nil)

// LinkedSortedSet is a SortedSet whose ordering rule is insertion rank: First
// is the earliest added element and Last the most recent one.
//
// Only whole-collection iteration is supported. Comparator, SubSet, HeadSet and
// TailSet return ErrUnsupportedOperation instead of a silently wrong view.
type LinkedSortedSet[E any] struct {
	*OrderedSet[E]
}

func NewLinkedSortedSet[E any](values ...E) *LinkedSortedSet[E] {
	return &LinkedSortedSet[E]{OrderedSet: NewOrderedSet(values...)}
}

func (s *LinkedSortedSet[E]) First() (E, bool) {
	it := s.set.Iterator()
	if !it.Next() {
		var zero E
		return zero, false
	}
	return cast[E](it.Value()), true
}

// Last walks the whole set; sets built here only ever hold a handful of doubles.
func (s *LinkedSortedSet[E]) Last() (E, bool) {
	var last E
	found := false
	for e := range s.All() {
		last = e
		found = true
	}
	return last, found
}

func (s *LinkedSortedSet[E]) Comparator() (func(a, b E) int, error) {
	return nil, ErrUnsupportedOperation
}

func (s *LinkedSortedSet[E]) SubSet(from, to E) (SortedSet[E], error) {
	return nil, ErrUnsupportedOperation
}

func (s *LinkedSortedSet[E]) HeadSet(to E) (SortedSet[E], error) {
	return nil, ErrUnsupportedOperation
}

func (s *LinkedSortedSet[E]) TailSet(from E) (SortedSet[E], error) {
	return nil, ErrUnsupportedOperation
}
