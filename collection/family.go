package collection

import (
	"fmt"
	"reflect"
)

// Family ties an element type to the interface type of every shape and knows
// how to build a populated container of each shape.
//
// Go cannot instantiate a generic type from a reflect.Type, so element types
// used with the interface shapes must be registered through FamilyOf. Slices
// need no family.
type Family struct {
	elem  reflect.Type
	types map[Shape]reflect.Type
	build func(shape Shape, contents []any) (any, error)
}

// FamilyOf returns the Family for element type E.
func FamilyOf[E any]() *Family {
	return &Family{
		elem: reflect.TypeFor[E](),
		types: map[Shape]reflect.Type{
			ShapeCollection: reflect.TypeFor[Collection[E]](),
			ShapeSet:        reflect.TypeFor[Set[E]](),
			ShapeSortedSet:  reflect.TypeFor[SortedSet[E]](),
			ShapeList:       reflect.TypeFor[List[E]](),
			ShapeQueue:      reflect.TypeFor[Queue[E]](),
		},
		build: func(shape Shape, contents []any) (any, error) {
			return populate[E](shape, contents)
		},
	}
}

// Elem returns the element type of the family.
func (f *Family) Elem() reflect.Type {
	return f.elem
}

// Type returns the interface type of shape for this element type, or nil for ShapeOther.
func (f *Family) Type(shape Shape) reflect.Type {
	return f.types[shape]
}

// Match reports which shape t is exactly, if any.
func (f *Family) Match(t reflect.Type) (Shape, bool) {
	for _, shape := range []Shape{ShapeSortedSet, ShapeSet, ShapeCollection, ShapeList, ShapeQueue} {
		if f.types[shape] == t {
			return shape, true
		}
	}
	return ShapeOther, false
}

// Probe walks the lineage of a custom interface t and returns the shape that
// backs it: SortedSet, List or Queue when t extends one of them, else Set.
func (f *Family) Probe(t reflect.Type) Shape {
	for _, shape := range []Shape{ShapeSortedSet, ShapeList, ShapeQueue} {
		if t.Implements(f.types[shape]) {
			return shape
		}
	}
	return ShapeSet
}

// Build creates a container of shape holding contents in order. The result is
// a Collection[E] of the family's element type.
func (f *Family) Build(shape Shape, contents []any) (any, error) {
	return f.build(shape, contents)
}

func populate[E any](shape Shape, contents []any) (Collection[E], error) {
	var c Collection[E]
	switch shape {
	case ShapeSortedSet:
		c = NewLinkedSortedSet[E]()
	case ShapeList:
		c = NewArrayList[E]()
	case ShapeQueue:
		c = NewConcurrentQueue[E]()
	default:
		c = NewOrderedSet[E]()
	}

	for i, v := range contents {
		e, ok := v.(E)
		if !ok && v != nil {
			return nil, fmt.Errorf("%w: element %d is %T, want %s", ErrElementMismatch, i, v, reflect.TypeFor[E]())
		}
		c.Add(e)
	}
	return c, nil
}

// Adapter makes a backing container assignable to a custom collection interface.
type Adapter struct {
	iface reflect.Type
	wrap  func(backing any) (any, error)
}

// Adapt returns the Adapter for interface C whose elements are E. wrap
// receives the backing container and must return a C that forwards to it.
func Adapt[C, E any](wrap func(Collection[E]) C) Adapter {
	return Adapter{
		iface: reflect.TypeFor[C](),
		wrap: func(backing any) (any, error) {
			c, ok := backing.(Collection[E])
			if !ok {
				return nil, fmt.Errorf("%w: backing %T is not a collection of %s", ErrElementMismatch, backing, reflect.TypeFor[E]())
			}
			return wrap(c), nil
		},
	}
}

// Interface returns the interface type the adapter produces.
func (a Adapter) Interface() reflect.Type {
	return a.iface
}

// Wrap wraps backing, a container built by a Family.
func (a Adapter) Wrap(backing any) (any, error) {
	return a.wrap(backing)
}
