package collection

import (
	"fmt"
	"reflect"
)

// Shape is the kind of container requested for a field.
type Shape int

const (
	// ShapeCollection is the generic Collection interface.
	ShapeCollection Shape = iota
	ShapeSet
	ShapeSortedSet
	ShapeList
	ShapeQueue
	// ShapeOther is a type no registered family classifies.
	ShapeOther
)

func (s Shape) String() string {
	switch s {
	case ShapeCollection:
		return "Collection"
	case ShapeSet:
		return "Set"
	case ShapeSortedSet:
		return "SortedSet"
	case ShapeList:
		return "List"
	case ShapeQueue:
		return "Queue"
	case ShapeOther:
		return "Other"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ElementType returns the element type of a collection-shaped type: the
// element of a slice, or E for any type with the Add(E) bool and Values() []E
// methods of Collection. It reports false for every other type.
func ElementType(t reflect.Type) (reflect.Type, bool) {
	if t == nil {
		return nil, false
	}
	if t.Kind() == reflect.Slice {
		return t.Elem(), true
	}

	// Method types of interfaces carry no receiver.
	recv := 1
	if t.Kind() == reflect.Interface {
		recv = 0
	}

	add, ok := t.MethodByName("Add")
	if !ok || add.Type.NumIn() != recv+1 || add.Type.NumOut() != 1 || add.Type.Out(0).Kind() != reflect.Bool {
		return nil, false
	}
	elem := add.Type.In(recv)

	values, ok := t.MethodByName("Values")
	if !ok || values.Type.NumIn() != recv || values.Type.NumOut() != 1 {
		return nil, false
	}
	if out := values.Type.Out(0); out.Kind() != reflect.Slice || out.Elem() != elem {
		return nil, false
	}
	return elem, true
}
