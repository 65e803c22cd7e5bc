package mockcoll

import (
	"fmt"
	"reflect"

	"github.com/junioryono/mockcoll/collection"
)

// FieldRetriever finds the fields of a struct type carrying a marker.
//
// Implementations must include fields promoted from embedded structs. The
// order of the returned fields is authoritative: resolution and
// initialisation keep it and never re-sort.
type FieldRetriever interface {
	AnnotatedFields(t reflect.Type, m Marker) ([]Field, error)
}

// TypeResolver resolves the element type of a collection field.
type TypeResolver interface {
	CollectionFieldType(f Field) (reflect.Type, error)
}

// MockStrategy produces a test double of a given type.
type MockStrategy interface {
	CreateMock(t reflect.Type) (any, error)
}

// elementTypeResolver resolves element types from slice element types and
// from the Add and Values methods of collection interfaces.
type elementTypeResolver struct{}

// NewTypeResolver returns the default TypeResolver.
func NewTypeResolver() TypeResolver {
	return elementTypeResolver{}
}

func (elementTypeResolver) CollectionFieldType(f Field) (reflect.Type, error) {
	elem, ok := collection.ElementType(f.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no element type", ErrNotACollection, f.Type)
	}
	return elem, nil
}
