package mockcoll

import (
	"reflect"
	"slices"

	"github.com/junioryono/mockcoll/collection"
)

// InjectableCollection describes a collectionOfMocks field of a fixture: the
// collection it currently holds, the shape to build for it and the type of its
// elements. It is built once per field during resolution.
type InjectableCollection struct {
	field       string
	value       any
	typ         reflect.Type
	shape       collection.Shape
	elementType reflect.Type
}

// Value returns the collection held by the field when it was resolved.
func (c *InjectableCollection) Value() any { return c.value }

// Type returns the static type of the field.
func (c *InjectableCollection) Type() reflect.Type { return c.typ }

// Shape returns the collection shape built for the field.
func (c *InjectableCollection) Shape() collection.Shape { return c.shape }

// ElementType returns the element type resolved for the field.
func (c *InjectableCollection) ElementType() reflect.Type { return c.elementType }

// Field returns the field path the collection was found on.
func (c *InjectableCollection) Field() string { return c.field }

// InjectionDetails is the immutable result of resolving a fixture: the
// objects under test, the injectable values and the injectable collections,
// each in the order the FieldRetriever reported them. None of them is ever nil.
type InjectionDetails struct {
	injectees             []any
	injectables           []any
	injectableCollections []*InjectableCollection
}

func newInjectionDetails(injectees, injectables []any, collections []*InjectableCollection) *InjectionDetails {
	if injectees == nil {
		injectees = []any{}
	}
	if injectables == nil {
		injectables = []any{}
	}
	if collections == nil {
		collections = []*InjectableCollection{}
	}
	return &InjectionDetails{
		injectees:             injectees,
		injectables:           injectables,
		injectableCollections: collections,
	}
}

// Injectees returns the objects into which collections are injected.
func (d *InjectionDetails) Injectees() []any {
	return slices.Clone(d.injectees)
}

// Injectables returns the values that may be injected into collections.
func (d *InjectionDetails) Injectables() []any {
	return slices.Clone(d.injectables)
}

// InjectableCollections returns the collectionOfMocks descriptors.
func (d *InjectionDetails) InjectableCollections() []*InjectableCollection {
	return slices.Clone(d.injectableCollections)
}
