package mockcoll

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/junioryono/mockcoll/collection"
	"github.com/junioryono/mockcoll/internal/reflection"
)

// ShapeClassifier reports the collection shape built for a field type.
type ShapeClassifier interface {
	ShapeOf(t reflect.Type) collection.Shape
}

// DetailsFactory resolves a fixture into InjectionDetails.
type DetailsFactory struct {
	retriever FieldRetriever
	types     TypeResolver
	shapes    ShapeClassifier
	logger    *zap.Logger
}

// NewDetailsFactory creates a DetailsFactory. shapes may be nil, in which
// case every collection is described as a List when it is a slice and Other
// otherwise.
func NewDetailsFactory(retriever FieldRetriever, types TypeResolver, shapes ShapeClassifier, logger *zap.Logger) *DetailsFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	if shapes == nil {
		shapes = NewCollectionFactory(logger)
	}
	return &DetailsFactory{
		retriever: retriever,
		types:     types,
		shapes:    shapes,
		logger:    logger,
	}
}

// CreateInjectionDetails reads the injectees, injectables and injectable
// collections of target, which must be a non-nil pointer to a struct.
//
// Injectees are the values of injectCollections and injectMocks fields,
// injectables those of injectable and mock fields. Fields also marked with
// the matching ignore marker are left out, as are nil values and fields behind
// a nil embedded pointer. Each value is reported once, in the order the
// FieldRetriever returned its first field. A collectionOfMocks field behind a
// nil embedded pointer is an error.
func (f *DetailsFactory) CreateInjectionDetails(target any) (*InjectionDetails, error) {
	root, err := reflection.StructValue(target)
	if err != nil {
		return nil, newError("resolve", "", reflect.TypeOf(target), err)
	}

	injectees, err := collectValues(f.retriever, root, f.logger, IgnoreInjectee, InjectCollections, InjectMocks)
	if err != nil {
		return nil, err
	}
	injectables, err := collectValues(f.retriever, root, f.logger, IgnoreInjectable, Injectable, Mock)
	if err != nil {
		return nil, err
	}
	collections, err := f.injectableCollections(root)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("resolved injection details",
		zap.String("fixture", reflection.FormatType(root.Type())),
		zap.Int("injectees", len(injectees)),
		zap.Int("injectables", len(injectables)),
		zap.Int("collections", len(collections)),
	)
	return newInjectionDetails(injectees, injectables, collections), nil
}

func (f *DetailsFactory) injectableCollections(root reflect.Value) ([]*InjectableCollection, error) {
	fields, err := f.retriever.AnnotatedFields(root.Type(), CollectionOfMocks)
	if err != nil {
		return nil, newError("resolve", "", root.Type(), err)
	}

	out := make([]*InjectableCollection, 0, len(fields))
	for _, field := range fields {
		if _, ok := collection.ElementType(field.Type); !ok {
			return nil, newError("resolve", field.Name, field.Type,
				fmt.Errorf("%w: collectionOfMocks field %s has type %s", ErrNotACollection, field.Name, reflection.FormatType(field.Type)))
		}
		elem, err := f.types.CollectionFieldType(field)
		if err != nil {
			return nil, newError("resolve", field.Name, field.Type, err)
		}
		v, err := field.Value(root)
		if err != nil {
			return nil, newError("resolve", field.Name, field.Type, err)
		}
		value, err := interfaceOf(field, v)
		if err != nil {
			return nil, err
		}
		out = append(out, &InjectableCollection{
			field:       field.Name,
			value:       value,
			typ:         field.Type,
			shape:       f.shapes.ShapeOf(field.Type),
			elementType: elem,
		})
	}
	return out, nil
}

// collectValues returns the values of the fields carrying any of include but
// not ignore, each value once. Fields are deduplicated by path, values by
// equality when comparable, and retriever order is kept. Fields behind a nil
// embedded pointer are skipped.
func collectValues(retriever FieldRetriever, root reflect.Value, logger *zap.Logger, ignore Marker, include ...Marker) ([]any, error) {
	t := root.Type()

	ignored, err := retriever.AnnotatedFields(t, ignore)
	if err != nil {
		return nil, newError("resolve", "", t, err)
	}
	seen := make(map[string]bool, len(ignored))
	for _, field := range ignored {
		seen[field.Name] = true
	}

	var out []any
	values := collection.NewOrderedSet[any]()
	for _, m := range include {
		fields, err := retriever.AnnotatedFields(t, m)
		if err != nil {
			return nil, newError("resolve", "", t, err)
		}
		for _, field := range fields {
			if seen[field.Name] {
				continue
			}
			seen[field.Name] = true

			v, err := field.Value(root)
			if err != nil {
				logger.Debug("skipping field behind nil embedded pointer",
					zap.String("field", field.Name),
					zap.Error(err),
				)
				continue
			}
			if isNil(v) {
				continue
			}
			value, err := interfaceOf(field, v)
			if err != nil {
				return nil, err
			}
			if reflect.TypeOf(value).Comparable() && !values.Add(value) {
				continue
			}
			out = append(out, value)
		}
	}
	return out, nil
}

func interfaceOf(field Field, v reflect.Value) (any, error) {
	if !v.CanInterface() {
		return nil, newError("resolve", field.Name, field.Type,
			fmt.Errorf("%w: field %s is not exported", ErrInvalidTarget, field.Name))
	}
	return v.Interface(), nil
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return v.IsNil()
	}
	return false
}
