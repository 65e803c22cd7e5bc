package mockcoll

import (
	"errors"
	"reflect"

	"go.uber.org/zap"

	"github.com/junioryono/mockcoll/collection"
	"github.com/junioryono/mockcoll/internal/reflection"
)

// CollectionFieldRetriever finds the fields of a struct type that can
// receive a collection.
type CollectionFieldRetriever interface {
	CollectionFields(t reflect.Type) ([]Field, error)
}

// SelectionStrategy picks the injectables that go into a collection of
// element type elem.
type SelectionStrategy interface {
	Select(elem reflect.Type, injectables []any) []any
}

// SelectionFunc adapts a function to SelectionStrategy.
type SelectionFunc func(elem reflect.Type, injectables []any) []any

// Select implements SelectionStrategy.
func (f SelectionFunc) Select(elem reflect.Type, injectables []any) []any {
	return f(elem, injectables)
}

// SelectAssignable selects every injectable assignable to elem, in order.
var SelectAssignable SelectionStrategy = SelectionFunc(func(elem reflect.Type, injectables []any) []any {
	var out []any
	for _, v := range injectables {
		if v != nil && reflect.TypeOf(v).AssignableTo(elem) {
			out = append(out, v)
		}
	}
	return out
})

// CollectionInjector injects collections into the injectees of resolved
// InjectionDetails.
//
// For every exported collection field of an injectee, an injectable
// collection of exactly the field's type is assigned when the fixture has
// one. Otherwise the injectables picked by the SelectionStrategy are gathered
// into a new collection of the field's type. Fields for which nothing is
// selected, or whose element type has no registered family, are left alone.
type CollectionInjector struct {
	fields    CollectionFieldRetriever
	types     TypeResolver
	factory   CollectionCreator
	selection SelectionStrategy
	logger    *zap.Logger
}

// NewCollectionInjector creates a CollectionInjector. A nil selection
// selects SelectAssignable.
func NewCollectionInjector(
	fields CollectionFieldRetriever,
	types TypeResolver,
	factory CollectionCreator,
	selection SelectionStrategy,
	logger *zap.Logger,
) *CollectionInjector {
	if selection == nil {
		selection = SelectAssignable
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollectionInjector{
		fields:    fields,
		types:     types,
		factory:   factory,
		selection: selection,
		logger:    logger,
	}
}

// Inject injects into every injectee of details. Injectees that are not
// pointers to structs are skipped.
func (c *CollectionInjector) Inject(details *InjectionDetails) error {
	if details == nil {
		return nil
	}
	for _, injectee := range details.injectees {
		root, err := reflection.StructValue(injectee)
		if err != nil {
			c.logger.Debug("skipping injectee", zap.String("type", reflection.FormatType(reflect.TypeOf(injectee))))
			continue
		}
		if err := c.injectInto(root, details); err != nil {
			return err
		}
	}
	return nil
}

func (c *CollectionInjector) injectInto(root reflect.Value, details *InjectionDetails) error {
	fields, err := c.fields.CollectionFields(root.Type())
	if err != nil {
		return newError("inject", "", root.Type(), err)
	}

	for _, field := range fields {
		v, err := field.Value(root)
		if err != nil || !v.CanSet() {
			continue
		}

		if value, ok := matchCollection(details.injectableCollections, field.Type); ok {
			v.Set(value)
			c.logger.Debug("injected collection of mocks",
				zap.String("injectee", reflection.FormatType(root.Type())),
				zap.String("field", field.Name),
			)
			continue
		}

		elem, err := c.types.CollectionFieldType(field)
		if err != nil {
			return newError("inject", field.Name, field.Type, err)
		}
		selected := c.selection.Select(elem, details.injectables)
		contents := collection.NewOrderedSet[any]()
		for _, s := range selected {
			if s == nil || !reflect.TypeOf(s).Comparable() {
				continue
			}
			contents.Add(s)
		}
		if contents.IsEmpty() {
			continue
		}

		created, err := c.factory.CreateCollection(field.Type, contents)
		if errors.Is(err, ErrUnknownElementType) {
			c.logger.Warn("element type not registered, field left unchanged",
				zap.String("injectee", reflection.FormatType(root.Type())),
				zap.String("field", field.Name),
			)
			continue
		}
		if err != nil {
			return newError("inject", field.Name, field.Type, err)
		}
		rv := reflect.ValueOf(created)
		if !rv.IsValid() || !rv.Type().AssignableTo(v.Type()) {
			continue
		}
		v.Set(rv)

		c.logger.Debug("injected injectables",
			zap.String("injectee", reflection.FormatType(root.Type())),
			zap.String("field", field.Name),
			zap.Int("count", contents.Len()),
		)
	}
	return nil
}

func matchCollection(collections []*InjectableCollection, t reflect.Type) (reflect.Value, bool) {
	for _, ic := range collections {
		if ic.typ != t || ic.value == nil {
			continue
		}
		v := reflect.ValueOf(ic.value)
		if isNil(v) || !v.Type().AssignableTo(t) {
			continue
		}
		return v, true
	}
	return reflect.Value{}, false
}
