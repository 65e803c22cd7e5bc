package mockcoll

import (
	"fmt"
	"reflect"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/junioryono/mockcoll/collection"
	"github.com/junioryono/mockcoll/internal/reflection"
)

// CountPolicy decides how many doubles fill a collectionOfMocks field that
// has no count option.
type CountPolicy interface {
	DefaultCount(elem reflect.Type, injectables []any) int
}

// PerInjectable creates one double per injectable of the fixture assignable to
// the element type, and never fewer than Minimum.
type PerInjectable struct {
	Minimum int
}

// DefaultCount implements CountPolicy.
func (p PerInjectable) DefaultCount(elem reflect.Type, injectables []any) int {
	n := 0
	for _, v := range injectables {
		if v != nil && reflect.TypeOf(v).AssignableTo(elem) {
			n++
		}
	}
	return max(n, p.Minimum)
}

// FixedCount creates the same number of doubles for every field.
type FixedCount int

// DefaultCount implements CountPolicy.
func (n FixedCount) DefaultCount(reflect.Type, []any) int {
	return int(n)
}

// DefaultCountPolicy is the CountPolicy used when none is configured.
var DefaultCountPolicy CountPolicy = PerInjectable{Minimum: 1}

// CollectionInitialiser fills the collectionOfMocks fields of a fixture with
// freshly created doubles.
type CollectionInitialiser struct {
	retriever FieldRetriever
	types     TypeResolver
	factory   CollectionCreator
	mocks     MockStrategy
	policy    CountPolicy
	logger    *zap.Logger
}

// NewCollectionInitialiser creates a CollectionInitialiser. A nil policy
// selects DefaultCountPolicy.
func NewCollectionInitialiser(
	retriever FieldRetriever,
	types TypeResolver,
	factory CollectionCreator,
	mocks MockStrategy,
	policy CountPolicy,
	logger *zap.Logger,
) *CollectionInitialiser {
	if policy == nil {
		policy = DefaultCountPolicy
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollectionInitialiser{
		retriever: retriever,
		types:     types,
		factory:   factory,
		mocks:     mocks,
		policy:    policy,
		logger:    logger,
	}
}

type plannedField struct {
	field Field
	elem  reflect.Type
	count int
}

// Initialise assigns a new collection of doubles to every collectionOfMocks
// field of target, in retriever order.
//
// Every field is validated before any is assigned, and all validation errors
// are returned together. Failures while creating doubles or collections stop
// the pass; fields assigned before the failure keep their new value.
func (i *CollectionInitialiser) Initialise(target any) error {
	root, err := reflection.StructValue(target)
	if err != nil {
		return newError("initialise", "", reflect.TypeOf(target), err)
	}

	fields, err := i.retriever.AnnotatedFields(root.Type(), CollectionOfMocks)
	if err != nil {
		return newError("initialise", "", root.Type(), err)
	}
	if len(fields) == 0 {
		return nil
	}

	plan, err := i.plan(root, fields)
	if err != nil {
		return err
	}
	for _, p := range plan {
		if err := i.assign(root, p); err != nil {
			return err
		}
	}

	i.logger.Debug("initialised collections",
		zap.String("fixture", reflection.FormatType(root.Type())),
		zap.Int("fields", len(plan)),
	)
	return nil
}

func (i *CollectionInitialiser) plan(root reflect.Value, fields []Field) ([]plannedField, error) {
	var (
		plan        = make([]plannedField, 0, len(fields))
		errs        error
		injectables []any
		loaded      bool
	)

	for _, field := range fields {
		if _, ok := collection.ElementType(field.Type); !ok {
			errs = multierr.Append(errs, newError("initialise", field.Name, field.Type,
				fmt.Errorf("%w: collectionOfMocks field %s has type %s", ErrNotACollection, field.Name, reflection.FormatType(field.Type))))
			continue
		}
		elem, err := i.types.CollectionFieldType(field)
		if err != nil {
			errs = multierr.Append(errs, newError("initialise", field.Name, field.Type, err))
			continue
		}
		if v, err := field.Value(root); err != nil || !v.CanSet() {
			errs = multierr.Append(errs, newError("initialise", field.Name, field.Type,
				fmt.Errorf("%w: field %s cannot be assigned", ErrInvalidTarget, field.Name)))
			continue
		}

		count := field.Tag.Count
		switch {
		case field.Tag.HasCount && count < 0:
			errs = multierr.Append(errs, newError("initialise", field.Name, field.Type,
				fmt.Errorf("%w: got %d", ErrNegativeMockCount, count)))
			continue
		case !field.Tag.HasCount:
			if !loaded {
				injectables, err = collectValues(i.retriever, root, i.logger, IgnoreInjectable, Injectable, Mock)
				if err != nil {
					return nil, err
				}
				loaded = true
			}
			count = i.policy.DefaultCount(elem, injectables)
		}

		plan = append(plan, plannedField{field: field, elem: elem, count: max(count, 0)})
	}

	if errs != nil {
		return nil, errs
	}
	return plan, nil
}

func (i *CollectionInitialiser) assign(root reflect.Value, p plannedField) error {
	contents := collection.NewOrderedSet[any]()
	for n := 0; n < p.count; n++ {
		double, err := i.mocks.CreateMock(p.elem)
		if err != nil {
			return newError("initialise", p.field.Name, p.elem, err)
		}
		if double == nil {
			return newError("initialise", p.field.Name, p.elem, fmt.Errorf("%w: strategy returned nil", ErrNoDouble))
		}
		if !reflect.TypeOf(double).Comparable() {
			return newError("initialise", p.field.Name, p.elem,
				fmt.Errorf("%w: double %T is not comparable", ErrElementMismatch, double))
		}
		contents.Add(double)
	}

	created, err := i.factory.CreateCollection(p.field.Type, contents)
	if err != nil {
		return newError("initialise", p.field.Name, p.field.Type, err)
	}

	v, err := p.field.Value(root)
	if err != nil {
		return newError("initialise", p.field.Name, p.field.Type, err)
	}
	rv := reflect.ValueOf(created)
	if !rv.IsValid() || !rv.Type().AssignableTo(v.Type()) {
		return newError("initialise", p.field.Name, p.field.Type,
			fmt.Errorf("%w: created %T", ErrUnknownCollectionType, created))
	}
	v.Set(rv)

	i.logger.Debug("assigned collection of mocks",
		zap.String("field", p.field.Name),
		zap.String("element", reflection.FormatType(p.elem)),
		zap.Int("count", contents.Len()),
	)
	return nil
}
