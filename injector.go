package mockcoll

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/junioryono/mockcoll/internal/reflection"
)

// Injector runs a complete injection pass over a test fixture: it fills the
// collectionOfMocks fields, resolves the fixture and injects collections into
// the objects under test.
//
// An Injector is immutable once built and may be shared between tests.
type Injector struct {
	initialiser *CollectionInitialiser
	details     *DetailsFactory
	collections *CollectionInjector
	factory     *CollectionFactory
	logger      *zap.Logger
}

// injectorParams are the components an Injector is assembled from.
type injectorParams struct {
	dig.In

	Initialiser *CollectionInitialiser
	Details     *DetailsFactory
	Collections *CollectionInjector
	Factory     *CollectionFactory
	Logger      *zap.Logger
}

// NewInjector creates an Injector.
//
//	injector, err := mockcoll.NewInjector(
//	    mockcoll.WithDouble(func() Listener { return new(MockListener) }),
//	    mockcoll.WithLogger(zaptest.NewLogger(t)),
//	)
func NewInjector(opts ...Option) (*Injector, error) {
	o := newOptions(opts)

	c := dig.New()
	constructors := []any{
		func() *options { return o },
		func(o *options) *zap.Logger { return o.logger },
		reflection.New,
		func(o *options, a *reflection.Analyzer) FieldRetriever {
			if o.retriever != nil {
				return o.retriever
			}
			return a
		},
		func(a *reflection.Analyzer) CollectionFieldRetriever { return a },
		func(o *options) TypeResolver {
			if o.types != nil {
				return o.types
			}
			return NewTypeResolver()
		},
		func(o *options) MockStrategy {
			if o.mocks != nil {
				return o.mocks
			}
			return o.doubles
		},
		func(o *options) CountPolicy { return o.policy },
		func(o *options) SelectionStrategy { return o.selection },
		func(o *options, logger *zap.Logger) *CollectionFactory {
			f := NewCollectionFactory(logger)
			f.Register(o.families...)
			f.RegisterAdapter(o.adapters...)
			return f
		},
		func(f *CollectionFactory) CollectionCreator { return f },
		func(f *CollectionFactory) ShapeClassifier { return f },
		NewDetailsFactory,
		NewCollectionInitialiser,
		NewCollectionInjector,
	}
	for _, constructor := range constructors {
		if err := c.Provide(constructor); err != nil {
			return nil, fmt.Errorf("mockcoll: wiring injector: %w", err)
		}
	}

	var injector *Injector
	err := c.Invoke(func(p injectorParams) {
		injector = &Injector{
			initialiser: p.Initialiser,
			details:     p.Details,
			collections: p.Collections,
			factory:     p.Factory,
			logger:      p.Logger,
		}
	})
	if err != nil {
		return nil, fmt.Errorf("mockcoll: building injector: %w", dig.RootCause(err))
	}
	return injector, nil
}

// Inject runs one pass over target, a non-nil pointer to a struct:
// collectionOfMocks fields are initialised, then the fixture is resolved,
// then collections are injected into its injectees.
func (inj *Injector) Inject(target any) error {
	logger := inj.logger.With(zap.String("pass", uuid.NewString()))
	logger.Debug("injection pass started", zap.String("fixture", reflection.FormatType(reflect.TypeOf(target))))

	if err := inj.initialiser.Initialise(target); err != nil {
		logger.Debug("initialisation failed", zap.Error(err))
		return err
	}
	details, err := inj.details.CreateInjectionDetails(target)
	if err != nil {
		logger.Debug("resolution failed", zap.Error(err))
		return err
	}
	if err := inj.collections.Inject(details); err != nil {
		logger.Debug("injection failed", zap.Error(err))
		return err
	}

	logger.Debug("injection pass finished",
		zap.Int("injectees", len(details.injectees)),
		zap.Int("injectables", len(details.injectables)),
		zap.Int("collections", len(details.injectableCollections)),
	)
	return nil
}

// Details resolves target without initialising or injecting anything.
func (inj *Injector) Details(target any) (*InjectionDetails, error) {
	return inj.details.CreateInjectionDetails(target)
}

// Initialise fills the collectionOfMocks fields of target only.
func (inj *Injector) Initialise(target any) error {
	return inj.initialiser.Initialise(target)
}

// Factory returns the collection factory used by the injector.
func (inj *Injector) Factory() *CollectionFactory {
	return inj.factory
}
