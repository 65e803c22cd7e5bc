package mockcoll

import (
	"go.uber.org/zap"

	"github.com/junioryono/mockcoll/collection"
)

// Option configures an Injector.
type Option interface {
	apply(*options)
}

// options holds injector configuration.
type options struct {
	logger    *zap.Logger
	retriever FieldRetriever
	types     TypeResolver
	mocks     MockStrategy
	doubles   *Doubles
	policy    CountPolicy
	selection SelectionStrategy
	families  []*collection.Family
	adapters  []collection.Adapter
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:  zap.NewNop(),
		doubles: NewDoubles(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(o)
		}
	}
	return o
}

// optionFunc adapts a function to Option.
type optionFunc func(*options)

func (f optionFunc) apply(opts *options) {
	f(opts)
}

// WithLogger sets the logger. Injection is silent by default.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(opts *options) {
		if logger != nil {
			opts.logger = logger
		}
	})
}

// WithFieldRetriever replaces the struct tag based field retriever.
func WithFieldRetriever(retriever FieldRetriever) Option {
	return optionFunc(func(opts *options) {
		opts.retriever = retriever
	})
}

// WithTypeResolver replaces the default element type resolver.
func WithTypeResolver(types TypeResolver) Option {
	return optionFunc(func(opts *options) {
		opts.types = types
	})
}

// WithMockStrategy replaces the Doubles registry as the source of doubles.
// Doubles registered with WithDouble are then ignored, but their element
// families stay registered.
func WithMockStrategy(mocks MockStrategy) Option {
	return optionFunc(func(opts *options) {
		opts.mocks = mocks
	})
}

// WithCountPolicy sets the count used for collectionOfMocks fields without a
// count option.
func WithCountPolicy(policy CountPolicy) Option {
	return optionFunc(func(opts *options) {
		opts.policy = policy
	})
}

// WithSelectionStrategy sets how injectables are picked for injectee fields.
func WithSelectionStrategy(selection SelectionStrategy) Option {
	return optionFunc(func(opts *options) {
		opts.selection = selection
	})
}

// WithElements registers element families so that fields typed with the
// collection interfaces of those elements can be built.
func WithElements(families ...*collection.Family) Option {
	return optionFunc(func(opts *options) {
		opts.families = append(opts.families, families...)
	})
}

// WithDouble registers factory as the source of doubles of type T and
// registers the element family of T.
func WithDouble[T any](factory func() T) Option {
	return optionFunc(func(opts *options) {
		RegisterDouble(opts.doubles, factory)
		opts.families = append(opts.families, collection.FamilyOf[T]())
	})
}

// WithAdapter registers an adapter for the custom collection interface C
// with elements E, and the element family of E.
func WithAdapter[C, E any](wrap func(collection.Collection[E]) C) Option {
	return optionFunc(func(opts *options) {
		opts.adapters = append(opts.adapters, collection.Adapt(wrap))
		opts.families = append(opts.families, collection.FamilyOf[E]())
	})
}
