// Package mockcoll injects collections of test doubles into the objects under
// test of a test fixture.
//
// # Overview
//
// A fixture is a struct whose fields are marked with `mockcoll` struct tags:
//
//	type Fixture struct {
//	    Bus       *EventBus              `mockcoll:"injectCollections"`
//	    First     Listener               `mockcoll:"mock"`
//	    Second    Listener               `mockcoll:"mock"`
//	    Ignored   Listener               `mockcoll:"mock,ignoreInjectable"`
//	    Generated collection.Set[Sink]   `mockcoll:"collectionOfMocks,count=2"`
//	}
//
// Inject then:
//   - fills every collectionOfMocks field with a new collection of doubles
//   - reads the injectees (injectCollections, injectMocks) and injectables
//     (injectable, mock) of the fixture
//   - assigns to every exported collection field of each injectee either the
//     fixture's collectionOfMocks field of the same type, or a collection of
//     the injectables assignable to its element type
//
// Fields of embedded structs are read before the fields of the struct that
// embeds them, and every collection keeps the order its elements were found in.
//
// # Collections
//
// Fields may be slices or one of the interfaces of package collection:
// Collection, Set, SortedSet, List and Queue. Slices need no setup. The
// interfaces are generic, so their element types must be registered with
// WithElements, WithDouble or WithAdapter:
//
//	injector, err := mockcoll.NewInjector(
//	    mockcoll.WithDouble(func() Sink { return new(MockSink) }),
//	)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	require.NoError(t, injector.Inject(&fixture))
//
// Custom interfaces that embed a collection interface are built from the
// container of the shape they embed. When that container does not implement
// the custom interface, register an adapter with WithAdapter.
//
// # Doubles
//
// Go cannot generate mocks at runtime. The doubles put into collectionOfMocks
// fields come from a MockStrategy; the default one, Doubles, calls the
// factories registered with WithDouble. Without a count option a field gets
// one double per matching injectable of the fixture, and at least one.
//
// # Errors
//
// Every error is a CollectionsError wrapping one of the Err sentinels:
//
//	if errors.Is(err, mockcoll.ErrNegativeMockCount) {
//	    ...
//	}
//
// Fixture validation errors are reported together before any field is
// assigned.
//
// # Logging
//
// Components log through zap at debug level. Logging is off unless
// WithLogger is given.
package mockcoll
