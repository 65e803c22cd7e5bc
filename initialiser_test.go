package mockcoll

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/junioryono/mockcoll/collection"
	"github.com/junioryono/mockcoll/internal/reflection"
	"github.com/junioryono/mockcoll/internal/testutil"
)

type mockCreator struct {
	mock.Mock
}

func (m *mockCreator) CreateCollection(requested reflect.Type, contents *collection.OrderedSet[any]) (any, error) {
	args := m.Called(requested, contents)
	return args.Get(0), args.Error(1)
}

type mockStrategy struct {
	mock.Mock
}

func (m *mockStrategy) CreateMock(t reflect.Type) (any, error) {
	args := m.Called(t)
	return args.Get(0), args.Error(1)
}

func listenerDoubles() *Doubles {
	d := NewDoubles()
	RegisterDouble(d, func() testutil.Listener { return testutil.NewMockListener() })
	return d
}

func newTestInitialiser(mocks MockStrategy, policy CountPolicy) *CollectionInitialiser {
	factory := NewCollectionFactory(nil)
	factory.Register(collection.FamilyOf[testutil.Listener]())
	return NewCollectionInitialiser(reflection.New(nil), NewTypeResolver(), factory, mocks, policy, nil)
}

func TestCollectionInitialiser_GeneratedFixture(t *testing.T) {
	i := newTestInitialiser(listenerDoubles(), nil)
	fixture := &testutil.GeneratedFixture{}

	require.NoError(t, i.Initialise(fixture))

	t.Run("default count without injectables", func(t *testing.T) {
		require.NotNil(t, fixture.Default)
		assert.IsType(t, &collection.OrderedSet[testutil.Listener]{}, fixture.Default)
		testutil.AssertDistinctMocks(t, 1, fixture.Default.Values())
	})

	t.Run("explicit count", func(t *testing.T) {
		testutil.AssertDistinctMocks(t, 3, fixture.Three)
	})

	t.Run("zero count", func(t *testing.T) {
		require.NotNil(t, fixture.Empty)
		assert.True(t, fixture.Empty.IsEmpty())
	})

	t.Run("queue", func(t *testing.T) {
		require.NotNil(t, fixture.Queue)
		testutil.AssertDistinctMocks(t, 2, fixture.Queue.Values())
	})

	t.Run("untagged fields are untouched", func(t *testing.T) {
		assert.Nil(t, fixture.Untagged)
	})
}

func TestCollectionInitialiser_NegativeCount(t *testing.T) {
	type fixture struct {
		Valid    []testutil.Listener `mockcoll:"collectionOfMocks,count=2"`
		Negative []testutil.Listener `mockcoll:"collectionOfMocks,count=-1"`
	}
	i := newTestInitialiser(listenerDoubles(), nil)
	f := &fixture{}

	err := i.Initialise(f)
	testutil.AssertErrorIs(t, err, ErrNegativeMockCount)
	assert.True(t, IsConfiguration(err))
	assert.Contains(t, err.Error(), "Negative")
	assert.Nil(t, f.Valid, "no field is assigned when validation fails")
}

func TestCollectionInitialiser_ValidationErrorsAreAggregated(t *testing.T) {
	type fixture struct {
		Name     string              `mockcoll:"collectionOfMocks"`
		Negative []testutil.Listener `mockcoll:"collectionOfMocks,count=-3"`
		Valid    []testutil.Listener `mockcoll:"collectionOfMocks"`
	}
	i := newTestInitialiser(listenerDoubles(), nil)
	f := &fixture{}

	err := i.Initialise(f)
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	testutil.AssertErrorIs(t, errs[0], ErrNotACollection)
	testutil.AssertErrorIs(t, errs[1], ErrNegativeMockCount)
	assert.Nil(t, f.Valid)
}

func TestCollectionInitialiser_CountPolicies(t *testing.T) {
	type fixture struct {
		First     testutil.Listener   `mockcoll:"mock"`
		Second    testutil.Listener   `mockcoll:"injectable"`
		Ignored   testutil.Listener   `mockcoll:"mock,ignoreInjectable"`
		Sink      testutil.Sink       `mockcoll:"mock"`
		Listeners []testutil.Listener `mockcoll:"collectionOfMocks"`
	}
	newFixture := func() *fixture {
		return &fixture{
			First:   testutil.NewMockListener(),
			Second:  testutil.NewMockListener(),
			Ignored: testutil.NewMockListener(),
			Sink:    new(testutil.MockSink),
		}
	}

	tests := []struct {
		name     string
		policy   CountPolicy
		expected int
	}{
		{"default policy counts assignable injectables", nil, 2},
		{"per injectable minimum", PerInjectable{Minimum: 5}, 5},
		{"fixed count", FixedCount(4), 4},
		{"fixed zero", FixedCount(0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			i := newTestInitialiser(listenerDoubles(), tt.policy)

			require.NoError(t, i.Initialise(f))
			testutil.AssertDistinctMocks(t, tt.expected, f.Listeners)
			assert.NotContains(t, f.Listeners, f.First, "doubles are new values")
		})
	}
}

func TestCollectionInitialiser_SharedInjectableCountsOnce(t *testing.T) {
	type fixture struct {
		A         testutil.Listener   `mockcoll:"mock"`
		B         testutil.Listener   `mockcoll:"injectable"`
		Listeners []testutil.Listener `mockcoll:"collectionOfMocks"`
	}
	shared := testutil.NewMockListener()
	f := &fixture{A: shared, B: shared}
	i := newTestInitialiser(listenerDoubles(), nil)

	require.NoError(t, i.Initialise(f))
	testutil.AssertDistinctMocks(t, 1, f.Listeners)
	assert.NotContains(t, f.Listeners, shared)
}

func TestCollectionInitialiser_UsesCollaborators(t *testing.T) {
	type fixture struct {
		Listeners collection.Set[testutil.Listener] `mockcoll:"collectionOfMocks,count=2"`
	}
	first, second := testutil.NewMockListener(), testutil.NewMockListener()
	created := collection.NewOrderedSet[testutil.Listener](first, second)
	listenerType := reflect.TypeFor[testutil.Listener]()
	setType := reflect.TypeFor[collection.Set[testutil.Listener]]()

	mocks := new(mockStrategy)
	mocks.On("CreateMock", listenerType).Return(first, nil).Once()
	mocks.On("CreateMock", listenerType).Return(second, nil).Once()

	creator := new(mockCreator)
	creator.On("CreateCollection", setType, mock.MatchedBy(func(contents *collection.OrderedSet[any]) bool {
		return reflect.DeepEqual([]any{first, second}, contents.Values())
	})).Return(created, nil)

	i := NewCollectionInitialiser(reflection.New(nil), NewTypeResolver(), creator, mocks, nil, nil)
	f := &fixture{}

	require.NoError(t, i.Initialise(f))
	assert.Same(t, created, f.Listeners)
	mocks.AssertExpectations(t)
	creator.AssertExpectations(t)
}

func TestCollectionInitialiser_Failures(t *testing.T) {
	type fixture struct {
		Listeners []testutil.Listener `mockcoll:"collectionOfMocks,count=1"`
	}

	t.Run("no double registered", func(t *testing.T) {
		i := newTestInitialiser(NewDoubles(), nil)

		err := i.Initialise(&fixture{})
		testutil.AssertErrorIs(t, err, ErrNoDouble)
	})

	t.Run("strategy returns nil", func(t *testing.T) {
		mocks := new(mockStrategy)
		mocks.On("CreateMock", mock.Anything).Return(nil, nil)
		i := newTestInitialiser(mocks, nil)

		err := i.Initialise(&fixture{})
		testutil.AssertErrorIs(t, err, ErrNoDouble)
	})

	t.Run("double not comparable", func(t *testing.T) {
		mocks := new(mockStrategy)
		mocks.On("CreateMock", mock.Anything).Return([]string{"not comparable"}, nil)
		i := newTestInitialiser(mocks, nil)

		err := i.Initialise(&fixture{})
		testutil.AssertErrorIs(t, err, ErrElementMismatch)
	})

	t.Run("factory failure", func(t *testing.T) {
		creator := new(mockCreator)
		creator.On("CreateCollection", mock.Anything, mock.Anything).Return(nil, testutil.ErrTest)
		i := NewCollectionInitialiser(reflection.New(nil), NewTypeResolver(), creator, listenerDoubles(), nil, nil)

		err := i.Initialise(&fixture{})
		testutil.AssertErrorIs(t, err, testutil.ErrTest)

		var ce CollectionsError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "initialise", ce.Op)
		assert.Equal(t, "Listeners", ce.Field)
	})

	t.Run("invalid target", func(t *testing.T) {
		i := newTestInitialiser(listenerDoubles(), nil)

		testutil.AssertErrorIs(t, i.Initialise(fixture{}), ErrInvalidTarget)
	})
}

func TestCollectionInitialiser_NoCollectionFields(t *testing.T) {
	creator := new(mockCreator)
	i := NewCollectionInitialiser(reflection.New(nil), NewTypeResolver(), creator, listenerDoubles(), nil, nil)

	require.NoError(t, i.Initialise(testutil.NewBusFixture()))
	creator.AssertNotCalled(t, "CreateCollection", mock.Anything, mock.Anything)
}
