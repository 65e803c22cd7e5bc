package mockcoll

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/junioryono/mockcoll/collection"
	"github.com/junioryono/mockcoll/internal/reflection"
	"github.com/junioryono/mockcoll/internal/testutil"
)

type mockRetriever struct {
	mock.Mock
}

func (m *mockRetriever) AnnotatedFields(t reflect.Type, marker Marker) ([]Field, error) {
	args := m.Called(t, marker)
	fields, _ := args.Get(0).([]Field)
	return fields, args.Error(1)
}

// returns stubs marker to answer with fields; every other marker answers none.
func (m *mockRetriever) returns(marker Marker, fields ...Field) *mockRetriever {
	m.On("AnnotatedFields", mock.Anything, marker).Return(fields, nil)
	return m
}

func (m *mockRetriever) fallback() *mockRetriever {
	m.On("AnnotatedFields", mock.Anything, mock.Anything).Return([]Field(nil), nil)
	return m
}

type mockTypeResolver struct {
	mock.Mock
}

func (m *mockTypeResolver) CollectionFieldType(f Field) (reflect.Type, error) {
	args := m.Called(f)
	t, _ := args.Get(0).(reflect.Type)
	return t, args.Error(1)
}

// untaggedFixture declares no tags; the stubbed retriever decides which field
// plays which role.
type untaggedFixture struct {
	Subject   *testutil.EventBus
	Other     *testutil.EventBus
	First     testutil.Listener
	Second    testutil.Listener
	Generated []testutil.Listener
	Name      string
	Missing   testutil.Listener
}

var (
	subjectField   = testutil.NewField[*testutil.EventBus]("Subject", 0).Build()
	otherField     = testutil.NewField[*testutil.EventBus]("Other", 1).Build()
	firstField     = testutil.NewField[testutil.Listener]("First", 2).Build()
	secondField    = testutil.NewField[testutil.Listener]("Second", 3).Build()
	generatedField = testutil.NewField[[]testutil.Listener]("Generated", 4).Marked(CollectionOfMocks).Build()
	nameField      = testutil.NewField[string]("Name", 5).Marked(CollectionOfMocks).Build()
	missingField   = testutil.NewField[testutil.Listener]("Missing", 6).Build()
)

func newUntaggedFixture() *untaggedFixture {
	return &untaggedFixture{
		Subject: &testutil.EventBus{},
		Other:   &testutil.EventBus{},
		First:   testutil.NewMockListener(),
		Second:  testutil.NewMockListener(),
	}
}

func TestDetailsFactory_EmptyFixture(t *testing.T) {
	retriever := new(mockRetriever).fallback()
	f := NewDetailsFactory(retriever, new(mockTypeResolver), nil, nil)

	details, err := f.CreateInjectionDetails(newUntaggedFixture())
	require.NoError(t, err)

	assert.NotNil(t, details.Injectees())
	assert.Empty(t, details.Injectees())
	assert.NotNil(t, details.Injectables())
	assert.Empty(t, details.Injectables())
	assert.NotNil(t, details.InjectableCollections())
	assert.Empty(t, details.InjectableCollections())
}

func TestDetailsFactory_Injectees(t *testing.T) {
	t.Run("union of both markers in retriever order", func(t *testing.T) {
		retriever := new(mockRetriever).
			returns(InjectCollections, otherField).
			returns(InjectMocks, subjectField, otherField).
			fallback()
		f := NewDetailsFactory(retriever, new(mockTypeResolver), nil, nil)
		fixture := newUntaggedFixture()

		details, err := f.CreateInjectionDetails(fixture)
		require.NoError(t, err)
		assert.Equal(t, []any{fixture.Other, fixture.Subject}, details.Injectees())
	})

	t.Run("ignored injectees are left out", func(t *testing.T) {
		retriever := new(mockRetriever).
			returns(InjectCollections, subjectField, otherField).
			returns(IgnoreInjectee, subjectField).
			fallback()
		f := NewDetailsFactory(retriever, new(mockTypeResolver), nil, nil)
		fixture := newUntaggedFixture()

		details, err := f.CreateInjectionDetails(fixture)
		require.NoError(t, err)
		assert.Equal(t, []any{fixture.Other}, details.Injectees())
	})
}

func TestDetailsFactory_Injectables(t *testing.T) {
	t.Run("union of both markers in retriever order", func(t *testing.T) {
		retriever := new(mockRetriever).
			returns(Injectable, secondField).
			returns(Mock, firstField, secondField).
			fallback()
		f := NewDetailsFactory(retriever, new(mockTypeResolver), nil, nil)
		fixture := newUntaggedFixture()

		details, err := f.CreateInjectionDetails(fixture)
		require.NoError(t, err)
		assert.Equal(t, []any{fixture.Second, fixture.First}, details.Injectables())
	})

	t.Run("ignored injectables are left out", func(t *testing.T) {
		retriever := new(mockRetriever).
			returns(Mock, firstField, secondField).
			returns(IgnoreInjectable, firstField).
			fallback()
		f := NewDetailsFactory(retriever, new(mockTypeResolver), nil, nil)
		fixture := newUntaggedFixture()

		details, err := f.CreateInjectionDetails(fixture)
		require.NoError(t, err)
		assert.Equal(t, []any{fixture.Second}, details.Injectables())
	})

	t.Run("nil values are left out", func(t *testing.T) {
		retriever := new(mockRetriever).
			returns(Mock, missingField, firstField).
			fallback()
		f := NewDetailsFactory(retriever, new(mockTypeResolver), nil, nil)
		fixture := newUntaggedFixture()

		details, err := f.CreateInjectionDetails(fixture)
		require.NoError(t, err)
		assert.Equal(t, []any{fixture.First}, details.Injectables())
	})

	t.Run("a value held by two fields is reported once", func(t *testing.T) {
		retriever := new(mockRetriever).
			returns(Injectable, secondField).
			returns(Mock, firstField, secondField).
			fallback()
		f := NewDetailsFactory(retriever, new(mockTypeResolver), nil, nil)
		fixture := newUntaggedFixture()
		fixture.First = fixture.Second

		details, err := f.CreateInjectionDetails(fixture)
		require.NoError(t, err)
		assert.Equal(t, []any{fixture.Second}, details.Injectables())
	})

	t.Run("an injectee held by two fields is reported once", func(t *testing.T) {
		retriever := new(mockRetriever).
			returns(InjectCollections, subjectField).
			returns(InjectMocks, otherField).
			fallback()
		f := NewDetailsFactory(retriever, new(mockTypeResolver), nil, nil)
		fixture := newUntaggedFixture()
		fixture.Other = fixture.Subject

		details, err := f.CreateInjectionDetails(fixture)
		require.NoError(t, err)
		assert.Equal(t, []any{fixture.Subject}, details.Injectees())
	})
}

func TestDetailsFactory_InjectableCollections(t *testing.T) {
	t.Run("describes collectionOfMocks fields", func(t *testing.T) {
		retriever := new(mockRetriever).
			returns(CollectionOfMocks, generatedField).
			fallback()
		types := new(mockTypeResolver)
		types.On("CollectionFieldType", generatedField).Return(reflect.TypeFor[testutil.Listener](), nil)
		f := NewDetailsFactory(retriever, types, nil, nil)
		fixture := newUntaggedFixture()
		fixture.Generated = []testutil.Listener{testutil.NewMockListener()}

		details, err := f.CreateInjectionDetails(fixture)
		require.NoError(t, err)

		collections := details.InjectableCollections()
		require.Len(t, collections, 1)
		ic := collections[0]
		assert.Equal(t, "Generated", ic.Field())
		assert.Equal(t, fixture.Generated, ic.Value())
		assert.Equal(t, reflect.TypeFor[[]testutil.Listener](), ic.Type())
		assert.Equal(t, collection.ShapeList, ic.Shape())
		assert.Equal(t, reflect.TypeFor[testutil.Listener](), ic.ElementType())
		types.AssertExpectations(t)
	})

	t.Run("shape of registered interfaces", func(t *testing.T) {
		type setFixture struct {
			Listeners collection.Set[testutil.Listener]
		}
		field := testutil.NewField[collection.Set[testutil.Listener]]("Listeners", 0).Marked(CollectionOfMocks).Build()
		retriever := new(mockRetriever).returns(CollectionOfMocks, field).fallback()
		shapes := NewCollectionFactory(nil)
		shapes.Register(collection.FamilyOf[testutil.Listener]())
		f := NewDetailsFactory(retriever, NewTypeResolver(), shapes, nil)

		details, err := f.CreateInjectionDetails(&setFixture{})
		require.NoError(t, err)

		collections := details.InjectableCollections()
		require.Len(t, collections, 1)
		assert.Equal(t, collection.ShapeSet, collections[0].Shape())
		assert.Nil(t, collections[0].Value())
	})

	t.Run("field that is not a collection", func(t *testing.T) {
		retriever := new(mockRetriever).
			returns(CollectionOfMocks, nameField).
			fallback()
		types := new(mockTypeResolver)
		f := NewDetailsFactory(retriever, types, nil, nil)

		details, err := f.CreateInjectionDetails(newUntaggedFixture())
		testutil.AssertErrorIs(t, err, ErrNotACollection)
		assert.Nil(t, details)
		assert.Contains(t, err.Error(), "Name")
		types.AssertNotCalled(t, "CollectionFieldType", mock.Anything)
	})

	t.Run("type resolver failure", func(t *testing.T) {
		retriever := new(mockRetriever).
			returns(CollectionOfMocks, generatedField).
			fallback()
		types := new(mockTypeResolver)
		types.On("CollectionFieldType", generatedField).Return(nil, testutil.ErrTest)
		f := NewDetailsFactory(retriever, types, nil, nil)

		_, err := f.CreateInjectionDetails(newUntaggedFixture())
		testutil.AssertErrorIs(t, err, testutil.ErrTest)

		var ce CollectionsError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "resolve", ce.Op)
		assert.Equal(t, "Generated", ce.Field)
	})
}

func TestDetailsFactory_RetrieverFailure(t *testing.T) {
	retriever := new(mockRetriever)
	retriever.On("AnnotatedFields", mock.Anything, mock.Anything).Return(nil, reflection.ErrMalformedTag)
	f := NewDetailsFactory(retriever, new(mockTypeResolver), nil, nil)

	_, err := f.CreateInjectionDetails(newUntaggedFixture())
	testutil.AssertErrorIs(t, err, ErrMalformedTag)
	assert.True(t, IsConfiguration(err))
}

func TestDetailsFactory_InvalidTarget(t *testing.T) {
	f := NewDetailsFactory(new(mockRetriever), new(mockTypeResolver), nil, nil)

	for _, target := range []any{nil, untaggedFixture{}, (*untaggedFixture)(nil), new(int)} {
		_, err := f.CreateInjectionDetails(target)
		testutil.AssertErrorIs(t, err, ErrInvalidTarget)
	}
}

func TestDetailsFactory_WithAnalyzer(t *testing.T) {
	f := NewDetailsFactory(reflection.New(nil), NewTypeResolver(), nil, nil)

	t.Run("embedded fields come first", func(t *testing.T) {
		fixture := &testutil.LayeredFixture{
			BaseFixture: testutil.BaseFixture{Base: testutil.NewMockListener()},
			Bus:         &testutil.EventBus{},
			Leaf:        testutil.NewMockListener(),
		}

		details, err := f.CreateInjectionDetails(fixture)
		require.NoError(t, err)
		assert.Equal(t, []any{fixture.Base, fixture.Leaf}, details.Injectables())
		assert.Equal(t, []any{fixture.Bus}, details.Injectees())
	})

	t.Run("embedded pointer", func(t *testing.T) {
		fixture := &testutil.PointerFixture{
			PointerBase: &testutil.PointerBase{Base: testutil.NewMockListener()},
			Bus:         &testutil.EventBus{},
			Leaf:        testutil.NewMockListener(),
		}

		details, err := f.CreateInjectionDetails(fixture)
		require.NoError(t, err)
		assert.Equal(t, []any{fixture.Base, fixture.Leaf}, details.Injectables())
	})

	t.Run("ignore markers", func(t *testing.T) {
		fixture := &testutil.IgnoringFixture{
			Bus:     &testutil.EventBus{},
			Skipped: &testutil.EventBus{},
			Kept:    testutil.NewMockListener(),
			Hidden:  testutil.NewMockListener(),
		}

		details, err := f.CreateInjectionDetails(fixture)
		require.NoError(t, err)
		assert.Equal(t, []any{fixture.Bus}, details.Injectees())
		assert.Equal(t, []any{fixture.Kept}, details.Injectables())
	})
}

func TestDetailsFactory_NilEmbeddedPointer(t *testing.T) {
	t.Run("injectables behind it are skipped", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		f := NewDetailsFactory(reflection.New(nil), NewTypeResolver(), nil, zap.New(core))
		fixture := &testutil.PointerFixture{
			Bus:  &testutil.EventBus{},
			Leaf: testutil.NewMockListener(),
		}

		details, err := f.CreateInjectionDetails(fixture)
		require.NoError(t, err)
		assert.Equal(t, []any{fixture.Leaf}, details.Injectables())
		assert.Equal(t, []any{fixture.Bus}, details.Injectees())

		skipped := logs.FilterMessage("skipping field behind nil embedded pointer").All()
		require.Len(t, skipped, 1)
		assert.Equal(t, "PointerBase.Base", skipped[0].ContextMap()["field"])
	})

	t.Run("collectionOfMocks behind it fails", func(t *testing.T) {
		f := NewDetailsFactory(reflection.New(nil), NewTypeResolver(), nil, nil)

		details, err := f.CreateInjectionDetails(&testutil.PointerGeneratedFixture{})
		require.Error(t, err)
		assert.Nil(t, details)

		var ce CollectionsError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "resolve", ce.Op)
		assert.Equal(t, "GeneratedBase.Generated", ce.Field)
		assert.Contains(t, err.Error(), "Generated")
	})
}

func TestInjectionDetails_AccessorsReturnCopies(t *testing.T) {
	listener := testutil.NewMockListener()
	details := newInjectionDetails(nil, []any{listener}, nil)

	injectables := details.Injectables()
	injectables[0] = nil

	assert.Equal(t, []any{listener}, details.Injectables())
}
