package mockcoll

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/junioryono/mockcoll/collection"
	"github.com/junioryono/mockcoll/internal/reflection"
)

// CollectionCreator creates populated collections of a requested type.
type CollectionCreator interface {
	CreateCollection(requested reflect.Type, contents *collection.OrderedSet[any]) (any, error)
}

var _ CollectionCreator = (*CollectionFactory)(nil)

// CollectionFactory builds order-preserving collections for field types.
//
// Slices need no registration. Fields typed with one of the collection
// interfaces need the Family of their element type, and fields typed with a
// custom interface built on them may also need an Adapter.
type CollectionFactory struct {
	mu       sync.RWMutex
	families map[reflect.Type]*collection.Family
	adapters map[reflect.Type]collection.Adapter
	logger   *zap.Logger
}

// NewCollectionFactory creates a factory with no registered families.
func NewCollectionFactory(logger *zap.Logger) *CollectionFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollectionFactory{
		families: make(map[reflect.Type]*collection.Family),
		adapters: make(map[reflect.Type]collection.Adapter),
		logger:   logger,
	}
}

// Register registers element families.
func (f *CollectionFactory) Register(families ...*collection.Family) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, family := range families {
		f.families[family.Elem()] = family
	}
}

// RegisterAdapter registers adapters for custom collection interfaces.
func (f *CollectionFactory) RegisterAdapter(adapters ...collection.Adapter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, adapter := range adapters {
		f.adapters[adapter.Interface()] = adapter
	}
}

func (f *CollectionFactory) family(elem reflect.Type) *collection.Family {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.families[elem]
}

func (f *CollectionFactory) adapter(iface reflect.Type) (collection.Adapter, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	a, ok := f.adapters[iface]
	return a, ok
}

// ShapeOf classifies t: List for slices, the exact shape for a registered
// collection interface, the backing shape for a custom interface of a
// registered element type, Other for anything else.
func (f *CollectionFactory) ShapeOf(t reflect.Type) collection.Shape {
	if t == nil {
		return collection.ShapeOther
	}
	if t.Kind() == reflect.Slice {
		return collection.ShapeList
	}
	elem, ok := collection.ElementType(t)
	if !ok {
		return collection.ShapeOther
	}
	if family := f.family(elem); family != nil {
		if shape, ok := family.Match(t); ok {
			return shape
		}
		return family.Probe(t)
	}
	return collection.ShapeOther
}

// CreateCollection creates a collection assignable to requested holding
// contents in order. nil contents give an empty collection.
//
// Mapping, in priority order:
//   - SortedSet[E]: *collection.LinkedSortedSet[E]
//   - Set[E], Collection[E]: *collection.OrderedSet[E]
//   - List[E]: *collection.ArrayList[E]; []E: a new slice
//   - Queue[E]: *collection.ConcurrentQueue[E]
//   - other interfaces with a collection method set: the container of the
//     shape they extend (ordered set by default), adapted when it does not
//     implement the interface itself
//   - interfaces without a collection method set fail with ErrAbstractType
//   - every other type fails with ErrUnknownCollectionType
func (f *CollectionFactory) CreateCollection(requested reflect.Type, contents *collection.OrderedSet[any]) (any, error) {
	var values []any
	if contents != nil {
		values = contents.Values()
	}

	created, shape, err := f.create(requested, values)
	if err != nil {
		return nil, newError("create", "", requested, err)
	}

	f.logger.Debug("created collection",
		zap.String("type", reflection.FormatType(requested)),
		zap.Stringer("shape", shape),
		zap.Int("size", len(values)),
	)
	return created, nil
}

func (f *CollectionFactory) create(requested reflect.Type, values []any) (any, collection.Shape, error) {
	if requested == nil {
		return nil, collection.ShapeOther, ErrUnknownCollectionType
	}

	switch requested.Kind() {
	case reflect.Slice:
		created, err := createSlice(requested, values)
		return created, collection.ShapeList, err
	case reflect.Interface:
	default:
		return nil, collection.ShapeOther, ErrUnknownCollectionType
	}

	elem, ok := collection.ElementType(requested)
	if !ok {
		return nil, collection.ShapeOther, ErrAbstractType
	}
	family := f.family(elem)
	if family == nil {
		return nil, collection.ShapeOther, fmt.Errorf("%w %s", ErrUnknownElementType, reflection.FormatType(elem))
	}

	if shape, ok := family.Match(requested); ok {
		created, err := family.Build(shape, values)
		return created, shape, err
	}
	return f.createFromUnknownInterface(requested, family, values)
}

func (f *CollectionFactory) createFromUnknownInterface(requested reflect.Type, family *collection.Family, values []any) (any, collection.Shape, error) {
	shape := family.Probe(requested)
	backing, err := family.Build(shape, values)
	if err != nil {
		return nil, shape, err
	}
	if reflect.TypeOf(backing).Implements(requested) {
		return backing, shape, nil
	}

	adapter, ok := f.adapter(requested)
	if !ok {
		return nil, shape, fmt.Errorf("%w (backing %s)", ErrNoAdapter, shape)
	}
	adapted, err := adapter.Wrap(backing)
	if err != nil {
		return nil, shape, err
	}
	return adapted, shape, nil
}

func createSlice(requested reflect.Type, values []any) (any, error) {
	elem := requested.Elem()
	s := reflect.MakeSlice(requested, 0, len(values))
	for i, v := range values {
		if v == nil {
			s = reflect.Append(s, reflect.Zero(elem))
			continue
		}
		rv := reflect.ValueOf(v)
		if !rv.Type().AssignableTo(elem) {
			return nil, fmt.Errorf("%w: element %d is %T, want %s", ErrElementMismatch, i, v, reflection.FormatType(elem))
		}
		s = reflect.Append(s, rv)
	}
	return s.Interface(), nil
}
