package reflection

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/junioryono/mockcoll/collection"
)

// ErrInvalidTarget is returned when a target is not a non-nil pointer to a struct.
var ErrInvalidTarget = errors.New("target must be a non-nil pointer to a struct")

// Field describes a struct field found by the Analyzer, including fields
// promoted from embedded structs.
type Field struct {
	// Name is the dotted path from the scanned struct, e.g. "BaseFixture.Listener".
	Name string

	// Index is the index sequence for reflect.Value.FieldByIndex.
	Index []int

	Type reflect.Type
	Tag  Tag
}

// Has reports whether the field's tag carries marker m.
func (f Field) Has(m Marker) bool {
	return f.Tag.Has(m)
}

// Value returns the live field of root, which must be the struct value the
// field was scanned from. A nil embedded pointer on the path is an error.
func (f Field) Value(root reflect.Value) (reflect.Value, error) {
	v, err := root.FieldByIndexErr(f.Index)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("field %s: %w", f.Name, err)
	}
	return v, nil
}

// Analyzer finds tagged and collection-shaped fields of struct types.
// Results are cached per type.
type Analyzer struct {
	mu     sync.RWMutex
	cache  map[scanKey][]Field
	logger *zap.Logger
}

type scanKey struct {
	typ         reflect.Type
	collections bool
}

// New creates a new Analyzer. A nil logger disables logging.
func New(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		cache:  make(map[scanKey][]Field),
		logger: logger,
	}
}

// StructValue returns the struct a target points to.
func StructValue(target any) (reflect.Value, error) {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w, got %T", ErrInvalidTarget, target)
	}
	return v.Elem(), nil
}

// AnnotatedFields returns the fields of t carrying marker m. Fields of
// embedded structs come before the fields of the struct embedding them;
// otherwise declaration order is kept.
func (a *Analyzer) AnnotatedFields(t reflect.Type, m Marker) ([]Field, error) {
	fields, err := a.TaggedFields(t)
	if err != nil {
		return nil, err
	}

	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.Has(m) {
			out = append(out, f)
		}
	}
	return out, nil
}

// TaggedFields returns every exported field of t with a mockcoll tag.
func (a *Analyzer) TaggedFields(t reflect.Type) ([]Field, error) {
	return a.cached(t, false, a.keepTagged)
}

// CollectionFields returns every exported, collection-shaped field of t that
// is not tagged `mockcoll:"-"`. These are the fields an object under test can
// receive collections through.
func (a *Analyzer) CollectionFields(t reflect.Type) ([]Field, error) {
	return a.cached(t, true, keepCollection)
}

type keepFunc func(sf reflect.StructField, name string) (Field, bool, error)

func (a *Analyzer) cached(t reflect.Type, collections bool, keep keepFunc) ([]Field, error) {
	st := structOf(t)
	if st == nil {
		return nil, fmt.Errorf("%w, got %v", ErrInvalidTarget, t)
	}
	key := scanKey{typ: st, collections: collections}

	a.mu.RLock()
	if fields, ok := a.cache[key]; ok {
		a.mu.RUnlock()
		return fields, nil
	}
	a.mu.RUnlock()

	fields, err := a.scan(st, nil, "", make(map[reflect.Type]bool), keep, nil)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.cache[key] = fields
	a.mu.Unlock()

	return fields, nil
}

// scan walks t depth first. Embedded structs are visited before the
// struct's own fields so that a base fixture's fields take precedence.
func (a *Analyzer) scan(t reflect.Type, index []int, prefix string, visiting map[reflect.Type]bool, keep keepFunc, out []Field) ([]Field, error) {
	visiting[t] = true
	defer delete(visiting, t)

	own := make([]int, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		_, tagged := sf.Tag.Lookup(TagKey)
		if sf.Anonymous && !tagged {
			if base := structOf(sf.Type); base != nil && !visiting[base] {
				var err error
				out, err = a.scan(base, appendIndex(index, i), prefix+sf.Name+".", visiting, keep, out)
				if err != nil {
					return nil, err
				}
			}
			continue
		}
		own = append(own, i)
	}

	for _, i := range own {
		sf := t.Field(i)
		f, ok, err := keep(sf, prefix+sf.Name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		f.Index = appendIndex(index, i)
		out = append(out, f)
	}

	return out, nil
}

func (a *Analyzer) keepTagged(sf reflect.StructField, name string) (Field, bool, error) {
	tag, ok, err := ParseTag(sf.Tag)
	if err != nil {
		return Field{}, false, fmt.Errorf("field %s: %w", name, err)
	}
	if !ok || tag.Skip {
		return Field{}, false, nil
	}

	// Unexported fields cannot be set without unsafe.
	if !sf.IsExported() {
		a.logger.Warn("skipping unexported tagged field",
			zap.String("field", name),
			zap.Stringer("type", sf.Type),
		)
		return Field{}, false, nil
	}

	return Field{Name: name, Type: sf.Type, Tag: tag}, true, nil
}

func keepCollection(sf reflect.StructField, name string) (Field, bool, error) {
	if !sf.IsExported() {
		return Field{}, false, nil
	}
	tag, _, err := ParseTag(sf.Tag)
	if err != nil {
		return Field{}, false, fmt.Errorf("field %s: %w", name, err)
	}
	if tag.Skip {
		return Field{}, false, nil
	}
	if _, ok := collection.ElementType(sf.Type); !ok {
		return Field{}, false, nil
	}
	return Field{Name: name, Type: sf.Type, Tag: tag}, true, nil
}

// Clear clears the field cache.
func (a *Analyzer) Clear() {
	a.mu.Lock()
	a.cache = make(map[scanKey][]Field)
	a.mu.Unlock()
}

// CacheSize returns the number of cached scans.
func (a *Analyzer) CacheSize() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.cache)
}

// structOf returns t, or its element for a pointer, when that is a struct.
func structOf(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return t
}

func appendIndex(index []int, i int) []int {
	out := make([]int, len(index)+1)
	copy(out, index)
	out[len(index)] = i
	return out
}
