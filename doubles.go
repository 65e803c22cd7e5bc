package mockcoll

import (
	"fmt"
	"reflect"
	"sync"
)

var _ MockStrategy = (*Doubles)(nil)

// Doubles is the default MockStrategy: a registry of test double factories
// keyed by the type they produce.
//
// Go cannot synthesise an implementation of an interface at runtime, so every
// element type used with collectionOfMocks needs a factory. Factories
// typically return a fresh testify mock:
//
//	doubles := mockcoll.NewDoubles()
//	mockcoll.RegisterDouble(doubles, func() Listener { return new(MockListener) })
//
// Doubles are kept in ordered sets, so factories must return comparable
// values such as pointers.
//
// Doubles is safe for concurrent use.
type Doubles struct {
	mu        sync.RWMutex
	factories map[reflect.Type]func() any
}

// NewDoubles creates an empty registry.
func NewDoubles() *Doubles {
	return &Doubles{factories: make(map[reflect.Type]func() any)}
}

// RegisterDouble registers factory as the source of doubles of type T,
// replacing any earlier factory for T.
func RegisterDouble[T any](d *Doubles, factory func() T) {
	d.Register(reflect.TypeFor[T](), func() any { return factory() })
}

// Register registers an untyped factory for t.
func (d *Doubles) Register(t reflect.Type, factory func() any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.factories[t] = factory
}

// Contains reports whether a factory is registered for t.
func (d *Doubles) Contains(t reflect.Type) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.factories[t]
	return ok
}

// Count returns the number of registered factories.
func (d *Doubles) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.factories)
}

// CreateMock returns a fresh double of type t.
func (d *Doubles) CreateMock(t reflect.Type) (any, error) {
	d.mu.RLock()
	factory, ok := d.factories[t]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrNoDouble, t)
	}

	double := factory()
	if double == nil {
		return nil, fmt.Errorf("%w: factory for %s returned nil", ErrNoDouble, t)
	}
	return double, nil
}
