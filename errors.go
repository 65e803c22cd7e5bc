package mockcoll

import (
	"errors"
	"reflect"
	"strings"

	"github.com/junioryono/mockcoll/collection"
	"github.com/junioryono/mockcoll/internal/reflection"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// Every error returned by mockcoll wraps one of these in a CollectionsError.
// Match them with errors.Is.

var (
	// Target errors.
	ErrInvalidTarget = reflection.ErrInvalidTarget
	ErrMalformedTag  = reflection.ErrMalformedTag

	// Resolution errors.
	ErrNotACollection = errors.New("field is not a collection")

	// Construction errors.
	ErrAbstractType          = errors.New("the type is abstract")
	ErrUnknownCollectionType = errors.New("do not know how to instantiate")
	ErrUnknownElementType    = errors.New("no collection family registered for element type")
	ErrNoAdapter             = errors.New("no adapter registered for collection interface")
	ErrElementMismatch       = collection.ErrElementMismatch
	ErrUnsupportedOperation  = collection.ErrUnsupportedOperation

	// Initialisation errors.
	ErrNegativeMockCount = errors.New("number of mocks must not be negative")
	ErrNoDouble          = errors.New("no test double factory registered")
)

var _ error = CollectionsError{}

// CollectionsError is the single error kind of mockcoll. It carries the
// operation and the field or type it failed on, and wraps the cause.
type CollectionsError struct {
	Op    string       // "resolve", "initialise", "create" or "inject"
	Field string       // field path, empty when not field specific
	Type  reflect.Type // type being handled, may be nil
	Cause error
}

func (e CollectionsError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Type != nil {
		b.WriteString(" (")
		b.WriteString(reflection.FormatType(e.Type))
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e CollectionsError) Unwrap() error {
	return e.Cause
}

// IsConfiguration reports whether err stems from how a fixture is tagged or
// declared rather than from a missing registration.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrMalformedTag) ||
		errors.Is(err, ErrNegativeMockCount) ||
		errors.Is(err, ErrNotACollection) ||
		errors.Is(err, ErrInvalidTarget)
}

// IsUnsupported reports whether err is an unsupported sorted set operation.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedOperation)
}

func newError(op, field string, t reflect.Type, cause error) error {
	var ce CollectionsError
	if errors.As(cause, &ce) {
		return cause
	}
	return CollectionsError{Op: op, Field: field, Type: t, Cause: cause}
}
