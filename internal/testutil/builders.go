package testutil

import (
	"reflect"

	"github.com/junioryono/mockcoll/internal/reflection"
)

// FieldBuilder builds reflection.Field values for tests that stub a field
// retriever.
type FieldBuilder struct {
	field reflection.Field
}

// NewField starts a field named name of type T at index path index.
func NewField[T any](name string, index ...int) *FieldBuilder {
	return &FieldBuilder{field: reflection.Field{
		Name:  name,
		Index: index,
		Type:  reflect.TypeFor[T](),
	}}
}

// Marked adds markers to the field's tag.
func (b *FieldBuilder) Marked(markers ...reflection.Marker) *FieldBuilder {
	b.field.Tag.Markers = append(b.field.Tag.Markers, markers...)
	return b
}

// WithCount sets the count option of the field's tag.
func (b *FieldBuilder) WithCount(n int) *FieldBuilder {
	b.field.Tag.Count = n
	b.field.Tag.HasCount = true
	return b
}

// Build returns the field.
func (b *FieldBuilder) Build() reflection.Field {
	return b.field
}
