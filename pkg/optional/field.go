// Package optional models request fields that can be omitted, sent as null, or sent with a value.
package optional

import (
	"bytes"
	"encoding/json"
)

// Field is the tri-state value of a partial-update field. The zero value is "absent".
type Field[T any] struct {
	present bool
	null    bool
	value   T
}

// Of returns a present field holding v.
func Of[T any](v T) Field[T] {
	return Field[T]{present: true, value: v}
}

// Null returns a present field explicitly set to null.
func Null[T any]() Field[T] {
	return Field[T]{present: true, null: true}
}

// Present is true when the field was sent, with or without a value.
func (f Field[T]) Present() bool { return f.present }

// IsNull is true only when the field was sent as null.
func (f Field[T]) IsNull() bool { return f.present && f.null }

// HasValue is true when the field was sent with a concrete value.
func (f Field[T]) HasValue() bool { return f.present && !f.null }

// Value returns the concrete value and whether there is one.
func (f Field[T]) Value() (T, bool) {
	return f.value, f.HasValue()
}

// Ptr returns nil for null, the value's address otherwise. Callers check Present first.
func (f Field[T]) Ptr() *T {
	if !f.HasValue() {
		return nil
	}
	v := f.value
	return &v
}

// UnmarshalJSON is only invoked for keys present in the document, including explicit null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.null = true
		var zero T
		f.value = zero
		return nil
	}
	f.null = false
	return json.Unmarshal(data, &f.value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.HasValue() {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
