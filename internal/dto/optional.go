package dto

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state slot for partial updates: absent, set to null, or
// set to a value. The zero value is absent.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a slot set to v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null returns a slot explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked for keys present in the payload, which is
// what distinguishes an absent slot from an explicit null.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON renders absent and null slots as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// OrNull turns an absent slot into an explicit null. PUT requests use it to
// overwrite every mutable column.
func (o Optional[T]) OrNull() Optional[T] {
	if !o.Set {
		return Null[T]()
	}
	return o
}

// Ptr returns nil for null and a pointer to the value otherwise.
func (o Optional[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}
