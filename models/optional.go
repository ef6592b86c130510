// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state value used for partial updates.
//
// The zero value is "omitted". Null marks a field that must be cleared,
// Some carries a concrete value. When decoded from JSON, a missing key stays
// omitted, a literal null becomes Null and anything else becomes Some.
type Optional[T any] struct {
	// Set reports whether the field was supplied at all.
	Set bool
	// Valid reports whether the supplied value is non-null.
	Valid bool
	Value T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null returns an Optional that explicitly clears the field.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// Get returns the value and whether it is present and non-null.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set && o.Valid
}

// SQLValue returns the value to bind in a query: the value itself or nil
// for null. The result is meaningless for an omitted field.
func (o Optional[T]) SQLValue() any {
	if !o.Valid {
		return nil
	}
	return o.Value
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}

	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
