// Package tristate provides the three state value used by generated patches
// for fields that are already optional in the patched type.
package tristate

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type state uint8

const (
	unset state = iota
	null
	value
)

// TriState is either unset (no change requested), null (explicitly cleared) or set to a value.
// The zero value is unset.
type TriState[T any] struct {
	state state
	value T
}

func Unset[T any]() TriState[T] {
	return TriState[T]{}
}

func Null[T any]() TriState[T] {
	return TriState[T]{state: null}
}

func Value[T any](v T) TriState[T] {
	return TriState[T]{state: value, value: v}
}

// FromPtr maps an absent value to Null, never to Unset.
func FromPtr[T any](p *T) TriState[T] {
	if p == nil {
		return Null[T]()
	}
	return Value(*p)
}

func (t TriState[T]) IsUnset() bool { return t.state == unset }

func (t TriState[T]) IsNull() bool { return t.state == null }

func (t TriState[T]) IsSet() bool { return t.state == value }

// IsZero reports the unset state, so `json:",omitzero"` skips untouched fields.
func (t TriState[T]) IsZero() bool { return t.IsUnset() }

func (t TriState[T]) Get() (T, bool) {
	return t.value, t.IsSet()
}

// Ptr returns a pointer to a copy of the value, or nil when no value is set.
func (t TriState[T]) Ptr() *T {
	if !t.IsSet() {
		return nil
	}
	v := t.value
	return &v
}

// Apply writes the state into target: a value replaces it, null clears it, unset leaves it untouched.
func (t TriState[T]) Apply(target **T) {
	switch t.state {
	case value:
		*target = t.Ptr()
	case null:
		*target = nil
	}
}

func (t TriState[T]) String() string {
	switch t.state {
	case value:
		return fmt.Sprint(t.value)
	case null:
		return "null"
	default:
		return "unset"
	}
}

func (t TriState[T]) MarshalJSON() ([]byte, error) {
	if !t.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(t.value)
}

// UnmarshalJSON sets null for the JSON null literal and a value otherwise. Absent JSON fields leave the state unset.
func (t *TriState[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = Null[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = Value(v)
	return nil
}
