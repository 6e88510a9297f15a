package registry

import (
	"fmt"
	"strconv"

	"github.com/conneroisu/htmplate/internal/types"
)

// Decoder parses a raw attribute value into a typed value. A decode failure
// only marks the attribute as invalid; decoders must not panic.
type Decoder[T any] func(raw string) (T, error)

// Optional holds an attribute that may be left out. Set is false when the
// attribute was not provided.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some creates a provided optional value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{Value: value, Set: true}
}

// Get returns the value and whether it was provided.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// Or returns the value, or fallback when it was not provided.
func (o Optional[T]) Or(fallback T) T {
	if !o.Set {
		return fallback
	}
	return o.Value
}

// Field describes one attribute of a component and how to bind it.
type Field struct {
	Spec types.AttributeSpec

	// decode returns a commit func that moves the decoded value into the
	// component. Commits only run once every field validated.
	decode func(raw string) (commit func(), err error)
}

// Value declares a required attribute decoded with decode.
func Value[T any](name, description string, target *T, decode Decoder[T]) Field {
	return Field{
		Spec: types.AttributeSpec{Name: name, Description: description, Required: true},
		decode: func(raw string) (func(), error) {
			value, err := decode(raw)
			if err != nil {
				return nil, err
			}
			return func() { *target = value }, nil
		},
	}
}

// OptionalValue declares an optional attribute decoded with decode.
func OptionalValue[T any](name, description string, target *Optional[T], decode Decoder[T]) Field {
	return Field{
		Spec: types.AttributeSpec{Name: name, Description: description},
		decode: func(raw string) (func(), error) {
			value, err := decode(raw)
			if err != nil {
				return nil, err
			}
			return func() { *target = Some(value) }, nil
		},
	}
}

// String declares a required text attribute.
func String(name, description string, target *string) Field {
	return Value(name, description, target, DecodeString)
}

// Bool declares a required boolean attribute.
func Bool(name, description string, target *bool) Field {
	return Value(name, description, target, DecodeBool)
}

// Int declares a required integer attribute.
func Int(name, description string, target *int) Field {
	return Value(name, description, target, DecodeInt)
}

// OptionalString declares an optional text attribute.
func OptionalString(name, description string, target *Optional[string]) Field {
	return OptionalValue(name, description, target, DecodeString)
}

// OptionalBool declares an optional boolean attribute.
func OptionalBool(name, description string, target *Optional[bool]) Field {
	return OptionalValue(name, description, target, DecodeBool)
}

// OptionalInt declares an optional integer attribute.
func OptionalInt(name, description string, target *Optional[int]) Field {
	return OptionalValue(name, description, target, DecodeInt)
}

// DecodeString accepts any value.
func DecodeString(raw string) (string, error) {
	return raw, nil
}

// DecodeBool accepts exactly "true" or "false".
func DecodeBool(raw string) (bool, error) {
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%q is not true or false", raw)
	}
}

// DecodeInt accepts base 10 integers.
func DecodeInt(raw string) (int, error) {
	return strconv.Atoi(raw)
}
