package enum

import (
	"fmt"
	"reflect"
)

var enumManager = map[string]any{}

type enum[T comparable] struct {
	toEnum map[string]T
}

func New[T comparable](value T) T {
	v := reflect.ValueOf(value)
	t := v.Type()
	if _, ok := enumManager[t.Name()]; !ok {
		enumManager[t.Name()] = enum[T]{toEnum: make(map[string]T)}
	}

	enumManager[t.Name()].(enum[T]).toEnum[v.String()] = value
	return value
}

func ToEnum[T comparable](s string) (T, error) {
	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT).Name()]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.(enum[T]).toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}

// Enum returns every registered value of the enum type, in no particular
// order. The argument is only used to infer the type.
func Enum[T comparable](_ T) []T {
	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT).Name()]
	if !ok {
		return nil
	}

	values := []T{}
	for _, v := range e.(enum[T]).toEnum {
		values = append(values, v)
	}

	return values
}

// ToString returns the registered string form of an enum value, or an
// empty string if the value was never registered with New.
func ToString[T comparable](value T) string {
	v := reflect.ValueOf(value)
	e, ok := enumManager[v.Type().Name()]
	if !ok {
		return ""
	}

	for s, registered := range e.(enum[T]).toEnum {
		if registered == value {
			return s
		}
	}

	return ""
}
