package store

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// Equal reports whether a and b hold the same value, comparing recursively.
//
// cmp.Equal refuses values it cannot compare safely (unexported struct
// fields, for instance) by panicking; in that case the result of
// reflect.DeepEqual is used instead. Equal never panics.
func Equal(a, b any, opts ...cmp.Option) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = reflect.DeepEqual(a, b)
		}
	}()
	return cmp.Equal(a, b, opts...)
}

// EqualFunc compares two values of the same type.
type EqualFunc[T any] func(a, b T) bool

func defaultEqual[T any](a, b T) bool {
	return Equal(a, b)
}
