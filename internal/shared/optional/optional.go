// Package optional models collaborators that may be absent from the configuration.
package optional

// Value is either Some(handle) or None. The zero value is None.
type Value[T any] struct {
	v  T
	ok bool
}

// Some wraps a configured handle.
func Some[T any](v T) Value[T] {
	return Value[T]{v: v, ok: true}
}

// None returns an unconfigured value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// Get returns the handle and whether it is configured.
func (o Value[T]) Get() (T, bool) {
	return o.v, o.ok
}

// Configured reports whether a handle is present.
func (o Value[T]) Configured() bool {
	return o.ok
}
