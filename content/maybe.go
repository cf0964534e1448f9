package content

// Maybe holds either one value (Some) or nothing (None). The zero value is None.
type Maybe[T any] struct {
	value T
	ok    bool
}

// Some wraps v.
func Some[T any](v T) Maybe[T] {
	return Maybe[T]{value: v, ok: true}
}

// None returns an empty Maybe.
func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// Get returns the value and whether it is present.
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.ok
}

// IsSome reports whether a value is present.
func (m Maybe[T]) IsSome() bool {
	return m.ok
}
