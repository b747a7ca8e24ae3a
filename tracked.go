package sprig

// Tracked wraps a value with a change counter. Reads go through Get; every
// write must go through GetMut, which bumps the version so consumers (the
// render upload) can skip unchanged frames.
type Tracked[T any] struct {
	value   T
	version uint64
}

// NewTracked returns a Tracked holding v at version zero.
func NewTracked[T any](v T) Tracked[T] {
	return Tracked[T]{value: v}
}

// Get returns the current value. Reference types (slices, maps) returned
// here MUST NOT be mutated; use GetMut.
func (t *Tracked[T]) Get() T {
	return t.value
}

// GetMut returns a pointer to the value and increments the version.
func (t *Tracked[T]) GetMut() *T {
	t.version++
	return &t.value
}

// Version returns the number of GetMut calls so far.
func (t *Tracked[T]) Version() uint64 {
	return t.version
}
