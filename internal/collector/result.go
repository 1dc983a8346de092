package collector

import "fmt"

// Result carries either a collected value or the error that prevented it.
type Result[T any] struct {
	value T
	err   error
}

// OK wraps a successfully collected value.
func OK[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail wraps a collection error.
func Fail[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Value returns the collected value and the collection error, if any.
func (r Result[T]) Value() (T, error) {
	return r.value, r.err
}

func (r Result[T]) Err() error { return r.err }

// CollectionError scopes a failure to the operation that hit it, e.g.
// "get CPU info" or "read partition".
type CollectionError struct {
	Op  string
	Err error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("Failed to %s: %v", e.Op, e.Err)
}

func (e *CollectionError) Unwrap() error { return e.Err }

func failed(op string, err error) *CollectionError {
	return &CollectionError{Op: op, Err: err}
}
