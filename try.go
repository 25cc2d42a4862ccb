package streamable

import "fmt"

// Try carries either a success value or a failure through a Stream.
type Try[T any] struct {
	value T
	err   error
}

// Success returns successful Try holding v.
func Success[T any](v T) Try[T] {
	return Try[T]{value: v}
}

// Failure returns failed Try holding err.
// A nil err is replaced with ErrNilFailure so that the Try stays failed.
func Failure[T any](err error) Try[T] {
	if err == nil {
		err = ErrNilFailure
	}

	return Try[T]{err: err}
}

// TryOf converts (value, error) pair to Try.
func TryOf[T any](v T, err error) Try[T] {
	if err != nil {
		return Try[T]{err: err}
	}

	return Success(v)
}

func (t Try[T]) Successful() bool {
	return t.err == nil
}

func (t Try[T]) Failed() bool {
	return t.err != nil
}

// Returns success value or zero value of T for a failure.
func (t Try[T]) Get() T {
	return t.value
}

// Returns failure or nil.
func (t Try[T]) Err() error {
	return t.err
}

func (t Try[T]) Unpack() (T, error) {
	return t.value, t.err
}

func (t Try[T]) String() string {
	if t.err != nil {
		return fmt.Sprintf("Failure(%s)", t.err)
	}

	return fmt.Sprintf("Success(%v)", t.value)
}

// Selector tells whether a Try belongs to a branch.
type Selector[T any] interface {
	Matches(Try[T]) bool
}

// Branch selects one side of a Try and unwraps it to U.
type Branch[T, U any] struct {
	match  func(Try[T]) bool
	unwrap func(Try[T]) U
}

func (b Branch[T, U]) Matches(t Try[T]) bool {
	return b.match(t)
}

func (b Branch[T, U]) Unwrap(t Try[T]) U {
	return b.unwrap(t)
}

// Successful selects successes, unwrapping to the value.
func Successful[T any]() Branch[T, T] {
	return Branch[T, T]{
		match:  Try[T].Successful,
		unwrap: Try[T].Get,
	}
}

// Failed selects failures, unwrapping to the error.
func Failed[T any]() Branch[T, error] {
	return Branch[T, error]{
		match:  Try[T].Failed,
		unwrap: Try[T].Err,
	}
}
