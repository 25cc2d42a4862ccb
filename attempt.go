package streamable

import (
	"fmt"

	"github.com/andriiyaremenko/streamable/internal"
)

// Attempt is a transform that may fail.
type Attempt[T, U any] func(T) (U, error)

// Constructs Attempt from function, that has only error output.
func LiftErr[U, T any, Fn func(T) error](fn Fn) Attempt[T, U] {
	return func(v T) (U, error) {
		return internal.ZeroValue[U](), fn(v)
	}
}

// Constructs Attempt from function, that has no error output.
func LiftOk[T, U any, Fn func(T) U](fn Fn) Attempt[T, U] {
	return func(v T) (U, error) {
		return fn(v), nil
	}
}

// Constructs Attempt from function, that signals failure by panicking.
// Recovered panic is returned as an error.
func LiftPanics[T, U any, Fn func(T) U](fn Fn) Attempt[T, U] {
	return recovering(LiftOk[T, U](fn))
}

// Combines two Attempts into one with input type T and output type N.
func AppendAttempt[T, U, N any, A1 ~func(T) (U, error), A2 ~func(U) (N, error)](a1 A1, a2 A2) Attempt[T, N] {
	return func(payload T) (N, error) {
		v, err := a1(payload)
		if err != nil {
			return internal.ZeroValue[N](), err
		}

		return a2(v)
	}
}

// Combines an Attempt and error Attempt into one with input type T and output type U.
func AppendErrAttempt[T, U any, A ~func(T) (U, error), ErrA ~func(error) (U, error)](a A, errA ErrA) Attempt[T, U] {
	return func(payload T) (U, error) {
		v, err := a(payload)
		if err != nil {
			return errA(err)
		}

		return v, nil
	}
}

// recovering runs attempt and converts a panic into an error wrapping ErrRecovered.
func recovering[T, U any](attempt Attempt[T, U]) Attempt[T, U] {
	return func(payload T) (v U, err error) {
		defer func() {
			if r := recover(); r != nil {
				v = internal.ZeroValue[U]()
				err = fmt.Errorf("%w: %v", ErrRecovered, r)
			}
		}()

		return attempt(payload)
	}
}
