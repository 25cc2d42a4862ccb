package streamable

import "iter"

// source is the single-pass producer backing a Stream.
// It is opened once, by the terminal operation.
type source struct {
	// func() (func() (T, bool), func()) for the element type of the first handle.
	typed any
	open  func() (next func() (any, bool), stop func())
}

func newSource[T any](open func() (func() (T, bool), func())) *source {
	return &source{
		typed: open,
		open: func() (func() (any, bool), func()) {
			next, stop := open()

			return func() (any, bool) {
				v, ok := next()
				if !ok {
					return nil, false
				}

				return v, true
			}, stop
		},
	}
}

func noop() {}

func fromNext[T any](next func() (T, bool)) Stream[T] {
	return newStream[T](newSource(func() (func() (T, bool), func()) {
		return next, noop
	}))
}

// Of returns Stream over elements.
func Of[T any](elements ...T) Stream[T] {
	return FromSlice(elements)
}

// FromSlice returns Stream over items in order.
func FromSlice[T any](items []T) Stream[T] {
	return newStream[T](newSource(func() (func() (T, bool), func()) {
		i := 0

		return func() (T, bool) {
			if i >= len(items) {
				var zero T
				return zero, false
			}

			i++

			return items[i-1], true
		}, noop
	}))
}

// Just returns Stream of a single element.
func Just[T any](v T) Stream[T] {
	return FromSlice([]T{v})
}

// Empty returns Stream without elements.
func Empty[T any]() Stream[T] {
	return fromNext(func() (T, bool) {
		var zero T
		return zero, false
	})
}

// OfNullable returns Stream of *v, or empty Stream if v is nil.
func OfNullable[T any](v *T) Stream[T] {
	if v == nil {
		return Empty[T]()
	}

	return Just(*v)
}

// FromSeq returns Stream pulling from seq.
// seq is iterated at most once.
func FromSeq[T any](seq iter.Seq[T]) Stream[T] {
	return newStream[T](newSource(func() (func() (T, bool), func()) {
		return iter.Pull(seq)
	}))
}

// FromFunc returns Stream calling next until it reports false.
func FromFunc[T any](next func() (T, bool)) Stream[T] {
	done := false

	return fromNext(func() (T, bool) {
		var zero T
		if done {
			return zero, false
		}

		v, ok := next()
		if !ok {
			done = true
			return zero, false
		}

		return v, true
	})
}

// FromChan returns Stream receiving from ch until it is closed.
func FromChan[T any](ch <-chan T) Stream[T] {
	return fromNext(func() (T, bool) {
		v, ok := <-ch
		return v, ok
	})
}

// Iterate returns infinite Stream seed, next(seed), next(next(seed)), ...
func Iterate[T any](seed T, next func(T) T) Stream[T] {
	return IterateWhile(seed, func(T) bool { return true }, next)
}

// IterateWhile is like Iterate but ends before the first element hasNext rejects.
// Successors are computed only when requested.
func IterateWhile[T any](seed T, hasNext func(T) bool, next func(T) T) Stream[T] {
	return newStream[T](newSource(func() (func() (T, bool), func()) {
		current, started, done := seed, false, false

		return func() (T, bool) {
			var zero T
			if done {
				return zero, false
			}

			if started {
				current = next(current)
			}

			started = true

			if !hasNext(current) {
				done = true
				return zero, false
			}

			return current, true
		}, noop
	}))
}

// Generate returns infinite Stream of values produced by fn.
func Generate[T any](fn func() T) Stream[T] {
	return fromNext(func() (T, bool) {
		return fn(), true
	})
}
