package streamable

import (
	"cmp"
	"slices"
)

// OrderedStream is a Stream of naturally ordered elements.
type OrderedStream[T cmp.Ordered] struct {
	Stream[T]
}

// Ordered projects s onto OrderedStream.
func Ordered[T cmp.Ordered](s Streamer[T]) OrderedStream[T] {
	if v, ok := s.(OrderedStream[T]); ok {
		return v
	}

	return OrderedStream[T]{s.stream()}
}

// Sorted buffers every element and emits them in ascending order.
func (s OrderedStream[T]) Sorted() OrderedStream[T] {
	var buf []T

	return OrderedStream[T]{flatGatherSlices[T, T](s, "Sorted", &BaseGatherer[T, []T]{
		ApplyFunc: func(v T, _ func([]T)) bool {
			buf = append(buf, v)

			return false
		},
		FinishFunc: func(emit func([]T)) {
			slices.Sort(buf)
			emit(buf)
			buf = nil
		},
	})}
}

// Min returns the first smallest element.
func (s OrderedStream[T]) Min() (T, bool) {
	return s.MinFunc(cmp.Compare[T])
}

// Max returns the first largest element.
func (s OrderedStream[T]) Max() (T, bool) {
	return s.MaxFunc(cmp.Compare[T])
}
