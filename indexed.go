package streamable

import "iter"

// IndexedStream is a Stream whose operations see the zero-based position of every element.
// Positions count elements reaching the operation, not elements of the source.
type IndexedStream[T any] struct {
	Stream[T]
}

// Indexed projects s onto IndexedStream.
func Indexed[T any](s Streamer[T]) IndexedStream[T] {
	if v, ok := s.(IndexedStream[T]); ok {
		return v
	}

	return IndexedStream[T]{s.stream()}
}

func indexedGatherer[T, R any](fn func(v T, i int64, emit func(R)) bool) Gatherer[T, R] {
	var i int64

	return GatherFunc[T, R](func(v T, emit func(R)) bool {
		i++

		return fn(v, i-1, emit)
	})
}

func (s IndexedStream[T]) gatherIndexed(op string, fn func(v T, i int64, emit func(T)) bool) IndexedStream[T] {
	return IndexedStream[T]{extend[T, T](s.Stream, op, gatherStage(indexedGatherer(fn)))}
}

// FilterIndexed keeps elements for which predicate reports true.
func (s IndexedStream[T]) FilterIndexed(predicate func(v T, i int64) bool) IndexedStream[T] {
	return s.gatherIndexed("FilterIndexed", func(v T, i int64, emit func(T)) bool {
		if predicate(v, i) {
			emit(v)
		}

		return false
	})
}

// PeekIndexed calls action for every element passing through.
func (s IndexedStream[T]) PeekIndexed(action func(v T, i int64)) IndexedStream[T] {
	return s.gatherIndexed("PeekIndexed", func(v T, i int64, emit func(T)) bool {
		action(v, i)
		emit(v)

		return false
	})
}

// TakeWhileIndexed emits elements until predicate first fails.
func (s IndexedStream[T]) TakeWhileIndexed(predicate func(v T, i int64) bool) IndexedStream[T] {
	return s.gatherIndexed("TakeWhileIndexed", func(v T, i int64, emit func(T)) bool {
		if !predicate(v, i) {
			return true
		}

		emit(v)

		return false
	})
}

// DropWhileIndexed discards elements until predicate first fails, then emits the rest.
func (s IndexedStream[T]) DropWhileIndexed(predicate func(v T, i int64) bool) IndexedStream[T] {
	dropping := true

	return s.gatherIndexed("DropWhileIndexed", func(v T, i int64, emit func(T)) bool {
		if dropping && predicate(v, i) {
			return false
		}

		dropping = false
		emit(v)

		return false
	})
}

// MapIndexed transforms every element together with its position.
func MapIndexed[T, R any](s IndexedStream[T], fn func(v T, i int64) R) IndexedStream[R] {
	return IndexedStream[R]{extend[T, R](s.Stream, "MapIndexed", gatherStage(indexedGatherer(func(v T, i int64, emit func(R)) bool {
		emit(fn(v, i))

		return false
	})))}
}

// MapMultiIndexed calls fn for every element and its position; fn emits any number of outputs.
func MapMultiIndexed[T, R any](s IndexedStream[T], fn func(v T, i int64, emit func(R))) IndexedStream[R] {
	return IndexedStream[R]{extend[T, R](s.Stream, "MapMultiIndexed", gatherStage(indexedGatherer(func(v T, i int64, emit func(R)) bool {
		fn(v, i, emit)

		return false
	})))}
}

// FlatMapIndexed replaces every element with the sequence fn returns for it and its position.
func FlatMapIndexed[T, R any](s IndexedStream[T], fn func(v T, i int64) iter.Seq[R]) IndexedStream[R] {
	g := indexedGatherer(func(v T, i int64, emit func(iter.Seq[R])) bool {
		emit(fn(v, i))

		return false
	})

	return IndexedStream[R]{extend[T, R](s.Stream, "FlatMapIndexed", expandingStage(g, expandSeq[R]))}
}
