package streamable

import "slices"

// Streak is a run of consecutive equal elements.
type Streak[T any] struct {
	Value T
	Count int64
}

// Distinct keeps the first occurrence of every element.
func Distinct[T comparable](s Streamer[T]) Stream[T] {
	return DistinctBy(s, func(v T) T { return v })
}

// DistinctBy keeps the first element for every key.
func DistinctBy[T any, K comparable](s Streamer[T], key func(T) K) Stream[T] {
	seen := make(map[K]struct{})

	return extend[T, T](s.stream(), "DistinctBy", gatherStage[T, T](GatherFunc[T, T](func(v T, emit func(T)) bool {
		k := key(v)
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			emit(v)
		}

		return false
	})))
}

// Group emits single map of every distinct element to its occurrences.
func Group[T comparable](s Streamer[T]) Stream[map[T][]T] {
	return GroupBy(s, func(v T) T { return v })
}

// GroupBy emits single map of keys to elements sharing them, in encounter order.
func GroupBy[T any, K comparable](s Streamer[T], key func(T) K) Stream[map[K][]T] {
	groups := make(map[K][]T)

	return extend[T, map[K][]T](s.stream(), "GroupBy", gatherStage[T, map[K][]T](&BaseGatherer[T, map[K][]T]{
		ApplyFunc: func(v T, _ func(map[K][]T)) bool {
			k := key(v)
			groups[k] = append(groups[k], v)

			return false
		},
		FinishFunc: func(emit func(map[K][]T)) {
			emit(groups)
		},
	}))
}

// Counts emits single map of every distinct element to number of its occurrences.
func Counts[T comparable](s Streamer[T]) Stream[map[T]int64] {
	return CountsBy(s, func(v T) T { return v })
}

// CountsBy emits single map of keys to number of elements sharing them.
func CountsBy[T any, K comparable](s Streamer[T], key func(T) K) Stream[map[K]int64] {
	counts := make(map[K]int64)

	return extend[T, map[K]int64](s.stream(), "CountsBy", gatherStage[T, map[K]int64](&BaseGatherer[T, map[K]int64]{
		ApplyFunc: func(v T, _ func(map[K]int64)) bool {
			counts[key(v)]++

			return false
		},
		FinishFunc: func(emit func(map[K]int64)) {
			emit(counts)
		},
	}))
}

// WindowFixed groups s into consecutive non-overlapping windows of size elements.
// A trailing window shorter than size is emitted only if keepPartial is set.
func WindowFixed[T any](s Streamer[T], size int, keepPartial bool) Stream[[]T] {
	if size < 1 {
		panic(invalidArgument("WindowFixed", "window size %d is less than 1", size))
	}

	window := make([]T, 0, size)

	return extend[T, []T](s.stream(), "WindowFixed", gatherStage[T, []T](&BaseGatherer[T, []T]{
		ApplyFunc: func(v T, emit func([]T)) bool {
			window = append(window, v)
			if len(window) == size {
				emit(window)
				window = make([]T, 0, size)
			}

			return false
		},
		FinishFunc: func(emit func([]T)) {
			if keepPartial && len(window) > 0 {
				emit(window)
			}
		},
	}))
}

// WindowSliding emits every run of size consecutive elements, advancing by one.
// If s is shorter than size, nothing is emitted unless keepPartial is set,
// in which case the whole s is emitted as one window.
func WindowSliding[T any](s Streamer[T], size int, keepPartial bool) Stream[[]T] {
	if size < 1 {
		panic(invalidArgument("WindowSliding", "window size %d is less than 1", size))
	}

	var (
		window  = make([]T, 0, size)
		emitted bool
	)

	return extend[T, []T](s.stream(), "WindowSliding", gatherStage[T, []T](&BaseGatherer[T, []T]{
		ApplyFunc: func(v T, emit func([]T)) bool {
			if len(window) == size {
				window = slices.Delete(window, 0, 1)
			}

			window = append(window, v)
			if len(window) == size {
				emit(slices.Clone(window))
				emitted = true
			}

			return false
		},
		FinishFunc: func(emit func([]T)) {
			if keepPartial && !emitted && len(window) > 0 {
				emit(window)
			}
		},
	}))
}

// Drop discards every n-th element, starting with the element at index offset.
// Offset must be in [0, n).
func (s Stream[T]) Drop(n, offset int64) Stream[T] {
	validateStride("Drop", n, offset)

	countdown := offset

	return s.gather("Drop", GatherFunc[T, T](func(v T, emit func(T)) bool {
		if countdown > 0 {
			countdown--
			emit(v)

			return false
		}

		countdown = n - 1

		// every element is dropped from now on
		return n == 1
	}))
}

// Keep emits every n-th element, starting with the element at index offset.
// Offset must be in [0, n).
func (s Stream[T]) Keep(n, offset int64) Stream[T] {
	validateStride("Keep", n, offset)

	countdown := offset

	return s.gather("Keep", GatherFunc[T, T](func(v T, emit func(T)) bool {
		if countdown > 0 {
			countdown--

			return false
		}

		countdown = n - 1
		emit(v)

		return false
	}))
}

func validateStride(op string, n, offset int64) {
	switch {
	case n < 1:
		panic(invalidArgument(op, "stride %d is less than 1", n))
	case offset < 0 || offset >= n:
		panic(invalidArgument(op, "offset %d is out of [0, %d)", offset, n))
	}
}

// ConsecutiveCount emits a Streak for every run of equal adjacent elements.
func ConsecutiveCount[T comparable](s Streamer[T]) Stream[Streak[T]] {
	return ConsecutiveCountBy(s, func(a, b T) bool { return a == b })
}

// ConsecutiveCountBy is like ConsecutiveCount but compares adjacent elements with equal.
// Every element is compared to the first element of the current run.
func ConsecutiveCountBy[T any](s Streamer[T], equal func(a, b T) bool) Stream[Streak[T]] {
	var current *Streak[T]

	return extend[T, Streak[T]](s.stream(), "ConsecutiveCountBy", gatherStage[T, Streak[T]](&BaseGatherer[T, Streak[T]]{
		ApplyFunc: func(v T, emit func(Streak[T])) bool {
			switch {
			case current == nil:
				current = &Streak[T]{Value: v, Count: 1}
			case equal(current.Value, v):
				current.Count++
			default:
				emit(*current)
				current = &Streak[T]{Value: v, Count: 1}
			}

			return false
		},
		FinishFunc: func(emit func(Streak[T])) {
			if current != nil {
				emit(*current)
				current = nil
			}
		},
	}))
}

// AllElements emits single slice holding every element of s.
// Empty s produces one empty slice.
func AllElements[T any](s Streamer[T]) Stream[[]T] {
	items := []T{}

	return extend[T, []T](s.stream(), "AllElements", gatherStage[T, []T](&BaseGatherer[T, []T]{
		ApplyFunc: func(v T, _ func([]T)) bool {
			items = append(items, v)

			return false
		},
		FinishFunc: func(emit func([]T)) {
			emit(items)
		},
	}))
}

// ToSet collects distinct elements of s.
func ToSet[T comparable](s Streamer[T]) map[T]struct{} {
	set := make(map[T]struct{})

	return Collect[T, map[T]struct{}](s, &BaseCollector[T, map[T]struct{}]{
		ApplyFunc: func(v T) bool {
			set[v] = struct{}{}

			return false
		},
		FinishFunc: func() map[T]struct{} { return set },
	})
}

// ToMap collects s into a map. Later elements overwrite earlier ones with the same key.
func ToMap[T any, K comparable, V any](s Streamer[T], key func(T) K, value func(T) V) map[K]V {
	m := make(map[K]V)

	return Collect[T, map[K]V](s, &BaseCollector[T, map[K]V]{
		ApplyFunc: func(v T) bool {
			m[key(v)] = value(v)

			return false
		},
		FinishFunc: func() map[K]V { return m },
	})
}
