package streamable

import (
	"iter"
	"slices"
)

func (s Stream[T]) gather(op string, g Gatherer[T, T]) Stream[T] {
	return extend[T, T](s, op, gatherStage(g))
}

// Filter keeps elements matching predicate.
func (s Stream[T]) Filter(predicate func(T) bool) Stream[T] {
	return s.gather("Filter", GatherFunc[T, T](func(v T, emit func(T)) bool {
		if predicate(v) {
			emit(v)
		}

		return false
	}))
}

// Peek calls action for every element passing through.
func (s Stream[T]) Peek(action func(T)) Stream[T] {
	return s.gather("Peek", GatherFunc[T, T](func(v T, emit func(T)) bool {
		action(v)
		emit(v)

		return false
	}))
}

// Limit truncates s to at most n elements.
// Exactly min(n, len) elements are pulled from upstream; Limit(0) pulls nothing.
func (s Stream[T]) Limit(n int64) Stream[T] {
	if n < 0 {
		panic(invalidArgument("Limit", "negative size %d", n))
	}

	left := n

	st := gatherStage[T, T](GatherFunc[T, T](func(v T, emit func(T)) bool {
		emit(v)
		left--

		return left == 0
	}))
	st.stopped = n == 0

	return extend[T, T](s, "Limit", st)
}

// Skip discards the first n elements.
func (s Stream[T]) Skip(n int64) Stream[T] {
	if n < 0 {
		panic(invalidArgument("Skip", "negative count %d", n))
	}

	left := n

	return s.gather("Skip", GatherFunc[T, T](func(v T, emit func(T)) bool {
		if left > 0 {
			left--
			return false
		}

		emit(v)

		return false
	}))
}

// TakeWhile emits elements until predicate first fails.
func (s Stream[T]) TakeWhile(predicate func(T) bool) Stream[T] {
	return s.gather("TakeWhile", GatherFunc[T, T](func(v T, emit func(T)) bool {
		if !predicate(v) {
			return true
		}

		emit(v)

		return false
	}))
}

// DropWhile discards elements until predicate first fails, then emits the rest.
func (s Stream[T]) DropWhile(predicate func(T) bool) Stream[T] {
	dropping := true

	return s.gather("DropWhile", GatherFunc[T, T](func(v T, emit func(T)) bool {
		if dropping && predicate(v) {
			return false
		}

		dropping = false
		emit(v)

		return false
	}))
}

// SortedFunc buffers s and emits it stably sorted by compare.
func (s Stream[T]) SortedFunc(compare func(a, b T) int) Stream[T] {
	var buf []T

	return flatGatherSlices[T, T](s, "SortedFunc", &BaseGatherer[T, []T]{
		ApplyFunc: func(v T, _ func([]T)) bool {
			buf = append(buf, v)

			return false
		},
		FinishFunc: func(emit func([]T)) {
			slices.SortStableFunc(buf, compare)
			emit(buf)
			buf = nil
		},
	})
}

// Scan emits running accumulation of s: the first element, then fn(acc, v) for every next one.
func (s Stream[T]) Scan(fn func(acc, v T) T) Stream[T] {
	var (
		acc     T
		started bool
	)

	return s.gather("Scan", GatherFunc[T, T](func(v T, emit func(T)) bool {
		if started {
			acc = fn(acc, v)
		} else {
			acc, started = v, true
		}

		emit(acc)

		return false
	}))
}

// OnClose registers action to run when the run driving s ends.
func (s Stream[T]) OnClose(action func()) Stream[T] {
	return s.gather("OnClose", &BaseGatherer[T, T]{
		ApplyFunc: func(v T, emit func(T)) bool {
			emit(v)

			return false
		},
		CloseFunc: action,
	})
}

// ElementCount reports number of elements that passed this point once the run ends.
func (s Stream[T]) ElementCount(report func(int64)) Stream[T] {
	var count int64

	return s.gather("ElementCount", &BaseGatherer[T, T]{
		ApplyFunc: func(v T, emit func(T)) bool {
			count++
			emit(v)

			return false
		},
		CloseFunc: func() { report(count) },
	})
}

// Map transforms every element of s with fn.
func Map[T, R any](s Streamer[T], fn func(T) R) Stream[R] {
	return extend[T, R](s.stream(), "Map", gatherStage(MapFunc(fn)))
}

// MapMulti calls fn for every element; fn emits any number of outputs.
func MapMulti[T, R any](s Streamer[T], fn func(v T, emit func(R))) Stream[R] {
	return extend[T, R](s.stream(), "MapMulti", gatherStage[T, R](GatherFunc[T, R](func(v T, emit func(R)) bool {
		fn(v, emit)

		return false
	})))
}

// FlatMap replaces every element with the sequence fn returns.
// A nil sequence is treated as empty.
func FlatMap[T, R any](s Streamer[T], fn func(T) iter.Seq[R]) Stream[R] {
	return extend[T, R](s.stream(), "FlatMap", expandingStage[T, iter.Seq[R]](GatherFunc[T, iter.Seq[R]](func(v T, emit func(iter.Seq[R])) bool {
		emit(fn(v))

		return false
	}), expandSeq[R]))
}

// FlatMapSlice replaces every element with the slice fn returns.
func FlatMapSlice[T, R any](s Streamer[T], fn func(T) []R) Stream[R] {
	return flatGatherSlices[T, R](s, "FlatMapSlice", GatherFunc[T, []R](func(v T, emit func([]R)) bool {
		emit(fn(v))

		return false
	}))
}

// FlatMapMulti calls fn for every element; fn emits any number of sequences,
// drained in emission order.
func FlatMapMulti[T, R any](s Streamer[T], fn func(v T, emit func(iter.Seq[R]))) Stream[R] {
	return extend[T, R](s.stream(), "FlatMapMulti", expandingStage[T, iter.Seq[R]](GatherFunc[T, iter.Seq[R]](func(v T, emit func(iter.Seq[R])) bool {
		fn(v, emit)

		return false
	}), expandSeq[R]))
}

// Fold emits single element: fn applied to seed and every element of s in order.
func Fold[T, R any](s Streamer[T], seed R, fn func(acc R, v T) R) Stream[R] {
	acc := seed

	return extend[T, R](s.stream(), "Fold", gatherStage[T, R](&BaseGatherer[T, R]{
		ApplyFunc: func(v T, _ func(R)) bool {
			acc = fn(acc, v)

			return false
		},
		FinishFunc: func(emit func(R)) {
			emit(acc)
		},
	}))
}

// Concat returns Stream of elements of first followed by elements of every other stream.
// Every argument is consumed; a part is opened only when reached.
// Stages of parts never reached are still closed when the run ends.
func Concat[T any](first Streamer[T], others ...Streamer[T]) Stream[T] {
	parts := make([]*pipeline, 0, len(others)+1)

	for _, s := range append([]Streamer[T]{first}, others...) {
		h := s.stream()
		h.p.consume("Concat", h.gen)
		parts = append(parts, h.p)
	}

	started := 0

	return extend[*pipeline, T](FromSlice(parts), "Concat", expandingStage[*pipeline, iter.Seq[T]](
		&BaseGatherer[*pipeline, iter.Seq[T]]{
			ApplyFunc: func(p *pipeline, emit func(iter.Seq[T])) bool {
				emit(func(yield func(T) bool) {
					started++
					newIterator[T](p).all()(yield)
				})

				return false
			},
			CloseFunc: func() {
				for _, p := range parts[started:] {
					for _, st := range p.stages {
						st.close()
					}
				}
			},
		},
		expandSeq[T],
	))
}

// ToSlice collects s into a slice.
func (s Stream[T]) ToSlice() []T {
	var items []T

	return Collect[T, []T](s, &BaseCollector[T, []T]{
		ApplyFunc: func(v T) bool {
			items = append(items, v)

			return false
		},
		FinishFunc: func() []T { return items },
	})
}

// Count returns number of elements in s.
func (s Stream[T]) Count() int64 {
	var n int64

	return Collect[T, int64](s, &BaseCollector[T, int64]{
		ApplyFunc: func(T) bool {
			n++

			return false
		},
		FinishFunc: func() int64 { return n },
	})
}

// AnyMatch reports whether some element matches predicate.
// Evaluation stops at the first match.
func (s Stream[T]) AnyMatch(predicate func(T) bool) bool {
	found := false

	return Collect[T, bool](s, &BaseCollector[T, bool]{
		ApplyFunc: func(v T) bool {
			found = predicate(v)

			return found
		},
		FinishFunc: func() bool { return found },
	})
}

// AllMatch reports whether every element matches predicate.
// It is true for empty Stream.
func (s Stream[T]) AllMatch(predicate func(T) bool) bool {
	return !s.AnyMatch(func(v T) bool { return !predicate(v) })
}

// NoneMatch reports whether no element matches predicate.
func (s Stream[T]) NoneMatch(predicate func(T) bool) bool {
	return !s.AnyMatch(predicate)
}

// FindFirst returns the first element of s.
// Nothing past it is pulled.
func (s Stream[T]) FindFirst() (T, bool) {
	var (
		first T
		found bool
	)

	Collect[T, struct{}](s, &BaseCollector[T, struct{}]{
		ApplyFunc: func(v T) bool {
			first, found = v, true

			return true
		},
	})

	return first, found
}

// Reduce combines elements of s with fn.
// It returns false for empty Stream.
func (s Stream[T]) Reduce(fn func(acc, v T) T) (T, bool) {
	type result struct {
		v  T
		ok bool
	}

	var r result

	r = Collect[T, result](s, &BaseCollector[T, result]{
		ApplyFunc: func(v T) bool {
			if r.ok {
				r.v = fn(r.v, v)
			} else {
				r = result{v: v, ok: true}
			}

			return false
		},
		FinishFunc: func() result { return r },
	})

	return r.v, r.ok
}

// ReduceFrom combines identity and elements of s with fn.
func (s Stream[T]) ReduceFrom(identity T, fn func(acc, v T) T) T {
	acc := identity

	return Collect[T, T](s, &BaseCollector[T, T]{
		ApplyFunc: func(v T) bool {
			acc = fn(acc, v)

			return false
		},
		FinishFunc: func() T { return acc },
	})
}

// MinFunc returns the first smallest element according to compare.
func (s Stream[T]) MinFunc(compare func(a, b T) int) (T, bool) {
	return s.Reduce(func(acc, v T) T {
		if compare(v, acc) < 0 {
			return v
		}

		return acc
	})
}

// MaxFunc returns the first largest element according to compare.
func (s Stream[T]) MaxFunc(compare func(a, b T) int) (T, bool) {
	return s.Reduce(func(acc, v T) T {
		if compare(v, acc) > 0 {
			return v
		}

		return acc
	})
}
