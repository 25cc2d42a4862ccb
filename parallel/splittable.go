package parallel

import (
	"math"

	"github.com/andriiyaremenko/streamable"
)

// Splittable is a source of work that can hand part of itself to another worker.
// It is used by one worker at a time.
type Splittable[T any] interface {
	// Calls action with the next element; returns false once exhausted.
	TryAdvance(action func(T)) bool
	// Number of elements left, or math.MaxInt64 when unknown.
	EstimateSize() int64
	// Moves a prefix of remaining elements into a new Splittable.
	// Returns nil when the rest can not be split.
	TrySplit() Splittable[T]
}

var (
	_ Splittable[int64] = new(rangeSplittable)
	_ Splittable[any]   = new(sliceSplittable[any])
	_ Splittable[any]   = new(streamSplittable[any])
)

// Range returns Splittable over integers in [lo, hi).
func Range(lo, hi int64) Splittable[int64] {
	return &rangeSplittable{lo: lo, hi: max(lo, hi)}
}

type rangeSplittable struct {
	lo, hi int64
}

func (r *rangeSplittable) TryAdvance(action func(int64)) bool {
	if r.lo >= r.hi {
		return false
	}

	r.lo++
	action(r.lo - 1)

	return true
}

func (r *rangeSplittable) EstimateSize() int64 {
	return r.hi - r.lo
}

func (r *rangeSplittable) TrySplit() Splittable[int64] {
	if r.hi-r.lo < 2 {
		return nil
	}

	mid := r.lo + (r.hi-r.lo)/2
	prefix := &rangeSplittable{lo: r.lo, hi: mid}
	r.lo = mid

	return prefix
}

// Slice returns Splittable over items. Items are not copied.
func Slice[T any](items []T) Splittable[T] {
	return &sliceSplittable[T]{items: items}
}

type sliceSplittable[T any] struct {
	items []T
}

func (s *sliceSplittable[T]) TryAdvance(action func(T)) bool {
	if len(s.items) == 0 {
		return false
	}

	v := s.items[0]
	s.items = s.items[1:]
	action(v)

	return true
}

func (s *sliceSplittable[T]) EstimateSize() int64 {
	return int64(len(s.items))
}

func (s *sliceSplittable[T]) TrySplit() Splittable[T] {
	if len(s.items) < 2 {
		return nil
	}

	mid := len(s.items) / 2
	prefix := &sliceSplittable[T]{items: s.items[:mid:mid]}
	s.items = s.items[mid:]

	return prefix
}

// FromStream consumes s and returns Splittable pulling from it.
// Splitting moves the next batch of elements into a Slice, so the stream
// itself is always evaluated by one worker.
// The Executor closes the stream once the owning worker is done with it.
func FromStream[T any](s streamable.Stream[T], batch int) Splittable[T] {
	return &streamSplittable[T]{it: s.Iterator(), batch: max(batch, 1)}
}

type streamSplittable[T any] struct {
	it    *streamable.Iterator[T]
	batch int
	done  bool
}

func (s *streamSplittable[T]) TryAdvance(action func(T)) bool {
	if s.done {
		return false
	}

	v, ok := s.it.Next()
	if !ok {
		s.done = true

		return false
	}

	action(v)

	return true
}

func (s *streamSplittable[T]) EstimateSize() int64 {
	if s.done {
		return 0
	}

	return math.MaxInt64
}

func (s *streamSplittable[T]) TrySplit() Splittable[T] {
	if s.done {
		return nil
	}

	items := make([]T, 0, s.batch)
	for len(items) < s.batch {
		v, ok := s.it.Next()
		if !ok {
			s.done = true

			break
		}

		items = append(items, v)
	}

	if len(items) == 0 {
		return nil
	}

	return Slice(items)
}

func (s *streamSplittable[T]) Close() {
	s.done = true
	s.it.Close()
}
