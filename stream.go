package streamable

import (
	"iter"

	"github.com/andriiyaremenko/streamable/internal"
)

// pipeline is the state shared by every handle derived from one source.
type pipeline struct {
	src      *source
	stages   []stage
	gen      uint64
	consumed bool
}

// Stream is a handle to a lazily evaluated pipeline producing T.
// Appending a stage returns a new handle and makes older handles stale;
// running a terminal operation consumes the pipeline for every handle.
type Stream[T any] struct {
	p   *pipeline
	gen uint64
}

func newStream[T any](src *source) Stream[T] {
	return Stream[T]{p: &pipeline{src: src}}
}

func (s Stream[T]) stream() Stream[T] {
	return s
}

func (p *pipeline) check(op string, gen uint64) {
	switch {
	case p == nil:
		panic(newUsageError(op, ErrNilStream))
	case p.consumed:
		panic(newUsageError(op, ErrConsumed))
	case p.gen != gen:
		panic(newUsageError(op, ErrStaleHandle))
	}
}

// consume marks pipeline as driven by a terminal operation.
func (p *pipeline) consume(op string, gen uint64) {
	p.check(op, gen)
	p.consumed = true
}

func extend[I, O any](s Stream[I], op string, st stage) Stream[O] {
	s.p.check(op, s.gen)

	if st.name == "" {
		st.name = op
	}

	s.p.stages = append(s.p.stages, st)
	s.p.gen++

	return Stream[O]{p: s.p, gen: s.p.gen}
}

// stage is a Gatherer with its types erased.
type stage struct {
	name    string
	expands bool
	// stage rejects input before the first element is pulled
	stopped bool
	apply   func(input any, emit func(any)) bool
	finish  func(emit func(any))
	close   func()
}

// expansion opens a nested sequence emitted by an expanding stage.
type expansion func() (next func() (any, bool), stop func())

func cast[T any](v any) T {
	if v == nil {
		return internal.ZeroValue[T]()
	}

	return v.(T)
}

func gatherStage[I, O any](g Gatherer[I, O]) stage {
	return stage{
		apply: func(input any, emit func(any)) bool {
			return g.Apply(cast[I](input), func(o O) { emit(o) })
		},
		finish: func(emit func(any)) {
			g.Finish(func(o O) { emit(o) })
		},
		close: g.Close,
	}
}

func expandingStage[I, C any](g Gatherer[I, C], expand func(C) expansion) stage {
	return stage{
		expands: true,
		apply: func(input any, emit func(any)) bool {
			return g.Apply(cast[I](input), func(c C) { emit(expand(c)) })
		},
		finish: func(emit func(any)) {
			g.Finish(func(c C) { emit(expand(c)) })
		},
		close: g.Close,
	}
}

func expandSeq[T any](seq iter.Seq[T]) expansion {
	if seq == nil {
		return nil
	}

	return func() (func() (any, bool), func()) {
		next, stop := iter.Pull(seq)

		return func() (any, bool) {
			v, ok := next()
			if !ok {
				return nil, false
			}

			return v, true
		}, stop
	}
}

func expandSlice[T any](items []T) expansion {
	if len(items) == 0 {
		return nil
	}

	return func() (func() (any, bool), func()) {
		i := 0

		return func() (any, bool) {
			if i >= len(items) {
				return nil, false
			}

			i++

			return items[i-1], true
		}, noop
	}
}

// Gather appends non-expanding stage g to s.
func Gather[I, O any](s Streamer[I], g Gatherer[I, O]) Stream[O] {
	st := gatherStage(g)
	st.name = internal.InstanceTypeName(g)

	return extend[I, O](s.stream(), "Gather", st)
}

// FlatGather appends expanding stage g to s.
// Every sequence g emits is fully drained through downstream stages
// before the next input reaches them.
func FlatGather[I, O any](s Streamer[I], g Gatherer[I, iter.Seq[O]]) Stream[O] {
	st := expandingStage(g, expandSeq[O])
	st.name = internal.InstanceTypeName(g)

	return extend[I, O](s.stream(), "FlatGather", st)
}

func flatGatherSlices[I, O any](s Streamer[I], op string, g Gatherer[I, []O]) Stream[O] {
	return extend[I, O](s.stream(), op, expandingStage(g, expandSlice[O]))
}

// Collect drives s to completion through c and returns c's result.
// It is the only universal terminal operation.
func Collect[T, R any](s Streamer[T], c Collector[T, R]) R {
	h := s.stream()
	h.p.consume("Collect", h.gen)

	r := newRun(h.p, func(v any) bool { return c.Apply(cast[T](v)) })
	defer r.release()

	for r.step() {
	}

	result := c.Finish()

	r.close()
	c.Close()

	return result
}

// ForEach calls action for every element of s.
func (s Stream[T]) ForEach(action func(T)) {
	Collect[T, struct{}](s, &BaseCollector[T, struct{}]{
		ApplyFunc: func(v T) bool {
			action(v)

			return false
		},
	})
}
