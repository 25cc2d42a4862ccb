package streamable

import "iter"

// Iterator pulls elements of a Stream one at a time.
// Each Next drives the evaluation only until the next element is ready.
type Iterator[T any] struct {
	run     *run
	queue   []any
	drained bool

	// set instead of run when the stream has no stages
	next func() (T, bool)
	stop func()

	done   bool
	ranged bool
}

// Iterator consumes s and returns pull iterator over its elements.
// Close must be called if the iterator is abandoned before exhaustion.
func (s Stream[T]) Iterator() *Iterator[T] {
	s.p.consume("Iterator", s.gen)

	return newIterator[T](s.p)
}

func newIterator[T any](p *pipeline) *Iterator[T] {
	if len(p.stages) == 0 {
		open := p.src.typed.(func() (func() (T, bool), func()))
		next, stop := open()

		return &Iterator[T]{next: next, stop: stop}
	}

	it := new(Iterator[T])
	it.run = newRun(p, func(v any) bool {
		it.queue = append(it.queue, v)

		return false
	})

	return it
}

// Next returns the next element, or false once the stream is exhausted.
func (it *Iterator[T]) Next() (T, bool) {
	var zero T

	if it.done {
		return zero, false
	}

	if it.run == nil {
		v, ok := it.next()
		if !ok {
			it.Close()
		}

		return v, ok
	}

	for len(it.queue) == 0 && !it.drained {
		if !it.run.step() {
			it.drained = true
		}
	}

	if len(it.queue) == 0 {
		it.Close()

		return zero, false
	}

	v := it.queue[0]
	it.queue[0] = nil
	it.queue = it.queue[1:]

	return cast[T](v), true
}

// Close ends the run: open sequences are released and stages closed.
func (it *Iterator[T]) Close() {
	if it.done {
		return
	}

	it.done = true
	it.queue = nil

	if it.run == nil {
		it.stop()

		return
	}

	it.run.close()
}

func (it *Iterator[T]) release() {
	if it.run != nil {
		it.run.release()
	} else if !it.done {
		it.stop()
	}
}

// Iter consumes s and returns sequence for range loops.
// Nothing is opened until the sequence is ranged over, which can happen once.
func (s Stream[T]) Iter() iter.Seq[T] {
	s.p.consume("Iter", s.gen)

	var ranged bool

	return func(yield func(T) bool) {
		if ranged {
			panic(newUsageError("Iter", ErrConsumed))
		}

		ranged = true
		newIterator[T](s.p).all()(yield)
	}
}

func (it *Iterator[T]) all() iter.Seq[T] {
	return func(yield func(T) bool) {
		if it.ranged {
			panic(newUsageError("Iter", ErrConsumed))
		}

		it.ranged = true

		defer it.release()

		for {
			v, ok := it.Next()
			if !ok {
				return
			}

			if !yield(v) {
				it.Close()

				return
			}
		}
	}
}
