package streamable

// TryStream is a Stream of Try values.
// Failures flow downstream like any other element until filtered or unwrapped.
type TryStream[T any] struct {
	Stream[Try[T]]
}

// Tried projects s onto TryStream.
func Tried[T any](s Streamer[Try[T]]) TryStream[T] {
	if v, ok := s.(TryStream[T]); ok {
		return v
	}

	return TryStream[T]{s.stream()}
}

// TryIt applies attempt to every element of s.
// Returned errors and panics of attempt become failures wrapped in *Error[T]
// carrying the element; evaluation goes on.
func TryIt[T, R any, A ~func(T) (R, error)](s Streamer[T], attempt A) TryStream[R] {
	safe := recovering(Attempt[T, R](attempt))

	return TryStream[R]{extend[T, Try[R]](s.stream(), "TryIt", gatherStage(MapFunc(func(v T) Try[R] {
		r, err := safe(v)
		if err != nil {
			return Failure[R](NewError(err, v))
		}

		return Success(r)
	})))}
}

// TryThen applies attempt to every success of s. Failures pass unchanged.
func TryThen[T, R any, A ~func(T) (R, error)](s TryStream[T], attempt A) TryStream[R] {
	safe := recovering(Attempt[T, R](attempt))

	return TryStream[R]{extend[Try[T], Try[R]](s.Stream, "TryThen", gatherStage(MapFunc(func(t Try[T]) Try[R] {
		if t.Failed() {
			return Failure[R](t.Err())
		}

		r, err := safe(t.Get())
		if err != nil {
			return Failure[R](NewError(err, t.Get()))
		}

		return Success(r)
	})))}
}

// Keep retains elements matching selector.
func (s TryStream[T]) Keep(selector Selector[T]) TryStream[T] {
	return TryStream[T]{s.Filter(selector.Matches)}
}

func (s TryStream[T]) KeepSuccessful() TryStream[T] {
	return s.Keep(Successful[T]())
}

func (s TryStream[T]) KeepFailed() TryStream[T] {
	return s.Keep(Failed[T]())
}

// PeekSuccessful calls action for every success value passing through.
func (s TryStream[T]) PeekSuccessful(action func(T)) TryStream[T] {
	return PeekBranch(s, Successful[T](), action)
}

// PeekFailed calls action for every failure passing through.
func (s TryStream[T]) PeekFailed(action func(error)) TryStream[T] {
	return PeekBranch(s, Failed[T](), action)
}

// PeekBranch calls action with the unwrapped side of every element matching branch.
func PeekBranch[T, U any](s TryStream[T], branch Branch[T, U], action func(U)) TryStream[T] {
	return TryStream[T]{s.Peek(func(t Try[T]) {
		if branch.Matches(t) {
			action(branch.Unwrap(t))
		}
	})}
}

// Unwrap maps every element to its branch side.
// Elements not matching branch become zero value of U.
func Unwrap[T, U any](s TryStream[T], branch Branch[T, U]) Stream[U] {
	return Map(s.Stream, branch.Unwrap)
}

// KeepAndUnwrap retains elements matching branch and unwraps them.
func KeepAndUnwrap[T, U any](s TryStream[T], branch Branch[T, U]) Stream[U] {
	return Unwrap(s.Keep(branch), branch)
}

// Errors returns every failure of s.
func (s TryStream[T]) Errors() []error {
	return KeepAndUnwrap(s, Failed[T]()).ToSlice()
}

// FirstError returns the first failure or nil. Nothing past it is pulled.
func (s TryStream[T]) FirstError() error {
	err, _ := KeepAndUnwrap(s, Failed[T]()).FindFirst()

	return err
}

// Reducer function type to use in ReduceTries.
type Reducer[T, U any] func(U, Try[T]) (U, error)

// Reducer function to use in ReduceTries.
// Skips failures, by calling skip callback.
func SkipErrors[T, U any, Reduce ~func(U, T) U](reduce Reduce, skip func(error)) Reducer[T, U] {
	return func(agg U, next Try[T]) (U, error) {
		if next.Failed() {
			skip(next.Err())

			return agg, nil
		}

		return reduce(agg, next.Get()), nil
	}
}

// Reducer function to use in ReduceTries.
// Returns on first encountered failure.
func NoError[T, U any, Reduce ~func(U, T) U](reduce Reduce) Reducer[T, U] {
	return func(agg U, next Try[T]) (U, error) {
		if next.Failed() {
			return agg, next.Err()
		}

		return reduce(agg, next.Get()), nil
	}
}

// ReduceTries folds s with reduce starting from seed.
// Evaluation stops on first error returned by reduce.
func ReduceTries[T, U any](s TryStream[T], seed U, reduce Reducer[T, U]) (U, error) {
	var err error

	agg := Collect[Try[T], U](s, &BaseCollector[Try[T], U]{
		ApplyFunc: func(t Try[T]) bool {
			seed, err = reduce(seed, t)

			return err != nil
		},
		FinishFunc: func() U { return seed },
	})

	return agg, err
}
