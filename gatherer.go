package streamable

var (
	_ Gatherer[any, any]  = GatherFunc[any, any](nil)
	_ Gatherer[any, any]  = new(BaseGatherer[any, any])
	_ Collector[any, any] = new(BaseCollector[any, any])
)

// GatherFunc is a Gatherer without buffered state: Finish and Close do nothing.
type GatherFunc[I, O any] func(input I, emit func(O)) bool

func (fn GatherFunc[I, O]) Apply(input I, emit func(O)) bool {
	return fn(input, emit)
}

func (GatherFunc[I, O]) Finish(func(O)) {}

func (GatherFunc[I, O]) Close() {}

// BaseGatherer builds a Gatherer from optional callbacks.
// A nil ApplyFunc drops every input.
type BaseGatherer[I, O any] struct {
	ApplyFunc  func(input I, emit func(O)) bool
	FinishFunc func(emit func(O))
	CloseFunc  func()
}

func (g *BaseGatherer[I, O]) Apply(input I, emit func(O)) bool {
	if g.ApplyFunc == nil {
		return false
	}

	return g.ApplyFunc(input, emit)
}

func (g *BaseGatherer[I, O]) Finish(emit func(O)) {
	if g.FinishFunc != nil {
		g.FinishFunc(emit)
	}
}

func (g *BaseGatherer[I, O]) Close() {
	if g.CloseFunc != nil {
		g.CloseFunc()
	}
}

// BaseCollector builds a Collector from optional callbacks.
type BaseCollector[I, R any] struct {
	ApplyFunc  func(input I) bool
	FinishFunc func() R
	CloseFunc  func()
}

func (c *BaseCollector[I, R]) Apply(input I) bool {
	if c.ApplyFunc == nil {
		return false
	}

	return c.ApplyFunc(input)
}

func (c *BaseCollector[I, R]) Finish() R {
	if c.FinishFunc == nil {
		var zero R
		return zero
	}

	return c.FinishFunc()
}

func (c *BaseCollector[I, R]) Close() {
	if c.CloseFunc != nil {
		c.CloseFunc()
	}
}

// Gatherer that emits same input it receives without changes.
func PassThrough[T any]() Gatherer[T, T] {
	return GatherFunc[T, T](func(input T, emit func(T)) bool {
		emit(input)

		return false
	})
}

// MapFunc returns Gatherer emitting fn(input) for every input.
func MapFunc[T, U any](fn func(T) U) Gatherer[T, U] {
	return GatherFunc[T, U](func(input T, emit func(U)) bool {
		emit(fn(input))

		return false
	})
}
