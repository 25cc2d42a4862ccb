package streamable

// Gatherer is an intermediate stage of a Stream.
// It consumes one input at a time and emits zero or more outputs through emit.
type Gatherer[I, O any] interface {
	// Consumes input and returns true if no further input will be accepted.
	Apply(input I, emit func(O)) (stop bool)
	// Called once when upstream is exhausted or this stage requested stop.
	// Buffered output may still be emitted.
	Finish(emit func(O))
	// Called once when the run ends.
	Close()
}

// Collector is the terminal consumer of a Stream.
type Collector[I, R any] interface {
	// Consumes input and returns true if no further input is wanted.
	Apply(input I) (stop bool)
	// Produces the result of the run.
	Finish() R
	// Called once when the run ends.
	Close()
}

// Streamer is implemented by Stream and by every view projected from it.
type Streamer[T any] interface {
	stream() Stream[T]
}

// Number is the closed set of numeric kinds NumberStream reduces over.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}
