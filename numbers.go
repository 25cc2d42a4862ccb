package streamable

// NumberStream is a Stream of numbers with numeric reductions.
type NumberStream[T Number] struct {
	Stream[T]
}

// Numbers projects s onto NumberStream.
func Numbers[T Number](s Streamer[T]) NumberStream[T] {
	if v, ok := s.(NumberStream[T]); ok {
		return v
	}

	return NumberStream[T]{s.stream()}
}

// Summary holds statistics of a NumberStream.
// Min, Max and Sum are zero when Count is zero.
type Summary[T Number] struct {
	Count int64
	Sum   T
	Min   T
	Max   T
}

// Average returns arithmetic mean, or false when nothing was summarized.
func (s Summary[T]) Average() (float64, bool) {
	if s.Count == 0 {
		return 0, false
	}

	return float64(s.Sum) / float64(s.Count), true
}

func (s Summary[T]) add(v T) Summary[T] {
	if s.Count == 0 {
		return Summary[T]{Count: 1, Sum: v, Min: v, Max: v}
	}

	s.Count++
	s.Sum += v
	s.Min = min(s.Min, v)
	s.Max = max(s.Max, v)

	return s
}

// Statistics summarizes every element in one pass.
func (s NumberStream[T]) Statistics() Summary[T] {
	var summary Summary[T]

	return Collect[T, Summary[T]](s, &BaseCollector[T, Summary[T]]{
		ApplyFunc: func(v T) bool {
			summary = summary.add(v)

			return false
		},
		FinishFunc: func() Summary[T] { return summary },
	})
}

// Sum returns sum of elements; it is zero for empty stream.
func (s NumberStream[T]) Sum() T {
	return s.ReduceFrom(0, func(acc, v T) T { return acc + v })
}

// Min returns the smallest element.
func (s NumberStream[T]) Min() (T, bool) {
	return s.Reduce(func(acc, v T) T { return min(acc, v) })
}

// Max returns the largest element.
func (s NumberStream[T]) Max() (T, bool) {
	return s.Reduce(func(acc, v T) T { return max(acc, v) })
}

// Average returns arithmetic mean of elements, or false for empty stream.
func (s NumberStream[T]) Average() (float64, bool) {
	return s.Statistics().Average()
}
