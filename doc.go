// This package is intended to help user build lazily evaluated, single-pass
// element streams out of small composable stages.

// To install streamable:
// 	go get -u github.com/andriiyaremenko/streamable

// How to use:
//
// Stream:
// import (
// 	"strings"
//
// 	"github.com/andriiyaremenko/streamable"
// )
// func main() {
// 	s := streamable.Iterate(1, func(n int) int { return n + 1 }).
// 		Filter(func(n int) bool { return n%2 == 0 }).
// 		Limit(3)
//
// 	// type changing operations are functions:
// 	stars := streamable.Map(s, func(n int) string { return strings.Repeat("*", n) })
//
// 	// terminal operation runs the stream, handles can not be used after it:
// 	elements := stars.ToSlice() // ["**", "****", "******"]
// }
//
// Custom stage:
// import "github.com/andriiyaremenko/streamable"
// func main() {
// 	pairs := &streamable.BaseGatherer[int, [2]int]{
// 		ApplyFunc: func(n int, emit func([2]int)) bool {
// 			emit([2]int{n, n * n})
//
// 			// true would reject any further input
// 			return false
// 		},
// 	}
//
// 	for p := range streamable.Gather(streamable.Of(1, 2, 3), pairs).Iter() {
// 		// ...
// 	}
// }
//
// Failures as elements:
// import (
// 	"strconv"
//
// 	"github.com/andriiyaremenko/streamable"
// )
// func main() {
// 	tries := streamable.TryIt(streamable.Of("1", "a", "3"), strconv.Atoi)
//
// 	sum, err := streamable.ReduceTries(
// 		tries,
// 		0,
// 		streamable.SkipErrors(
// 			func(acc, n int) int { return acc + n },
// 			func(err error) {
// 				// err is *streamable.Error[string] with Payload "a"
// 			},
// 		),
// 	)
// }
//
// Parallel reduction:
// import (
// 	"context"
//
// 	"github.com/andriiyaremenko/streamable/parallel"
// )
// func main() {
// 	cfg, err := parallel.LoadConfig(nil)
// 	// handle config error
//
// 	e, err := parallel.NewExecutor(context.Background(), cfg, parallel.Fold[int64, int64]{
// 		Init:  func() int64 { return 0 },
// 		Add:   func(acc, n int64) int64 { return acc + n },
// 		Merge: func(a, b int64) int64 { return a + b },
// 	})
// 	// handle executor error
//
// 	err = e.Submit(parallel.Range(0, 1_000_000))
// 	// handle executor shut down error
//
// 	sum, err := e.Wait()
// }
package streamable
