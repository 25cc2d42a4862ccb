package streamable_test

import (
	"iter"
	"slices"

	"github.com/andriiyaremenko/streamable"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Views", func() {
	Context("Indexed", func() {
		It("passes positions of elements reaching the operation", func() {
			var positions []int64

			got := streamable.Indexed(streamable.Of("a", "b", "c", "d")).
				FilterIndexed(func(_ string, i int64) bool { return i%2 == 0 }).
				PeekIndexed(func(_ string, i int64) { positions = append(positions, i) }).
				ToSlice()

			Expect(got).To(Equal([]string{"a", "c"}))
			Expect(positions).To(Equal([]int64{0, 1}))
		})

		It("TakeWhileIndexed and DropWhileIndexed", func() {
			s := streamable.Of(5, 5, 5, 5)

			Expect(streamable.Indexed(s).TakeWhileIndexed(func(_ int, i int64) bool { return i < 2 }).ToSlice()).
				To(Equal([]int{5, 5}))
			Expect(streamable.Indexed(streamable.Of(1, 2, 3)).DropWhileIndexed(func(_ int, i int64) bool { return i < 1 }).ToSlice()).
				To(Equal([]int{2, 3}))
		})

		It("maps with positions", func() {
			indexed := streamable.Indexed(streamable.Of("x", "y"))

			Expect(streamable.MapIndexed(indexed, func(s string, i int64) string { return s + string(rune('0'+i)) }).ToSlice()).
				To(Equal([]string{"x0", "y1"}))

			multi := streamable.MapMultiIndexed(streamable.Indexed(streamable.Of(7, 8)), func(n int, i int64, emit func(int64)) {
				emit(int64(n))
				emit(i)
			})
			Expect(multi.ToSlice()).To(Equal([]int64{7, 0, 8, 1}))

			flat := streamable.FlatMapIndexed(streamable.Indexed(streamable.Of(1, 1)), func(n int, i int64) iter.Seq[int64] {
				return slices.Values(slices.Repeat([]int64{i}, n+int(i)))
			})
			Expect(flat.ToSlice()).To(Equal([]int64{0, 1, 1}))
		})

		It("projection of a view is the same view", func() {
			indexed := streamable.Indexed(streamable.Of(1, 2))

			Expect(streamable.Indexed(indexed)).To(Equal(indexed))
		})
	})

	Context("Numbers", func() {
		It("reduces numbers", func() {
			Expect(streamable.Numbers(streamable.Of(1, 2, 3, 4)).Sum()).To(Equal(10))
			Expect(streamable.Numbers(streamable.Empty[float64]()).Sum()).To(BeZero())

			lowest, ok := streamable.Numbers(streamable.Of(3, -1, 2)).Min()
			Expect(ok).To(BeTrue())
			Expect(lowest).To(Equal(-1))

			highest, _ := streamable.Numbers(streamable.Of(uint8(3), 250, 2)).Max()
			Expect(highest).To(Equal(uint8(250)))

			avg, ok := streamable.Numbers(streamable.Of(1, 2)).Average()
			Expect(ok).To(BeTrue())
			Expect(avg).To(Equal(1.5))

			_, ok = streamable.Numbers(streamable.Empty[int]()).Average()
			Expect(ok).To(BeFalse())
		})

		It("summarizes in one pass", func() {
			pulled := 0
			summary := streamable.Numbers(streamable.Of(4, 8, 2, 6).Peek(func(int) { pulled++ })).Statistics()

			Expect(summary).To(Equal(streamable.Summary[int]{Count: 4, Sum: 20, Min: 2, Max: 8}))
			Expect(pulled).To(Equal(4))

			avg, _ := summary.Average()
			Expect(avg).To(Equal(5.0))
		})
	})

	Context("Ordered", func() {
		It("sorts naturally", func() {
			sorted := streamable.Ordered(streamable.Of("pear", "apple", "fig")).Sorted()

			Expect(sorted.ToSlice()).To(Equal([]string{"apple", "fig", "pear"}))
		})

		It("finds extremes", func() {
			lowest, _ := streamable.Ordered(streamable.Of(2.5, -1.0, 3.0)).Min()
			highest, _ := streamable.Ordered(streamable.Of("b", "c", "a")).Max()
			_, ok := streamable.Ordered(streamable.Empty[int]()).Max()

			Expect(lowest).To(Equal(-1.0))
			Expect(highest).To(Equal("c"))
			Expect(ok).To(BeFalse())
		})

		It("keeps sorted stream ordered", func() {
			first, _ := streamable.Ordered(streamable.Of(3, 1, 2)).Sorted().Limit(1).FindFirst()

			Expect(first).To(Equal(1))
		})
	})
})
