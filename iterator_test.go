package streamable_test

import (
	"bytes"

	"github.com/andriiyaremenko/streamable"
	"github.com/rs/zerolog"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Iterator", func() {
	It("pulls only what was asked for", func() {
		pulled := 0
		it := naturals().Peek(func(int) { pulled++ }).Filter(func(n int) bool { return n%3 == 0 }).Iterator()

		defer it.Close()

		v, ok := it.Next()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(0))

		v, _ = it.Next()
		Expect(v).To(Equal(3))
		Expect(pulled).To(Equal(4))
	})

	It("reports exhaustion and closes stages", func() {
		closed := 0
		it := streamable.Of(1, 2).OnClose(func() { closed++ }).Iterator()

		_, _ = it.Next()
		_, _ = it.Next()
		_, ok := it.Next()

		Expect(ok).To(BeFalse())
		Expect(closed).To(Equal(1))

		it.Close()
		_, ok = it.Next()

		Expect(ok).To(BeFalse())
		Expect(closed).To(Equal(1))
	})

	It("emits buffered output after source is exhausted", func() {
		it := streamable.WindowFixed(streamable.Of(1, 2, 3), 2, true).Iterator()

		first, _ := it.Next()
		second, _ := it.Next()
		_, ok := it.Next()

		Expect(first).To(Equal([]int{1, 2}))
		Expect(second).To(Equal([]int{3}))
		Expect(ok).To(BeFalse())
	})

	It("Iter supports early break", func() {
		closed := false
		var got []int

		for n := range naturals().OnClose(func() { closed = true }).Iter() {
			if n == 3 {
				break
			}

			got = append(got, n)
		}

		Expect(got).To(Equal([]int{0, 1, 2}))
		Expect(closed).To(BeTrue())
	})

	It("Iter opens nothing until ranged over", func() {
		var buf bytes.Buffer

		streamable.SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
		defer streamable.SetLogger(zerolog.Nop())

		s := streamable.Of(1, 2, 3).Filter(func(n int) bool { return n > 1 })
		seq := s.Iter()

		Expect(buf.String()).NotTo(ContainSubstring("stream run started"))
		Expect(func() { s.Count() }).To(PanicWith(MatchError(streamable.ErrConsumed)))

		var got []int
		for n := range seq {
			got = append(got, n)
		}

		Expect(got).To(Equal([]int{2, 3}))
		Expect(buf.String()).To(ContainSubstring("stream run started"))
		Expect(func() {
			for range seq {
			}
		}).To(PanicWith(MatchError(streamable.ErrConsumed)))
	})

	It("iterates source directly without stages", func() {
		var got []string
		for s := range streamable.Of("a", "b").Iter() {
			got = append(got, s)
		}

		Expect(got).To(Equal([]string{"a", "b"}))
	})
})
