package streamable_test

import (
	"errors"
	"strconv"

	"github.com/andriiyaremenko/streamable"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Try", func() {
	It("Failure never holds nil error", func() {
		Expect(streamable.Failure[int](nil).Err()).To(MatchError(streamable.ErrNilFailure))
		Expect(streamable.TryOf(1, nil).Successful()).To(BeTrue())
		Expect(streamable.TryOf(0, errors.New("failed")).String()).To(Equal("Failure(failed)"))
		Expect(streamable.Success("ok").String()).To(Equal("Success(ok)"))
	})

	It("Branch selects and unwraps one side", func() {
		failed := streamable.Failure[int](errors.New("failed"))

		Expect(streamable.Successful[int]().Matches(failed)).To(BeFalse())
		Expect(streamable.Failed[int]().Matches(failed)).To(BeTrue())
		Expect(streamable.Failed[int]().Unwrap(failed)).To(MatchError("failed"))
	})
})

var _ = Describe("TryStream", func() {
	parse := func() streamable.TryStream[int] {
		return streamable.TryThen(
			streamable.TryIt(streamable.Of("0", "a", "2", "1"), strconv.Atoi),
			func(n int) (int, error) { return n / (n - 1), nil },
		)
	}

	It("keeps successes in input order", func() {
		Expect(streamable.KeepAndUnwrap(parse(), streamable.Successful[int]()).ToSlice()).
			To(Equal([]int{0, 2}))
	})

	It("turns errors and panics into failures carrying the element", func() {
		errs := parse().Errors()

		Expect(errs).To(HaveLen(2))

		var numErr *strconv.NumError
		Expect(errors.As(errs[0], &numErr)).To(BeTrue())
		Expect(errs[0]).Should(BeAssignableToTypeOf(new(streamable.Error[string])))
		Expect(errs[0].(*streamable.Error[string]).Payload).To(Equal("a"))

		Expect(errs[1]).Should(MatchError(streamable.ErrRecovered))
		Expect(errs[1].(*streamable.Error[int]).Payload).To(Equal(1))
	})

	It("peeks both branches without filtering", func() {
		var (
			values []int
			errs   []error
		)

		count := parse().
			PeekSuccessful(func(n int) { values = append(values, n) }).
			PeekFailed(func(err error) { errs = append(errs, err) }).
			Count()

		Expect(count).To(BeEquivalentTo(4))
		Expect(values).To(Equal([]int{0, 2}))
		Expect(errs).To(HaveLen(2))
	})

	It("Keep and Unwrap", func() {
		Expect(parse().KeepFailed().Count()).To(BeEquivalentTo(2))
		Expect(parse().KeepSuccessful().Count()).To(BeEquivalentTo(2))
		Expect(streamable.Unwrap(parse(), streamable.Successful[int]()).ToSlice()).To(Equal([]int{0, 0, 2, 0}))
	})

	It("FirstError stops at the first failure", func() {
		pulled := 0
		s := streamable.Of("1", "x", "y").Peek(func(string) { pulled++ })

		err := streamable.TryIt(s, strconv.Atoi).FirstError()

		Expect(err).Should(HaveOccurred())
		Expect(pulled).To(Equal(2))
		Expect(streamable.TryIt(streamable.Of("1"), strconv.Atoi).FirstError()).ShouldNot(HaveOccurred())
	})

	It("Tried projects a stream of tries", func() {
		tries := streamable.Of(streamable.Success(1), streamable.Failure[int](errors.New("failed")))

		Expect(streamable.Tried(tries).Errors()).To(HaveLen(1))
	})

	Context("ReduceTries", func() {
		sum := func(acc, n int) int { return acc + n }

		It("should reduce successes", func() {
			v, err := streamable.ReduceTries(
				streamable.TryIt(streamable.Of("1", "2", "3"), strconv.Atoi),
				0,
				streamable.NoError(sum),
			)

			Expect(err).ShouldNot(HaveOccurred())
			Expect(v).To(Equal(6))
		})

		It("should return first encountered error with NoError", func() {
			pulled := 0
			v, err := streamable.ReduceTries(
				streamable.TryIt(streamable.Of("1", "x", "3").Peek(func(string) { pulled++ }), strconv.Atoi),
				0,
				streamable.NoError(sum),
			)

			Expect(err).Should(HaveOccurred())
			Expect(err).Should(BeAssignableToTypeOf(new(streamable.Error[string])))
			Expect(err.(*streamable.Error[string]).Payload).To(Equal("x"))
			Expect(v).To(Equal(1))
			Expect(pulled).To(Equal(2))
		})

		It("should skip errors with SkipErrors", func() {
			skipped := 0
			v, err := streamable.ReduceTries(
				streamable.TryIt(streamable.Of("1", "x", "3", "y"), strconv.Atoi),
				0,
				streamable.SkipErrors(sum, func(err error) {
					Expect(err).Should(HaveOccurred())

					skipped++
				}),
			)

			Expect(err).ShouldNot(HaveOccurred())
			Expect(v).To(Equal(4))
			Expect(skipped).To(Equal(2))
		})
	})
})
