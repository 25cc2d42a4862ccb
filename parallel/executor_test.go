package parallel_test

import (
	"context"
	"time"

	"github.com/andriiyaremenko/streamable"
	"github.com/andriiyaremenko/streamable/parallel"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/goleak"
)

func sum() parallel.Fold[int64, int64] {
	return parallel.Fold[int64, int64]{
		Init:  func() int64 { return 0 },
		Add:   func(acc, n int64) int64 { return acc + n },
		Merge: func(a, b int64) int64 { return a + b },
	}
}

func splitting() parallel.Config {
	cfg := parallel.DefaultConfig()
	cfg.MaxWorkers = 4
	cfg.SplitInterval = 0
	cfg.SplitThreshold = 2

	return cfg
}

func counter(rm metricdata.ResourceMetrics, name string) int64 {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}

			var total int64
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				total += dp.Value
			}

			return total
		}
	}

	return 0
}

func verifyNoLeaks() {
	err := goleak.Find(
		goleak.
			IgnoreTopFunction(
				"github.com/onsi/ginkgo/v2/internal.(*Suite).runNode",
			),
		goleak.
			IgnoreTopFunction(
				"github.com/onsi/ginkgo/v2/internal/interrupt_handler.(*InterruptHandler).registerForInterrupts.func2",
			),
		goleak.
			IgnoreAnyFunction(
				"github.com/onsi/ginkgo/v2/internal.RegisterForProgressSignal.func1",
			),
	)

	Expect(err).ShouldNot(HaveOccurred())
}

var _ = Describe("Executor", func() {
	It("should fold submitted work", func() {
		e, err := parallel.NewExecutor(context.TODO(), splitting(), sum())
		Expect(err).ShouldNot(HaveOccurred())

		Expect(e.Submit(parallel.Range(1, 1001))).To(Succeed())
		Expect(e.Submit(parallel.Slice([]int64{10, 20}))).To(Succeed())

		v, err := e.Wait()

		Expect(err).ShouldNot(HaveOccurred())
		Expect(v).To(Equal(int64(500500 + 30)))
		Expect(e.IsRunning()).To(BeFalse())

		verifyNoLeaks()
	})

	It("should split work and report metrics", func() {
		reader := sdkmetric.NewManualReader()
		provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

		e, err := parallel.NewExecutor(context.TODO(), splitting(), sum(), parallel.WithMeterProvider(provider))
		Expect(err).ShouldNot(HaveOccurred())

		Expect(e.Submit(parallel.Range(0, 100_000))).To(Succeed())

		v, err := e.Wait()

		Expect(err).ShouldNot(HaveOccurred())
		Expect(v).To(Equal(int64(99_999 * 100_000 / 2)))

		var rm metricdata.ResourceMetrics
		Expect(reader.Collect(context.TODO(), &rm)).To(Succeed())

		Expect(counter(rm, "streamable.executor.elements")).To(Equal(int64(100_000)))
		Expect(counter(rm, "streamable.executor.splits")).To(BeNumerically(">", 0))
		Expect(counter(rm, "streamable.executor.workers")).To(BeNumerically(">", 1))

		id, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64]).DataPoints[0].
			Attributes.Value(attribute.Key("executor.id"))

		Expect(ok).To(BeTrue())
		Expect(id.AsString()).To(Equal(e.ID().String()))
	})

	It("should reduce a stream", func() {
		cfg := splitting()
		cfg.BatchSize = 64

		s := streamable.Map(
			streamable.Iterate(1, func(n int) int { return n + 1 }).Limit(10_000),
			func(n int) int64 { return int64(n) },
		)

		v, err := parallel.Reduce(context.TODO(), cfg, s, sum())

		Expect(err).ShouldNot(HaveOccurred())
		Expect(v).To(Equal(int64(10_000 * 10_001 / 2)))

		verifyNoLeaks()
	})

	It("should stop on context cancellation", func() {
		ctx, cancel := context.WithCancel(context.TODO())

		infinite := streamable.Iterate(int64(0), func(n int64) int64 { return n + 1 })
		e, err := parallel.NewExecutor(ctx, parallel.DefaultConfig(), sum())
		Expect(err).ShouldNot(HaveOccurred())

		Expect(e.Submit(parallel.FromStream(infinite, 128))).To(Succeed())

		time.Sleep(time.Millisecond * 50)
		cancel()

		Eventually(e.IsRunning).Should(BeFalse())

		_, err = e.Wait()

		Expect(err).Should(MatchError(context.Canceled))
		Expect(e.Submit(parallel.Range(0, 1))).Should(MatchError(parallel.ErrExecutorStopped))

		verifyNoLeaks()
	})

	It("should reject work after Wait", func() {
		e, err := parallel.NewExecutor(context.TODO(), parallel.DefaultConfig(), sum())
		Expect(err).ShouldNot(HaveOccurred())

		v, err := e.Wait()

		Expect(err).ShouldNot(HaveOccurred())
		Expect(v).To(BeZero())
		Expect(e.Submit(parallel.Range(0, 10))).Should(MatchError(parallel.ErrExecutorStopped))
	})

	It("should reject invalid config", func() {
		cfg := parallel.DefaultConfig()
		cfg.MaxWorkers = 0

		_, err := parallel.NewExecutor(context.TODO(), cfg, sum())

		Expect(err).Should(MatchError(parallel.ErrInvalidConfig))
	})
})
