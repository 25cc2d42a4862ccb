package parallel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/andriiyaremenko/streamable"
)

var ErrExecutorStopped = errors.New("executor is stopped")

// Fold describes how workers accumulate elements.
// Merge must be associative and commutative: partial results are merged
// in no particular order.
type Fold[T, A any] struct {
	Init  func() A
	Add   func(A, T) A
	Merge func(A, A) A
}

// Option configures an Executor.
type Option func(*options)

type options struct {
	meterProvider metric.MeterProvider
	logger        *zerolog.Logger
}

// WithMeterProvider sets provider of executor metrics.
// Global provider is used by default.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}

// WithLogger sets executor logger.
// Logger set with streamable.SetLogger is not used here; default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &l
	}
}

// Executor folds submitted work on a bounded set of workers.
// A worker running long enough on large enough work splits it
// and queues the split-off part for a free worker.
type Executor[T, A any] struct {
	id      uuid.UUID
	ctx     context.Context
	cfg     Config
	fold    Fold[T, A]
	log     zerolog.Logger
	metrics *metrics

	pool *pool.ResultContextPool[A]

	mu     sync.Mutex
	queue  []Splittable[T]
	active int
	closed bool

	wake    chan struct{}
	done    chan struct{}
	running atomic.Bool
}

// NewExecutor starts an Executor. It stops accepting work once ctx is done
// or Wait is called.
func NewExecutor[T, A any](ctx context.Context, cfg Config, fold Fold[T, A], opts ...Option) (*Executor[T, A], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{meterProvider: otel.GetMeterProvider()}
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		nop := zerolog.Nop()
		o.logger = &nop
	}

	id := uuid.New()

	m, err := newMetrics(o.meterProvider, id.String())
	if err != nil {
		return nil, err
	}

	e := &Executor[T, A]{
		id:      id,
		ctx:     ctx,
		cfg:     cfg,
		fold:    fold,
		log:     o.logger.With().Str("executor_id", id.String()).Logger(),
		metrics: m,
		pool:    pool.NewWithResults[A]().WithContext(ctx).WithCollectErrored(),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	e.start()

	return e, nil
}

// ID identifies executor in logs and metrics.
func (e *Executor[T, A]) ID() uuid.UUID {
	return e.id
}

// Submit queues work and returns error if Executor is stopped.
func (e *Executor[T, A]) Submit(work Splittable[T]) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || !e.running.Load() {
		return ErrExecutorStopped
	}

	e.queue = append(e.queue, work)
	e.signal()

	return nil
}

// IsRunning returns false once Executor stopped accepting work.
func (e *Executor[T, A]) IsRunning() bool {
	return e.running.Load()
}

// Wait stops accepting work, waits for queued work to be done
// and returns merged result. It must be called once.
// The error is ctx error if the executor was cancelled; the result then
// holds only elements folded before cancellation.
func (e *Executor[T, A]) Wait() (A, error) {
	e.mu.Lock()
	e.closed = true
	e.signal()
	e.mu.Unlock()

	<-e.done

	partials, err := e.pool.Wait()

	acc := e.fold.Init()
	for _, p := range partials {
		acc = e.fold.Merge(acc, p)
	}

	e.log.Debug().Int("partials", len(partials)).Err(err).Msg("executor finished")

	return acc, err
}

// signal must be called with mu held.
func (e *Executor[T, A]) signal() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Executor[T, A]) start() {
	e.running.Store(true)

	go func() {
		defer close(e.done)

		for {
			if idle := e.dispatch(); idle {
				return
			}

			select {
			case <-e.ctx.Done():
				e.shutdown()

				return
			case <-e.wake:
			}
		}
	}()
}

// dispatch hands queued work to free workers.
// It returns true once Wait was called and nothing is left to do.
func (e *Executor[T, A]) dispatch() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for len(e.queue) > 0 && e.active < e.cfg.MaxWorkers {
		work := e.queue[0]
		e.queue[0] = nil
		e.queue = e.queue[1:]
		e.active++

		e.pool.Go(func(ctx context.Context) (A, error) {
			return e.work(ctx, work)
		})
	}

	if e.closed && len(e.queue) == 0 && e.active == 0 {
		e.running.Store(false)

		return true
	}

	return false
}

func (e *Executor[T, A]) shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.running.Store(false)

	for _, work := range e.queue {
		closeWork(work)
	}

	e.log.Debug().Int("dropped", len(e.queue)).Msg("executor cancelled")
	e.queue = nil
}

// hasFreeWorker reports whether work queued now would start right away.
func (e *Executor[T, A]) hasFreeWorker() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.active+len(e.queue) < e.cfg.MaxWorkers
}

func (e *Executor[T, A]) requeue(work Splittable[T]) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running.Load() {
		return false
	}

	e.queue = append(e.queue, work)
	e.signal()

	return true
}

func (e *Executor[T, A]) release() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.active--
	e.signal()
}

func (e *Executor[T, A]) work(ctx context.Context, work Splittable[T]) (A, error) {
	defer e.release()
	defer closeWork(work)

	e.metrics.workerStarted(ctx)

	var (
		acc     = e.fold.Init()
		seen    int64
		started = time.Now()
		add     = func(v T) {
			acc = e.fold.Add(acc, v)
			seen++
		}
	)

	defer func() {
		e.metrics.folded(context.WithoutCancel(ctx), seen)
	}()

	for work.TryAdvance(add) {
		if err := ctx.Err(); err != nil {
			return acc, err
		}

		if time.Since(started) < e.cfg.SplitInterval ||
			work.EstimateSize() < e.cfg.SplitThreshold ||
			!e.hasFreeWorker() {
			continue
		}

		started = time.Now()

		other := work.TrySplit()
		if other == nil {
			continue
		}

		if !e.requeue(other) {
			closeWork(other)

			continue
		}

		e.metrics.split(ctx)
		e.log.Debug().
			Int64("folded", seen).
			Int64("remaining", work.EstimateSize()).
			Msg("worker split its work")
	}

	return acc, ctx.Err()
}

func closeWork[T any](work Splittable[T]) {
	if c, ok := work.(interface{ Close() }); ok {
		c.Close()
	}
}

// Reduce folds s on a new Executor and returns the result.
func Reduce[T, A any](ctx context.Context, cfg Config, s streamable.Stream[T], fold Fold[T, A], opts ...Option) (A, error) {
	e, err := NewExecutor(ctx, cfg, fold, opts...)
	if err != nil {
		var zero A
		return zero, err
	}

	work := FromStream(s, cfg.BatchSize)
	if err := e.Submit(work); err != nil {
		closeWork(work)

		var zero A
		return zero, err
	}

	return e.Wait()
}
