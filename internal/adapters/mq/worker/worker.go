// Package worker runs the parallel field-level cleaning stage. Each worker
// pulls raw-record tasks off the queue, cleans them, and reports the
// outcome on the task's own channel.
package worker

import (
	"context"
	"runtime"
	"strconv"
	"time"

	"github.com/C0nnectify/edulens/internal/adapters/mq/queue"
	"github.com/C0nnectify/edulens/internal/domain/model"
	"github.com/C0nnectify/edulens/pkg/logger"
	"github.com/C0nnectify/edulens/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
)

// Cleaner abstracts the field-level normalization stages a worker applies
// to one record.
type Cleaner interface {
	Clean(raw *model.RawRecord) (*model.CleanedRecord, []string, error)
}

// Queue defines how workers receive tasks.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Task
}

// Worker processes tasks until its queue closes or the context ends.
type Worker struct {
	queue   Queue
	cleaner Cleaner
	name    string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the Worker.
type Option func(*Worker)

// WithName sets the worker name for logging.
func WithName(name string) Option {
	return func(w *Worker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *Worker) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a worker reading from q and cleaning with c.
func New(q Queue, c Cleaner, opts ...Option) *Worker {
	w := &Worker{
		queue:    q,
		cleaner:  c,
		name:     "cleaner",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the worker loop.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	tasks := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case t, ok := <-tasks:
			if !ok {
				return
			}
			w.process(ctx, t)
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(workerShutdownTimeout):
		return context.DeadlineExceeded
	}
}

// process cleans one task and reports the outcome. The outcome channel is
// buffered by the submitter for the whole batch, so sends do not block.
func (w *Worker) process(ctx context.Context, t queue.Task) {
	start := time.Now()

	cleaned, fieldErrors, err := w.cleaner.Clean(t.Record)
	if err != nil {
		metrics.RecordRecordInvalid()
		w.logger.Debug(ctx, "record excluded",
			logger.String("recordID", t.Record.ID),
			logger.Error(err),
		)
	}
	metrics.RecordCleanLatency(float64(time.Since(start).Milliseconds()))

	if t.Out != nil {
		t.Out <- queue.Outcome{Cleaned: cleaned, FieldErrors: fieldErrors, Err: err}
	}
}

// Pool manages a set of workers over one queue.
type Pool struct {
	workers []*Worker
	logger  logger.Logger
}

// NewPool creates and wires workerCount workers; workerCount < 1 defaults
// to a CPU-based count.
func NewPool(workerCount int, q Queue, c Cleaner) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	p := &Pool{
		workers: make([]*Worker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		p.workers[i] = New(q, c, WithName("cleaner-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Start launches all workers.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Stop shuts down all workers, waiting for in-flight tasks.
func (p *Pool) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), workerShutdownTimeout)
	defer cancel()
	for _, w := range p.workers {
		if err := w.Shutdown(ctx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out",
				logger.String("worker", w.name),
				logger.Error(err),
			)
		}
	}
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}
