// Package queue defines the contract for feeding raw records to the
// cleaning workers.
package queue

import (
	"context"
	"sync"

	"github.com/C0nnectify/edulens/internal/domain/model"
	"github.com/C0nnectify/edulens/pkg/metrics"
)

// defaultCapacity bounds the in-memory queue.
const defaultCapacity = 100000

// Task pairs a raw record with the channel its cleaning outcome is reported
// on, so a batch submitter can wait for its own records and nothing else.
type Task struct {
	Record *model.RawRecord
	Out    chan<- Outcome
}

// Outcome is the result of cleaning one record. Exactly one of Cleaned or
// Err is set; FieldErrors accompanies a cleaned record whose soft fields
// failed to parse.
type Outcome struct {
	Cleaned     *model.CleanedRecord
	FieldErrors []string
	Err         error
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a task. Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, t Task) bool

	// Dequeue returns a channel that receives tasks as they arrive. The
	// channel closes when the queue is closed.
	Dequeue(ctx context.Context) <-chan Task

	// Len returns the current number of queued tasks.
	Len(ctx context.Context) int

	// Close stops the queue; no new tasks can be enqueued afterwards.
	Close() error

	// IsClosed reports whether the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	tasks    chan Task
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// Option applies a configuration option to the InMemoryQueue.
type Option func(*InMemoryQueue)

// WithCapacity sets the maximum capacity of the queue.
func WithCapacity(capacity int) Option {
	return func(q *InMemoryQueue) {
		if capacity > 0 {
			q.capacity = capacity
		}
	}
}

// NewInMemoryQueue creates a new in-memory task queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.tasks = make(chan Task, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds a task to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, t Task) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		return false
	}

	select {
	case q.tasks <- t:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.tasks))
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		return false
	default:
		// Queue full: the caller decides whether to degrade or back off.
		metrics.RecordQueueEnqueueError()
		return false
	}
}

// Dequeue returns a channel that receives tasks as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Task {
	out := make(chan Task)
	go func() {
		defer close(out)
		for t := range q.tasks {
			select {
			case out <- t:
				metrics.RecordQueueDequeue()
				metrics.UpdateQueueSize(len(q.tasks))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued tasks.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.tasks)
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true
	close(q.tasks)
	return nil
}

// IsClosed reports whether the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
