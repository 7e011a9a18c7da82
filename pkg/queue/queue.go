// Package queue provides the mutex and condition variable protected FIFO
// task queue shared between producers and pool workers.
package queue

import (
	"sync"

	"github.com/ygrebnov/errorc"

	"github.com/jlin7/taskpool/pkg/types"
)

// Policy defines the backpressure behavior applied when a bounded queue
// is at capacity.
type Policy int

const (
	// Block suspends the producer until space frees up or the queue stops
	Block Policy = iota
	// Reject fails the push with ErrQueueFull
	Reject
	// DropOldest evicts the head of the queue to make room for the new task
	DropOldest
)

// String returns the string representation of Policy
func (p Policy) String() string {
	switch p {
	case Block:
		return "block"
	case Reject:
		return "reject"
	case DropOldest:
		return "drop-oldest"
	default:
		return "unknown"
	}
}

// Config defines configuration for a task queue
type Config struct {
	// Capacity is the maximum number of queued tasks; 0 means unbounded
	Capacity int

	// FullPolicy is the backpressure policy applied when the queue is full.
	// Ignored for unbounded queues.
	FullPolicy Policy
}

// DefaultConfig returns default configuration: an unbounded queue
func DefaultConfig() *Config {
	return &Config{
		Capacity:   0,
		FullPolicy: Block,
	}
}

// TaskQueue is a FIFO buffer of tasks with blocking consumption and a stop
// flag. The internal lock guards the task slice and the stop flag together;
// it is held only for slot bookkeeping, never across task execution.
type TaskQueue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	items    []types.Task
	capacity int
	policy   Policy
	stopping bool
}

// New creates a new task queue
func New(config *Config) (*TaskQueue, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if config.Capacity < 0 {
		return nil, errorc.With(types.ErrInvalidConfig,
			errorc.String("", "queue capacity must be >= 0"))
	}
	if config.FullPolicy < Block || config.FullPolicy > DropOldest {
		return nil, errorc.With(types.ErrInvalidConfig,
			errorc.String("", "unknown queue full policy"))
	}

	q := &TaskQueue{
		capacity: config.Capacity,
		policy:   config.FullPolicy,
	}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q, nil
}

// Push appends a task to the tail and wakes one blocked consumer. Once the
// queue is stopping it returns ErrPoolStopped; tasks are never silently
// dropped after stop. For a bounded queue at capacity the configured
// FullPolicy applies.
func (q *TaskQueue) Push(task types.Task) error {
	q.mu.Lock()

	if q.stopping {
		q.mu.Unlock()
		return types.ErrPoolStopped
	}

	if q.capacity > 0 && len(q.items) >= q.capacity {
		switch q.policy {
		case Reject:
			q.mu.Unlock()
			return types.ErrQueueFull
		case DropOldest:
			q.items[0] = nil
			q.items = q.items[1:]
		case Block:
			for len(q.items) >= q.capacity && !q.stopping {
				q.notFull.Wait()
			}
			if q.stopping {
				q.mu.Unlock()
				return types.ErrPoolStopped
			}
		}
	}

	q.items = append(q.items, task)
	q.mu.Unlock()

	q.notEmpty.Signal()
	return nil
}

// PopBlocking removes and returns the head of the queue, suspending the
// caller while the queue is empty and not stopping. The wait atomically
// releases the lock for the duration of the sleep and re-acquires it before
// re-checking, so a wake-up between check and sleep cannot be lost. It
// returns (nil, false) only when the queue is stopping and fully drained;
// remaining tasks are always handed out first.
func (q *TaskQueue) PopBlocking() (types.Task, bool) {
	q.mu.Lock()

	for len(q.items) == 0 && !q.stopping {
		q.notEmpty.Wait()
	}

	if len(q.items) == 0 {
		q.mu.Unlock()
		return nil, false
	}

	task := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	if len(q.items) == 0 {
		// release the drained backing array
		q.items = nil
	}
	q.mu.Unlock()

	q.notFull.Signal()
	return task, true
}

// SignalStop marks the queue as stopping and wakes every blocked consumer
// and producer. Broadcast is required: each worker must independently
// re-evaluate the stop-and-empty condition and exit. Idempotent.
func (q *TaskQueue) SignalStop() {
	q.mu.Lock()
	q.stopping = true
	q.mu.Unlock()

	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// Len returns the current number of queued tasks
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Cap returns the configured capacity; 0 means unbounded
func (q *TaskQueue) Cap() int {
	return q.capacity
}

// Stopped reports whether SignalStop has been called
func (q *TaskQueue) Stopped() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stopping
}
