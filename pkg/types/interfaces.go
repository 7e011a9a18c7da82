// Package types defines core interfaces and types for the taskpool library
package types

import (
	"context"
)

// Task defines one unit of schedulable work submitted to a pool.
// A Task is immutable once submitted; exactly one worker executes it,
// to completion, before that worker dequeues again.
type Task interface {
	// Execute executes the task
	Execute(ctx context.Context) error

	// ID returns the task ID (for tracking and error reporting)
	ID() string
}

// ErrorHandler defines an error handling function invoked for each task
// failure. Returning a non-nil error does not stop the worker; the return
// value exists so handlers can be chained.
type ErrorHandler func(error) error

// Sink is a thread-safe line-oriented output capability injected into
// tasks that write to a shared destination. Implementations must never
// interleave the characters of two concurrent lines.
type Sink interface {
	// WriteLine writes one whole line, appending a newline
	WriteLine(line string) error
}

// PoolStats defines basic statistics for a worker pool
type PoolStats struct {
	// PoolSize is the configured number of workers
	PoolSize int

	// ActiveWorkers is the number of workers currently executing a task
	ActiveWorkers int

	// QueueLength is the number of tasks waiting in the queue
	QueueLength int

	// QueueCapacity is the configured queue capacity (0 means unbounded)
	QueueCapacity int

	// TotalProcessed is the number of tasks that completed without error
	TotalProcessed int64

	// TotalFailed is the number of tasks that returned an error or panicked
	TotalFailed int64
}

// ClockProvider provides access to the clock for testing
type ClockProvider interface {
	GetClock() Clock
}
