// Package types defines error types
package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrPoolStopped indicates the pool has begun or completed shutdown
	ErrPoolStopped = errors.New("pool is stopped")

	// ErrQueueFull indicates the task queue is at capacity under the Reject policy
	ErrQueueFull = errors.New("task queue is full")

	// ErrNilTask indicates a nil task was submitted
	ErrNilTask = errors.New("task cannot be nil")

	// ErrInvalidConfig indicates an invalid pool or queue configuration
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrTaskPanicked indicates a task panicked during execution
	ErrTaskPanicked = errors.New("task panicked")
)

// TaskError represents an error raised while executing a task
type TaskError struct {
	// TaskID is the ID of the task that failed
	TaskID string

	// WorkerID is the ID of the worker that was executing the task
	WorkerID int

	// Cause is the underlying error
	Cause error

	// Context contains error context information
	Context map[string]interface{}
}

// Error implements the error interface
func (e *TaskError) Error() string {
	return fmt.Sprintf("task %s failed on worker %d: %v", e.TaskID, e.WorkerID, e.Cause)
}

// Unwrap returns the underlying error
func (e *TaskError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is a specific error
func (e *TaskError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// NewTaskError creates a new task execution error
func NewTaskError(taskID string, workerID int, cause error) *TaskError {
	return &TaskError{
		TaskID:   taskID,
		WorkerID: workerID,
		Cause:    cause,
		Context:  make(map[string]interface{}),
	}
}

// WithContext adds error context
func (e *TaskError) WithContext(key string, value interface{}) *TaskError {
	e.Context[key] = value
	return e
}
