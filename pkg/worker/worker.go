package worker

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jlin7/taskpool/pkg/queue"
	"github.com/jlin7/taskpool/pkg/types"
)

// WorkerState defines the state of a Worker
type WorkerState int32

const (
	// WorkerStateWaiting represents a worker blocked waiting for work or stop
	WorkerStateWaiting WorkerState = iota
	// WorkerStateExecuting represents a worker executing a task
	WorkerStateExecuting
	// WorkerStateTerminated represents a worker that has exited its loop.
	// Terminated is terminal; there is no transition out of it.
	WorkerStateTerminated
)

// String returns the string representation of WorkerState
func (ws WorkerState) String() string {
	switch ws {
	case WorkerStateWaiting:
		return "waiting"
	case WorkerStateExecuting:
		return "executing"
	case WorkerStateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Worker represents a single worker goroutine pulling from a shared queue
type Worker struct {
	id    int
	state int32 // atomic state
	queue *queue.TaskQueue
	done  chan struct{}

	// statistics
	totalProcessed int64
	totalFailed    int64
	lastTaskTime   int64 // Unix nanosecond timestamp

	// error handling
	errorHandler types.ErrorHandler

	// logging
	logger *slog.Logger

	// time operations
	clock types.Clock

	// synchronization
	mu sync.RWMutex
}

// NewWorker creates a new Worker with default real clock
func NewWorker(id int, q *queue.TaskQueue) *Worker {
	return NewWorkerWithClock(id, q, types.NewRealClock())
}

// NewWorkerWithClock creates a new Worker with specified clock
func NewWorkerWithClock(id int, q *queue.TaskQueue, clock types.Clock) *Worker {
	if clock == nil {
		clock = types.NewRealClock()
	}

	return &Worker{
		id:     id,
		state:  int32(WorkerStateWaiting),
		queue:  q,
		done:   make(chan struct{}),
		logger: slog.New(disabledSlogHandler{}),
		clock:  clock,
	}
}

// ID returns the Worker ID
func (w *Worker) ID() int {
	return w.id
}

// State returns the current Worker state
func (w *Worker) State() WorkerState {
	return WorkerState(atomic.LoadInt32(&w.state))
}

// SetErrorHandler sets the error handler invoked for task failures
func (w *Worker) SetErrorHandler(handler types.ErrorHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.errorHandler = handler
}

// SetLogger sets the worker logger
func (w *Worker) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.logger = logger
}

// Start runs the worker loop: wait for work or stop, dequeue, execute,
// repeat. The loop exits only when the queue reports stop-and-drained, so a
// task failure never shrinks the pool. Start returns when the worker
// reaches its terminal state.
func (w *Worker) Start(ctx context.Context) {
	defer close(w.done)
	defer atomic.StoreInt32(&w.state, int32(WorkerStateTerminated))

	for {
		task, ok := w.queue.PopBlocking()
		if !ok {
			return
		}
		w.processTask(ctx, task)
	}
}

// DoneChannel returns a channel closed when the worker has terminated
func (w *Worker) DoneChannel() <-chan struct{} {
	return w.done
}

// processTask processes a single task
func (w *Worker) processTask(ctx context.Context, task types.Task) {
	atomic.StoreInt32(&w.state, int32(WorkerStateExecuting))
	defer atomic.StoreInt32(&w.state, int32(WorkerStateWaiting))

	startTime := w.clock.Now()
	atomic.StoreInt64(&w.lastTaskTime, startTime.UnixNano())

	err := w.executeTask(ctx, task)
	duration := w.clock.Since(startTime)

	if err != nil {
		atomic.AddInt64(&w.totalFailed, 1)
		w.reportFailure(task, err)
		return
	}

	atomic.AddInt64(&w.totalProcessed, 1)

	w.mu.RLock()
	logger := w.logger
	w.mu.RUnlock()
	logger.Debug("task executed",
		slog.String("task_id", task.ID()),
		slog.Duration("duration", duration))
}

// executeTask executes a task with panic recovery. A panic inside user
// code is converted to an error so the worker loop continues; the worker
// goroutine itself never dies to a misbehaving task.
func (w *Worker) executeTask(ctx context.Context, task types.Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			var buf [4096]byte
			n := runtime.Stack(buf[:], false)

			err = types.NewTaskError(task.ID(), w.id,
				fmt.Errorf("%w: %v", types.ErrTaskPanicked, r)).
				WithContext("stack_trace", string(buf[:n]))
		}
	}()

	return task.Execute(ctx)
}

// reportFailure wraps, logs and forwards a task failure. Failures are
// reported, never propagated: the loop continues.
func (w *Worker) reportFailure(task types.Task, err error) {
	var taskErr *types.TaskError
	if te, ok := err.(*types.TaskError); ok {
		taskErr = te
	} else {
		taskErr = types.NewTaskError(task.ID(), w.id, err)
	}

	w.mu.RLock()
	handler := w.errorHandler
	logger := w.logger
	w.mu.RUnlock()

	logger.Error("task failed",
		slog.String("task_id", taskErr.TaskID),
		slog.Int("worker_id", taskErr.WorkerID),
		slog.Any("error", taskErr.Cause))

	if handler != nil {
		_ = handler(taskErr)
	}
}

// Stats gets Worker statistics
func (w *Worker) Stats() WorkerStats {
	return WorkerStats{
		ID:             w.id,
		State:          w.State(),
		TotalProcessed: atomic.LoadInt64(&w.totalProcessed),
		TotalFailed:    atomic.LoadInt64(&w.totalFailed),
		LastTaskTime:   time.Unix(0, atomic.LoadInt64(&w.lastTaskTime)),
	}
}

// WorkerStats defines Worker statistics
type WorkerStats struct {
	ID             int
	State          WorkerState
	TotalProcessed int64
	TotalFailed    int64
	LastTaskTime   time.Time
}

// IsExecuting checks if the worker is executing a task
func (ws WorkerStats) IsExecuting() bool {
	return ws.State == WorkerStateExecuting
}

// GetSuccessRate gets the success rate
func (ws WorkerStats) GetSuccessRate() float64 {
	total := ws.TotalProcessed + ws.TotalFailed
	if total == 0 {
		return 0
	}
	return float64(ws.TotalProcessed) / float64(total)
}
