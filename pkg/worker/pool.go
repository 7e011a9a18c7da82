package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/ygrebnov/errorc"

	"github.com/jlin7/taskpool/pkg/queue"
	"github.com/jlin7/taskpool/pkg/types"
)

// Config defines configuration for a worker pool
type Config struct {
	// Workers is the fixed number of worker goroutines; must be >= 1
	Workers int

	// QueueCapacity bounds the task queue; 0 means unbounded
	QueueCapacity int

	// FullPolicy is the backpressure policy applied when a bounded queue
	// is at capacity
	FullPolicy queue.Policy

	// ErrorHandler is invoked for every task failure (optional)
	ErrorHandler types.ErrorHandler

	// Logger for pool and worker events (optional, disabled by default)
	Logger *slog.Logger

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock
}

// DefaultConfig returns default configuration: 10 workers over an
// unbounded queue
func DefaultConfig() *Config {
	return &Config{
		Workers:       10,
		QueueCapacity: 0,
		FullPolicy:    queue.Block,
		Clock:         types.NewRealClock(),
	}
}

// Pool is a fixed-size worker pool over a shared FIFO queue. All workers
// are spawned at construction and joined by Shutdown. The pool is never
// resized.
type Pool struct {
	config  *Config
	queue   *queue.TaskQueue
	workers []*Worker
	logger  *slog.Logger
	clock   types.Clock

	// lifecycle
	ctx          context.Context
	cancel       context.CancelFunc
	workersWG    sync.WaitGroup
	stopped      atomic.Bool
	shutdownOnce sync.Once
}

// New creates a worker pool and immediately starts all of its workers.
// Configuration errors are reported synchronously; a pool with zero
// workers is disallowed because pending submissions would accumulate
// forever.
func New(config *Config) (*Pool, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if config.Workers <= 0 {
		return nil, errorc.With(types.ErrInvalidConfig,
			errorc.String("", "pool requires at least one worker"))
	}

	clock := config.Clock
	if clock == nil {
		clock = types.NewRealClock()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(disabledSlogHandler{})
	}

	q, err := queue.New(&queue.Config{
		Capacity:   config.QueueCapacity,
		FullPolicy: config.FullPolicy,
	})
	if err != nil {
		return nil, err
	}

	p := &Pool{
		config:  config,
		queue:   q,
		workers: make([]*Worker, config.Workers),
		logger:  logger,
		clock:   clock,
	}

	// The worker context is cancelled only after the join in Shutdown;
	// cancelling earlier would break the drain guarantee for tasks that
	// honor their context.
	p.ctx, p.cancel = context.WithCancel(context.Background())

	for i := 0; i < config.Workers; i++ {
		w := NewWorkerWithClock(i, q, clock)
		w.SetErrorHandler(config.ErrorHandler)
		w.SetLogger(logger.With(slog.Int("worker_id", i)))
		p.workers[i] = w

		p.workersWG.Add(1)
		go func(w *Worker) {
			defer p.workersWG.Done()
			w.Start(p.ctx)
		}(w)
	}

	logger.Debug("pool started",
		slog.Int("workers", config.Workers),
		slog.Int("queue_capacity", config.QueueCapacity))

	return p, nil
}

// Submit enqueues a task for execution by some worker. Any task accepted
// before Shutdown is signaled is guaranteed to execute before Shutdown
// returns. After Shutdown has been signaled, Submit returns ErrPoolStopped;
// late tasks are rejected, never silently dropped.
func (p *Pool) Submit(task types.Task) error {
	if task == nil {
		return types.ErrNilTask
	}
	if p.stopped.Load() {
		return types.ErrPoolStopped
	}

	// The queue re-checks the stop flag under its lock, closing the race
	// between the check above and a concurrent Shutdown.
	return p.queue.Push(task)
}

// Shutdown signals stop, then blocks until every task present in the queue
// at signal time has been executed and every worker has terminated (drain
// guarantee). There is no timeout: a task that never returns blocks
// Shutdown indefinitely. The first call drains and returns nil; later
// calls return ErrPoolStopped.
func (p *Pool) Shutdown() error {
	err := types.ErrPoolStopped

	p.shutdownOnce.Do(func() {
		p.stopped.Store(true)
		p.queue.SignalStop()
		p.workersWG.Wait()
		p.cancel()

		p.logger.Debug("pool stopped")
		err = nil
	})

	return err
}

// Size returns the configured worker count
func (p *Pool) Size() int {
	return p.config.Workers
}

// IsStopped reports whether Shutdown has been signaled
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// QueueLength returns the current number of pending tasks
func (p *Pool) QueueLength() int {
	return p.queue.Len()
}

// QueueCapacity returns the configured queue capacity; 0 means unbounded
func (p *Pool) QueueCapacity() int {
	return p.queue.Cap()
}

// GetClock returns the pool clock
func (p *Pool) GetClock() types.Clock {
	return p.clock
}

// Stats gets basic pool statistics
func (p *Pool) Stats() types.PoolStats {
	var active int
	var processed, failed int64
	for _, w := range p.workers {
		if w.State() == WorkerStateExecuting {
			active++
		}
		ws := w.Stats()
		processed += ws.TotalProcessed
		failed += ws.TotalFailed
	}

	return types.PoolStats{
		PoolSize:       p.config.Workers,
		ActiveWorkers:  active,
		QueueLength:    p.queue.Len(),
		QueueCapacity:  p.queue.Cap(),
		TotalProcessed: processed,
		TotalFailed:    failed,
	}
}

// GetWorkerStats gets statistics of all workers
func (p *Pool) GetWorkerStats() []WorkerStats {
	stats := make([]WorkerStats, len(p.workers))
	for i, w := range p.workers {
		stats[i] = w.Stats()
	}
	return stats
}
