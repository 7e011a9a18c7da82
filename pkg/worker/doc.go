/*
Package worker provides a fixed-size worker pool executing tasks drawn from
a single shared FIFO queue, with graceful, drain-complete shutdown.

# Overview

This package implements a bounded worker pool supporting:
- A fixed number of worker goroutines, spawned at construction
- A mutex and condition variable protected FIFO task queue
- Blocking consumption with no busy-waiting in idle workers
- Panic recovery around every task execution
- Graceful shutdown that drains all accepted work before returning

# Core Components

## Pool

The pool owns the lifecycle of its workers and the submission entry point.
Workers start at construction and are joined by Shutdown. The pool is
never resized.

## Worker

Each worker loops: wait for work or stop, dequeue, execute, repeat. Task
failures and panics are caught inside the loop, reported through the
configured ErrorHandler and logger, and never terminate the worker.

## Task

Task is one unit of schedulable work. BasicTask wraps a closure; custom
implementations only need Execute and ID.

# Shutdown Semantics

Shutdown signals stop, wakes all workers, and waits for each to finish.
Every task present in the queue at signal time is executed before Shutdown
returns (drain guarantee). Submissions after the stop signal are rejected
with ErrPoolStopped. There is no per-task timeout: a task that never
returns blocks that worker, and therefore Shutdown, indefinitely.

# Ordering

FIFO within the queue is the only ordering guarantee. Nothing is
guaranteed about which worker executes which task, nor about the relative
completion order of two tasks handed to two different workers.

# Usage

	pool, err := worker.New(&worker.Config{Workers: 4})
	if err != nil {
		log.Fatal(err)
	}

	task := worker.NewTask(func(ctx context.Context) error {
		// execute work
		return nil
	})

	if err := pool.Submit(task); err != nil {
		log.Printf("submit failed: %v", err)
	}

	// Drains accepted work, then joins all workers.
	if err := pool.Shutdown(); err != nil {
		log.Printf("shutdown: %v", err)
	}

# Backpressure

The queue is unbounded by default. Setting Config.QueueCapacity bounds it;
Config.FullPolicy then selects what a full queue does to producers: block
until space frees up, reject with ErrQueueFull, or drop the oldest pending
task.
*/
package worker
