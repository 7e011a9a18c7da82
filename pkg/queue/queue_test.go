package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlin7/taskpool/pkg/types"
)

// testTask is a minimal Task implementation for queue tests
type testTask struct {
	id string
}

func (t *testTask) Execute(ctx context.Context) error { return nil }
func (t *testTask) ID() string                        { return t.id }

func newTestTask(id string) *testTask {
	return &testTask{id: id}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *Config
		expectError bool
	}{
		{
			name:        "nil config should use default",
			config:      nil,
			expectError: false,
		},
		{
			name: "unbounded queue",
			config: &Config{
				Capacity: 0,
			},
			expectError: false,
		},
		{
			name: "bounded queue with reject policy",
			config: &Config{
				Capacity:   5,
				FullPolicy: Reject,
			},
			expectError: false,
		},
		{
			name: "negative capacity should error",
			config: &Config{
				Capacity: -1,
			},
			expectError: true,
		},
		{
			name: "unknown policy should error",
			config: &Config{
				Capacity:   5,
				FullPolicy: Policy(42),
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := New(tt.config)

			if tt.expectError {
				assert.ErrorIs(t, err, types.ErrInvalidConfig)
				assert.Nil(t, q)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, q)
			}
		})
	}
}

func TestTaskQueue_FIFO(t *testing.T) {
	q, err := New(nil)
	require.NoError(t, err)

	ids := []string{"a", "b", "c", "d", "e"}
	for _, id := range ids {
		require.NoError(t, q.Push(newTestTask(id)))
	}
	assert.Equal(t, len(ids), q.Len())

	for _, want := range ids {
		task, ok := q.PopBlocking()
		require.True(t, ok)
		assert.Equal(t, want, task.ID())
	}
	assert.Equal(t, 0, q.Len())
}

func TestTaskQueue_PopWakesOnPush(t *testing.T) {
	q, err := New(nil)
	require.NoError(t, err)

	got := make(chan string, 1)
	go func() {
		task, ok := q.PopBlocking()
		if ok {
			got <- task.ID()
		}
	}()

	// Give the consumer a chance to block before pushing.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, q.Push(newTestTask("wake")))

	select {
	case id := <-got:
		assert.Equal(t, "wake", id)
	case <-time.After(2 * time.Second):
		t.Fatal("blocked consumer was not woken by push")
	}
}

func TestTaskQueue_PushAfterStop(t *testing.T) {
	q, err := New(nil)
	require.NoError(t, err)

	q.SignalStop()
	assert.True(t, q.Stopped())

	err = q.Push(newTestTask("late"))
	assert.ErrorIs(t, err, types.ErrPoolStopped)
	assert.Equal(t, 0, q.Len())
}

func TestTaskQueue_DrainsBeforeStopping(t *testing.T) {
	q, err := New(nil)
	require.NoError(t, err)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, q.Push(newTestTask(id)))
	}

	q.SignalStop()

	// Remaining tasks are handed out before the stop is reported.
	for _, want := range []string{"a", "b", "c"} {
		task, ok := q.PopBlocking()
		require.True(t, ok)
		assert.Equal(t, want, task.ID())
	}

	task, ok := q.PopBlocking()
	assert.False(t, ok)
	assert.Nil(t, task)
}

func TestTaskQueue_StopBroadcastWakesAllConsumers(t *testing.T) {
	q, err := New(nil)
	require.NoError(t, err)

	const consumers = 3
	var wg sync.WaitGroup
	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task, ok := q.PopBlocking()
			assert.False(t, ok)
			assert.Nil(t, task)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	q.SignalStop()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("not all blocked consumers were woken by stop")
	}
}

func TestTaskQueue_SignalStopIdempotent(t *testing.T) {
	q, err := New(nil)
	require.NoError(t, err)

	q.SignalStop()
	q.SignalStop()
	assert.True(t, q.Stopped())
}

func TestTaskQueue_RejectPolicy(t *testing.T) {
	q, err := New(&Config{Capacity: 2, FullPolicy: Reject})
	require.NoError(t, err)

	require.NoError(t, q.Push(newTestTask("a")))
	require.NoError(t, q.Push(newTestTask("b")))

	err = q.Push(newTestTask("c"))
	assert.ErrorIs(t, err, types.ErrQueueFull)
	assert.Equal(t, 2, q.Len())
}

func TestTaskQueue_DropOldestPolicy(t *testing.T) {
	q, err := New(&Config{Capacity: 2, FullPolicy: DropOldest})
	require.NoError(t, err)

	require.NoError(t, q.Push(newTestTask("a")))
	require.NoError(t, q.Push(newTestTask("b")))
	require.NoError(t, q.Push(newTestTask("c")))
	assert.Equal(t, 2, q.Len())

	// "a" was evicted to make room for "c".
	for _, want := range []string{"b", "c"} {
		task, ok := q.PopBlocking()
		require.True(t, ok)
		assert.Equal(t, want, task.ID())
	}
}

func TestTaskQueue_BlockPolicy(t *testing.T) {
	q, err := New(&Config{Capacity: 1, FullPolicy: Block})
	require.NoError(t, err)

	require.NoError(t, q.Push(newTestTask("a")))

	pushed := make(chan error, 1)
	go func() {
		pushed <- q.Push(newTestTask("b"))
	}()

	// The producer must stay blocked while the queue is full.
	select {
	case err := <-pushed:
		t.Fatalf("push returned %v while queue was full", err)
	case <-time.After(50 * time.Millisecond):
	}

	task, ok := q.PopBlocking()
	require.True(t, ok)
	assert.Equal(t, "a", task.ID())

	select {
	case err := <-pushed:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("blocked producer was not woken by pop")
	}

	task, ok = q.PopBlocking()
	require.True(t, ok)
	assert.Equal(t, "b", task.ID())
}

func TestTaskQueue_BlockPolicyStopUnblocksProducer(t *testing.T) {
	q, err := New(&Config{Capacity: 1, FullPolicy: Block})
	require.NoError(t, err)

	require.NoError(t, q.Push(newTestTask("a")))

	pushed := make(chan error, 1)
	go func() {
		pushed <- q.Push(newTestTask("b"))
	}()

	time.Sleep(20 * time.Millisecond)
	q.SignalStop()

	select {
	case err := <-pushed:
		assert.ErrorIs(t, err, types.ErrPoolStopped)
	case <-time.After(2 * time.Second):
		t.Fatal("blocked producer was not woken by stop")
	}
}

func TestPolicy_String(t *testing.T) {
	assert.Equal(t, "block", Block.String())
	assert.Equal(t, "reject", Reject.String())
	assert.Equal(t, "drop-oldest", DropOldest.String())
	assert.Equal(t, "unknown", Policy(42).String())
}
