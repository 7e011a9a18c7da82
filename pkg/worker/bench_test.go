package worker

import (
	"context"
	"testing"
)

func BenchmarkPool_Submit(b *testing.B) {
	pool, err := New(&Config{Workers: 4})
	if err != nil {
		b.Fatal(err)
	}

	task := NewTask(func(ctx context.Context) error { return nil })

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := pool.Submit(task); err != nil {
			b.Fatal(err)
		}
	}
	b.StopTimer()

	if err := pool.Shutdown(); err != nil {
		b.Fatal(err)
	}
}

func BenchmarkPool_SubmitParallel(b *testing.B) {
	pool, err := New(&Config{Workers: 4})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		task := NewTask(func(ctx context.Context) error { return nil })
		for pb.Next() {
			if err := pool.Submit(task); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.StopTimer()

	if err := pool.Shutdown(); err != nil {
		b.Fatal(err)
	}
}
