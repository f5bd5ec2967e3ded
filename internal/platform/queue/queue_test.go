package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func queues(t *testing.T) map[string]Queue {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	rq := NewRedisQueue(rdb, "codespace_jobs_queue")
	rq.pollTimeout = 100 * time.Millisecond
	mq := NewMemoryQueue(8)
	mq.pollTimeout = 100 * time.Millisecond
	return map[string]Queue{"redis": rq, "memory": mq}
}

func TestQueue_FIFO(t *testing.T) {
	ctx := context.Background()
	for name, q := range queues(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"a", "b", "c"} {
				if err := q.Push(ctx, id); err != nil {
					t.Fatalf("Push(%s): %v", id, err)
				}
			}
			for _, want := range []string{"a", "b", "c"} {
				got, err := q.Pop(ctx)
				if err != nil {
					t.Fatalf("Pop: %v", err)
				}
				if got != want {
					t.Errorf("Pop = %q, want %q", got, want)
				}
			}
		})
	}
}

func TestQueue_PopEmpty(t *testing.T) {
	for name, q := range queues(t) {
		t.Run(name, func(t *testing.T) {
			_, err := q.Pop(context.Background())
			if !errors.Is(err, ErrEmpty) {
				t.Errorf("expected ErrEmpty, got %v", err)
			}
		})
	}
}

func TestMemoryQueue_PopCancelled(t *testing.T) {
	q := NewMemoryQueue(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := q.Pop(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
