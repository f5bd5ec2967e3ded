package queue

import (
	"context"
	"time"
)

// MemoryQueue backs single-process deployments that run without Redis.
type MemoryQueue struct {
	ch          chan string
	pollTimeout time.Duration
}

func NewMemoryQueue(size int) *MemoryQueue {
	return &MemoryQueue{ch: make(chan string, size), pollTimeout: defaultPollTimeout}
}

func (q *MemoryQueue) Push(ctx context.Context, jobID string) error {
	select {
	case q.ch <- jobID:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryQueue) Pop(ctx context.Context) (string, error) {
	timer := time.NewTimer(q.pollTimeout)
	defer timer.Stop()
	select {
	case id := <-q.ch:
		return id, nil
	case <-timer.C:
		return "", ErrEmpty
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
