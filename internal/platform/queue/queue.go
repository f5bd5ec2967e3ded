package queue

import (
	"context"
	"errors"
)

// ErrEmpty is returned by Pop when nothing arrived within the poll window.
var ErrEmpty = errors.New("queue empty")

// Queue carries execution job ids from the HTTP handlers to the worker.
type Queue interface {
	Push(ctx context.Context, jobID string) error
	Pop(ctx context.Context) (string, error)
}
