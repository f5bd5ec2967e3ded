package service

import (
	"context"
	"errors"
	"testing"
)

func TestCanceler_NewerRequestCancelsOlder(t *testing.T) {
	c := NewCanceler()

	first, doneFirst := c.Start(context.Background(), "s", PurposeActivity)
	second, doneSecond := c.Start(context.Background(), "s", PurposeActivity)
	other, doneOther := c.Start(context.Background(), "s", PurposeProblems)

	if !errors.Is(first.Err(), context.Canceled) {
		t.Errorf("first request should be cancelled, got %v", first.Err())
	}
	if second.Err() != nil || other.Err() != nil {
		t.Errorf("newer requests must stay live: %v, %v", second.Err(), other.Err())
	}

	// A finished stale request must not evict its successor.
	doneFirst()
	if got := c.inFlight(); got != 2 {
		t.Errorf("inFlight = %d, want 2", got)
	}
	doneSecond()
	doneOther()
	if got := c.inFlight(); got != 0 {
		t.Errorf("inFlight = %d, want 0", got)
	}
}

func TestCanceler_CancelSession(t *testing.T) {
	c := NewCanceler()
	a, _ := c.Start(context.Background(), "s1", PurposeActivity)
	b, _ := c.Start(context.Background(), "s1", PurposeProblems)
	keep, doneKeep := c.Start(context.Background(), "s2", PurposeActivity)
	defer doneKeep()

	c.CancelSession("s1")

	if a.Err() == nil || b.Err() == nil {
		t.Error("session s1 requests should be cancelled")
	}
	if keep.Err() != nil {
		t.Error("other sessions must not be affected")
	}
	if got := c.inFlight(); got != 1 {
		t.Errorf("inFlight = %d, want 1", got)
	}
}
