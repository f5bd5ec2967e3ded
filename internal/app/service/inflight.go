package service

import (
	"context"
	"strings"
	"sync"
)

const (
	PurposeActivity = "activity"
	PurposeProblems = "problems"
)

// Canceler keeps at most one in-flight request per session and purpose.
// Starting a new one cancels its predecessor, so a slow stale response can
// never overwrite a newer one.
type Canceler struct {
	mu      sync.Mutex
	seq     uint64
	entries map[string]inflightEntry
}

type inflightEntry struct {
	id     uint64
	cancel context.CancelFunc
}

func NewCanceler() *Canceler {
	return &Canceler{entries: make(map[string]inflightEntry)}
}

// Start returns a context derived from parent and a done func the caller must
// invoke when the request finishes.
func (c *Canceler) Start(parent context.Context, sessionID, purpose string) (context.Context, func()) {
	key := sessionID + "|" + purpose
	ctx, cancel := context.WithCancel(parent)

	c.mu.Lock()
	if prev, ok := c.entries[key]; ok {
		prev.cancel()
	}
	c.seq++
	id := c.seq
	c.entries[key] = inflightEntry{id: id, cancel: cancel}
	c.mu.Unlock()

	done := func() {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && cur.id == id {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		cancel()
	}
	return ctx, done
}

// CancelSession aborts everything the session has in flight.
func (c *Canceler) CancelSession(sessionID string) {
	prefix := sessionID + "|"
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if strings.HasPrefix(key, prefix) {
			e.cancel()
			delete(c.entries, key)
		}
	}
}

func (c *Canceler) inFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
