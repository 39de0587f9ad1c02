package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/btree"
)

// SessionExpirer is notified when a tracked session's deadline passes.
// The engine does not depend on the service layer directly.
type SessionExpirer interface {
	ExpireSession(sessionID string, now time.Time)
}

// deadlineEntry is a single tracked session in the expiry index.
type deadlineEntry struct {
	Deadline  time.Time
	SessionID string
}

// deadlineLess orders entries by deadline ascending, then session ID, so
// Min() is always the next session to expire.
func deadlineLess(a, b deadlineEntry) bool {
	if !a.Deadline.Equal(b.Deadline) {
		return a.Deadline.Before(b.Deadline)
	}
	return a.SessionID < b.SessionID
}

// ExpiryManager tracks idle deadlines of form sessions in a B-tree and
// periodically expires sessions whose deadline has passed.
type ExpiryManager struct {
	interval  time.Duration
	expirer   SessionExpirer
	mu        sync.Mutex // protects expirer, deadlines and index
	deadlines *btree.BTreeG[deadlineEntry]
	index     map[string]deadlineEntry // session_id → entry
}

// NewExpiryManager creates an ExpiryManager that sweeps every interval.
func NewExpiryManager(interval time.Duration, expirer SessionExpirer) *ExpiryManager {
	const degree = 32
	return &ExpiryManager{
		interval:  interval,
		expirer:   expirer,
		deadlines: btree.NewG[deadlineEntry](degree, deadlineLess),
		index:     make(map[string]deadlineEntry),
	}
}

// SetExpirer replaces the expiry callback. The service layer owns the
// sessions and registers itself after construction.
func (e *ExpiryManager) SetExpirer(expirer SessionExpirer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expirer = expirer
}

// Track sets or moves the deadline of a session.
func (e *ExpiryManager) Track(sessionID string, deadline time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if old, ok := e.index[sessionID]; ok {
		e.deadlines.Delete(old)
	}
	entry := deadlineEntry{Deadline: deadline, SessionID: sessionID}
	e.deadlines.ReplaceOrInsert(entry)
	e.index[sessionID] = entry
}

// Forget stops tracking a session. It is a no-op for unknown IDs.
func (e *ExpiryManager) Forget(sessionID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.index[sessionID]
	if !ok {
		return
	}
	delete(e.index, sessionID)
	e.deadlines.Delete(entry)
}

// Start launches a background goroutine that ticks at the configured
// interval and expires sessions. It stops when ctx is cancelled.
func (e *ExpiryManager) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				e.tick(t)
			}
		}
	}()
}

// tick pops every entry with deadline <= now and hands it to the expirer
// outside the lock.
func (e *ExpiryManager) tick(now time.Time) {
	e.mu.Lock()
	var due []string
	for {
		entry, ok := e.deadlines.Min()
		if !ok || entry.Deadline.After(now) {
			break
		}
		e.deadlines.DeleteMin()
		delete(e.index, entry.SessionID)
		due = append(due, entry.SessionID)
	}
	expirer := e.expirer
	e.mu.Unlock()

	if expirer == nil {
		return
	}
	for _, id := range due {
		expirer.ExpireSession(id, now)
	}
}

// NextDeadline returns the earliest tracked deadline.
func (e *ExpiryManager) NextDeadline() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.deadlines.Min()
	if !ok {
		return time.Time{}, false
	}
	return entry.Deadline, true
}

// TrackedCount returns the number of sessions currently tracked for
// expiration. Useful for testing.
func (e *ExpiryManager) TrackedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deadlines.Len()
}
