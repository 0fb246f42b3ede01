package lock

import (
	"context"
	"sync"
	"time"
)

// MemoryRunLock implements the run lock with an in-process map.
// Suitable for single-instance deployments and testing.
// WARNING: it does not coordinate separate processes.
type MemoryRunLock struct {
	mu      sync.Mutex
	held    map[string]heldLock
	ttl     time.Duration
	nowFunc func() time.Time
	nextID  uint64
}

type heldLock struct {
	id        uint64
	expiresAt time.Time
}

// NewMemoryRunLock creates an in-memory run lock whose entries expire after ttl
func NewMemoryRunLock(ttl time.Duration) *MemoryRunLock {
	return &MemoryRunLock{
		held:    make(map[string]heldLock),
		ttl:     ttl,
		nowFunc: time.Now,
	}
}

// TryAcquire takes the lock for key unless an unexpired holder exists
func (l *MemoryRunLock) TryAcquire(_ context.Context, key string) (func(context.Context) error, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFunc()
	if h, ok := l.held[key]; ok && now.Before(h.expiresAt) {
		return nil, false, nil
	}

	l.nextID++
	id := l.nextID
	l.held[key] = heldLock{id: id, expiresAt: now.Add(l.ttl)}

	release := func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		// an expired lock may have been taken over; only the owner may delete it
		if h, ok := l.held[key]; ok && h.id == id {
			delete(l.held, key)
		}
		return nil
	}
	return release, true, nil
}
