package collection

import (
	"context"
	"sync"
)

// KeyedMutex provides one mutual exclusion scope per key. Entries are created
// on first use and dropped once no goroutine holds or waits for them.
type KeyedMutex[K comparable] struct {
	mu    sync.Mutex
	slots map[K]*keySlot
}

type keySlot struct {
	token   chan struct{}
	waiters int
}

func NewKeyedMutex[K comparable]() *KeyedMutex[K] {
	return &KeyedMutex[K]{slots: make(map[K]*keySlot)}
}

// Lock blocks until the scope for k is acquired or ctx is done. On success the
// returned function releases the scope; it must be called exactly once.
func (m *KeyedMutex[K]) Lock(ctx context.Context, k K) (func(), error) {
	m.mu.Lock()
	slot, ok := m.slots[k]
	if !ok {
		slot = &keySlot{token: make(chan struct{}, 1)}
		m.slots[k] = slot
	}
	slot.waiters++
	m.mu.Unlock()

	select {
	case slot.token <- struct{}{}:
	case <-ctx.Done():
		m.release(k, slot, false)
		return nil, ctx.Err()
	}
	var once sync.Once
	return func() {
		once.Do(func() { m.release(k, slot, true) })
	}, nil
}

func (m *KeyedMutex[K]) release(k K, slot *keySlot, held bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if held {
		<-slot.token
	}
	slot.waiters--
	if slot.waiters == 0 {
		delete(m.slots, k)
	}
}

// Len returns the number of keys currently held or awaited.
func (m *KeyedMutex[K]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}
