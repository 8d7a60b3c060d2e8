package locks

import "sync"

// Keyed grants at most one holder per resource key. Acquire never blocks;
// callers that lose the race report a busy result instead of queueing.
type Keyed struct {
	mu    sync.Mutex
	inUse map[string]struct{}
}

func NewKeyed() *Keyed {
	return &Keyed{inUse: make(map[string]struct{})}
}

// TryAcquire claims the key if it is free and reports whether it succeeded.
func (k *Keyed) TryAcquire(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, held := k.inUse[key]; held {
		return false
	}
	k.inUse[key] = struct{}{}
	return true
}

// Release frees the key. Releasing an unheld key is a no-op.
func (k *Keyed) Release(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.inUse, key)
}
