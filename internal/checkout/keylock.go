package checkout

import "sync"

// keyLock serializes work per key. Entries are reference counted and removed
// once the last holder unlocks.
type keyLock struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyLock() *keyLock {
	return &keyLock{locks: make(map[string]*refMutex)}
}

// Lock blocks until key is free and returns the matching unlock func.
func (kl *keyLock) Lock(key string) func() {
	kl.mu.Lock()
	m, ok := kl.locks[key]
	if !ok {
		m = &refMutex{}
		kl.locks[key] = m
	}
	m.refs++
	kl.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		kl.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(kl.locks, key)
		}
		kl.mu.Unlock()
	}
}

func (kl *keyLock) size() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.locks)
}
