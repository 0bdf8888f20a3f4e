package repository

import "sync"

// pairKey identifies one (user, item) favorite edge
type pairKey struct {
	userID uint
	itemID uint
}

// keyedLock hands out one mutex per pair. Entries are reference counted and
// dropped when the last holder releases, so the map stays proportional to
// the number of in-flight toggles rather than to the number of edges.
type keyedLock struct {
	mu    sync.Mutex
	locks map[pairKey]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedLock() *keyedLock {
	return &keyedLock{locks: make(map[pairKey]*refMutex)}
}

// Lock blocks until the pair is held and returns the release function
func (k *keyedLock) Lock(key pairKey) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()

	return func() {
		m.Unlock()

		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// size returns the number of tracked pairs
func (k *keyedLock) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
