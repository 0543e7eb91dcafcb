package services

import "sync"

// keyedMutex hands out one mutex per integer key. Settlement locks per
// thread, rating locks per ratee; entries are kept for the process lifetime,
// the key space is bounded by active users/threads.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func (k *keyedMutex) lock(key int) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[int]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
