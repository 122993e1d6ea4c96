package vfm

import "sync"

// lockTable serializes mutations per key (file id, or path during
// registration). Two concurrent CreateVersion calls for one file must not
// race on the next-version-number computation or the backup file name;
// restores and pin/unpin contend on the same per-file lock. Operations on
// different files proceed in parallel.
//
// Locks are never removed from the table. The catalog is a personal file
// library, so the table stays small; reclaiming entries would need
// reference counting for no practical gain.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use.
// The caller must call the returned unlock function.
func (t *lockTable) Lock(key string) func() {
	t.mu.Lock()
	l, ok := t.locks[key]
	if !ok {
		l = &sync.Mutex{}
		t.locks[key] = l
	}
	t.mu.Unlock()

	l.Lock()
	return l.Unlock
}
