package auction

import "sync"

// lockTable hands out one mutex per listing ID so that bid placement and
// closing are serialized per listing while unrelated listings proceed in
// parallel.  Entries are reference counted and removed once the last
// holder releases, so the table stays bounded by the number of listings
// under concurrent mutation rather than the number ever seen.
type lockTable struct {
	mu    sync.Mutex
	locks map[uint64]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[uint64]*lockEntry)}
}

// lock acquires the mutex for the given listing ID and returns the
// matching release function.  The release function must be called exactly
// once, typically via defer.
func (t *lockTable) lock(id uint64) (unlock func()) {
	t.mu.Lock()
	e, ok := t.locks[id]
	if !ok {
		e = &lockEntry{}
		t.locks[id] = e
	}
	e.refs++
	t.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		t.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(t.locks, id)
		}
		t.mu.Unlock()
	}
}
