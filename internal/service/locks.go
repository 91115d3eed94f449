package service

import (
	"sync"

	"github.com/MKhiriev/go-state-sync/models"
)

type refMutex struct {
	mu   sync.Mutex
	refs int
}

// keyedLocks serializes work per state id. Only callers holding the same id
// wait for each other. A mutex lives in the map while it is held or awaited.
// The zero value is ready to use.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[models.StateID]*refMutex
}

func (l *keyedLocks) lock(id models.StateID) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[models.StateID]*refMutex)
	}
	m, ok := l.locks[id]
	if !ok {
		m = &refMutex{}
		l.locks[id] = m
	}
	m.refs++
	l.mu.Unlock()

	m.mu.Lock()

	return func() {
		m.mu.Unlock()

		l.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

// held returns the number of ids with a lock held or awaited.
func (l *keyedLocks) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
