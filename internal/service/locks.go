package service

import "sync"

// entityLocks serializes mutations per entity id: concurrent confirm and
// cancel against the same scooter take the same mutex, operations on
// different entities proceed independently.
type entityLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newEntityLocks() *entityLocks {
	return &entityLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for id and returns the release func.
func (e *entityLocks) lock(id string) func() {
	e.mu.Lock()
	m, ok := e.locks[id]
	if !ok {
		m = &sync.Mutex{}
		e.locks[id] = m
	}
	e.mu.Unlock()

	m.Lock()
	return m.Unlock
}
