package service

import (
	"sort"
	"sync"
)

// EntityLocks serializes writers per entity id. Checkout, settlement and
// the accrual pass all mutate rentals and items through read-then-write
// sequences; locking the touched ids keeps the stock-conservation
// invariant under concurrent requests. Multi-key acquisition sorts the
// keys so two operations touching the same items cannot deadlock.
type EntityLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func NewEntityLocks() *EntityLocks {
	return &EntityLocks{locks: make(map[string]*lockEntry)}
}

func (l *EntityLocks) Lock(key string) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &lockEntry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
}

func (l *EntityLocks) Unlock(key string) {
	l.mu.Lock()
	e := l.locks[key]
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
	l.mu.Unlock()

	e.mu.Unlock()
}

// LockAll acquires every key in sorted order; UnlockAll releases them.
func (l *EntityLocks) LockAll(keys []string) []string {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	for _, k := range sorted {
		l.Lock(k)
	}
	return sorted
}

func (l *EntityLocks) UnlockAll(keys []string) {
	for i := len(keys) - 1; i >= 0; i-- {
		l.Unlock(keys[i])
	}
}
