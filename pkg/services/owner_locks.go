package services

import (
	"sync"

	"github.com/google/uuid"
)

// ownerLocks serializes writes per owner. Every ledger mutation for one
// owner runs under that owner's lock, upholding the single-active-record
// uniqueness invariants; reads take no lock. Locks are never removed - the
// map grows with the number of distinct owners seen by this process.
type ownerLocks struct {
	locks sync.Map // uuid.UUID -> *sync.Mutex
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{}
}

// Lock acquires the mutex for the given owner, creating it on first use.
// The returned function releases it.
func (l *ownerLocks) Lock(ownerID uuid.UUID) func() {
	v, _ := l.locks.LoadOrStore(ownerID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
