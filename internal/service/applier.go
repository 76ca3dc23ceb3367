package service

import (
	"context"
	"sync"
)

// Applier executes the update for one matched row. An empty diff is a
// no-op update: nothing is written but the row counts as updated.
type Applier struct {
	organs   OrganStore
	tenantID int64
}

func NewApplier(organs OrganStore, tenantID int64) *Applier {
	return &Applier{organs: organs, tenantID: tenantID}
}

func (a *Applier) Apply(ctx context.Context, entityID int64, diff map[string]interface{}) error {
	if len(diff) == 0 {
		return nil
	}
	return a.organs.UpdateFields(ctx, a.tenantID, entityID, diff)
}

// keyedLocks serializes applies per target entity id so two rows of
// the same batch cannot race an update with stale diffs. Different
// entities proceed concurrently.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[int64]*sync.Mutex)}
}

func (k *keyedLocks) Lock(id int64) {
	k.mu.Lock()
	l, ok := k.locks[id]
	if !ok {
		l = &sync.Mutex{}
		k.locks[id] = l
	}
	k.mu.Unlock()
	l.Lock()
}

func (k *keyedLocks) Unlock(id int64) {
	k.mu.Lock()
	l := k.locks[id]
	k.mu.Unlock()
	l.Unlock()
}
