// Package memory is an in-process storage adapter for development and tests.
// It keeps the same transactional contract as the Postgres adapter: writes made
// through a unit of work become visible only on Commit, and units of work run
// one at a time, which stands in for row locks.
package memory

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

var (
	ErrNoTransaction = errors.New("memory: no active transaction")
	ErrDuplicateKey  = errors.New("memory: order already exists")
)

// Store holds committed orders as snapshots, so callers never share aggregates.
type Store struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]order.Snapshot

	// writer admits one unit of work or autocommit write at a time.
	writer chan struct{}
}

func NewStore() *Store {
	return &Store{
		orders: make(map[kernel.UUID]order.Snapshot),
		writer: make(chan struct{}, 1),
	}
}

// Len reports the number of committed orders.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.writer <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.writer
}

func (s *Store) get(id kernel.UUID) (order.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.orders[id]
	return snap, ok
}

// apply writes staged changes; a nil snapshot deletes the order.
func (s *Store) apply(changes map[kernel.UUID]*order.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, snap := range changes {
		if snap == nil {
			delete(s.orders, id)
			continue
		}
		s.orders[id] = *snap
	}
}

func (s *Store) committed() []order.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]order.Snapshot, 0, len(s.orders))
	for _, snap := range s.orders {
		list = append(list, snap)
	}
	return list
}

func sortByTime(list []order.Snapshot, at func(order.Snapshot) time.Time) {
	slices.SortFunc(list, func(a, b order.Snapshot) int {
		if c := at(a).Compare(at(b)); c != 0 {
			return c
		}
		return compareIDs(a.ID, b.ID)
	})
}

func compareIDs(a, b kernel.UUID) int {
	as, bs := a.String(), b.String()
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}
