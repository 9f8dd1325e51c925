package records

import (
	"context"
	"sync"

	"orlof/pkg/identity"
	"orlof/pkg/platform/sentinel"
)

// InMemory serves record lookups from an immutable in-memory snapshot.
// Replace swaps the snapshot pointer under the write lock, so concurrent
// readers always see either the old complete snapshot or the new one.
type InMemory struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewInMemory creates an empty store. All lookups return ErrNotFound and all
// list operations return empty slices until the first Replace.
func NewInMemory() *InMemory {
	return &InMemory{}
}

// Replace atomically swaps in a complete snapshot.
func (s *InMemory) Replace(_ context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	return nil
}

func (s *InMemory) Registry(_ context.Context) ([]RegistryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Registry, nil
}

func (s *InMemory) Incomes(_ context.Context) ([]IncomeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Incomes, nil
}

func (s *InMemory) BirthEstimates(_ context.Context) ([]EstimatedBirthEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.BirthEstimates, nil
}

func (s *InMemory) Children(_ context.Context) ([]ChildEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Children, nil
}

// FindRegistryByIdentity returns the first registry entry for the identity
// in insertion order.
func (s *InMemory) FindRegistryByIdentity(_ context.Context, id string) (*RegistryEntry, error) {
	key := identity.Normalize(id)
	if key == "" {
		return nil, sentinel.ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.snap.Registry {
		if s.snap.Registry[i].IdentityNumber == key {
			entry := s.snap.Registry[i]
			return &entry, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// FindIncomeByIdentity returns the first income entry for the identity in
// insertion order. At most one entry per identity is expected; when the
// source data carries duplicates the first-loaded entry wins.
func (s *InMemory) FindIncomeByIdentity(_ context.Context, id string) (*IncomeEntry, error) {
	key := identity.Normalize(id)
	if key == "" {
		return nil, sentinel.ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.snap.Incomes {
		if s.snap.Incomes[i].IdentityNumber == key {
			entry := s.snap.Incomes[i]
			return &entry, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindBirthEstimateByParent(_ context.Context, id string) (*EstimatedBirthEntry, error) {
	key := identity.Normalize(id)
	if key == "" {
		return nil, sentinel.ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.snap.BirthEstimates {
		if s.snap.BirthEstimates[i].ParentIdentityNumber == key {
			entry := s.snap.BirthEstimates[i]
			return &entry, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindChildByParent(_ context.Context, id string) (*ChildEntry, error) {
	key := identity.Normalize(id)
	if key == "" {
		return nil, sentinel.ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.snap.Children {
		if s.snap.Children[i].ParentIdentityNumber == key {
			entry := s.snap.Children[i]
			return &entry, nil
		}
	}
	return nil, sentinel.ErrNotFound
}
