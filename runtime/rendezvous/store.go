package rendezvous

import "sync"

// Store keeps the barrier of every group taking part in a run.
type Store struct {
	mu       sync.RWMutex
	barriers map[int]*Barrier
}

func NewStore() *Store {
	return &Store{barriers: make(map[int]*Barrier)}
}

// Create registers a new barrier. If one already exists for the group the
// existing pointer is returned.
func (s *Store) Create(b *Barrier) *Barrier {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.barriers[b.GroupID]; ok {
		return existing
	}
	s.barriers[b.GroupID] = b
	return b
}

func (s *Store) Get(groupID int) *Barrier {
	s.mu.RLock()
	b := s.barriers[groupID]
	s.mu.RUnlock()
	return b
}

// Iterate executes fn for each barrier under read lock.
func (s *Store) Iterate(fn func(groupID int, b *Barrier)) {
	s.mu.RLock()
	for id, b := range s.barriers {
		fn(id, b)
	}
	s.mu.RUnlock()
}
