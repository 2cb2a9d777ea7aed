// README: In-memory listing catalog.
package listing

import (
	"context"
	"sync"

	"sharestuff/internal/types"
)

type Store struct {
	mu       sync.RWMutex
	listings []Listing
	index    map[types.ID]int
}

func NewStore(seed []Listing) *Store {
	s := &Store{index: make(map[types.ID]int, len(seed))}
	for _, l := range seed {
		s.index[l.ID] = len(s.listings)
		s.listings = append(s.listings, l)
	}
	return s
}

func (s *Store) List(ctx context.Context) ([]Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Listing, len(s.listings))
	copy(out, s.listings)
	return out, nil
}

func (s *Store) Get(ctx context.Context, id types.ID) (Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return Listing{}, ErrNotFound
	}
	return s.listings[i], nil
}
