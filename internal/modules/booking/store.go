// README: In-memory storage booking store.
package booking

import (
	"context"
	"sort"
	"sync"

	"sharestuff/internal/types"
)

type Store struct {
	mu       sync.RWMutex
	bookings map[types.ID]Booking
}

func NewStore() *Store {
	return &Store{bookings: make(map[types.ID]Booking)}
}

func (s *Store) Create(ctx context.Context, b *Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = *b
	return nil
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

// UpdateStatus applies from -> to atomically; false means the booking was
// no longer in from.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return false, ErrNotFound
	}
	if b.Status != from {
		return false, nil
	}
	b.Status = to
	s.bookings[id] = b
	return true, nil
}

func (s *Store) ListByTraveler(ctx context.Context, travelerID types.ID) ([]Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Booking, 0)
	for _, b := range s.bookings {
		if b.TravelerID == travelerID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}
