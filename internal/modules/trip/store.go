// README: In-memory trip board and bid book.
package trip

import (
	"context"
	"sync"

	"sharestuff/internal/types"
)

type bidKey struct {
	trip   types.ID
	sender types.ID
}

type Store struct {
	mu    sync.RWMutex
	trips []Trip
	index map[types.ID]int
	bids  map[bidKey]Bid
}

func NewStore(seed []Trip) *Store {
	s := &Store{
		trips: make([]Trip, 0, len(seed)),
		index: make(map[types.ID]int, len(seed)),
		bids:  make(map[bidKey]Bid),
	}
	for _, t := range seed {
		s.index[t.ID] = len(s.trips)
		s.trips = append(s.trips, t)
	}
	return s
}

func (s *Store) List(ctx context.Context) ([]Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Trip, len(s.trips))
	copy(out, s.trips)
	return out, nil
}

func (s *Store) Get(ctx context.Context, id types.ID) (Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return Trip{}, ErrNotFound
	}
	return s.trips[i], nil
}

// PutBid stores b, replacing any earlier bid by the same sender on the same trip.
func (s *Store) PutBid(ctx context.Context, b Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bids[bidKey{trip: b.TripID, sender: b.SenderID}] = b
	return nil
}

func (s *Store) GetBid(ctx context.Context, tripID, senderID types.ID) (Bid, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bids[bidKey{trip: tripID, sender: senderID}]
	return b, ok, nil
}
