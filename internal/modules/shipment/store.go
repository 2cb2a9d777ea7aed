// README: In-memory shipment store with optimistic status updates.
package shipment

import (
	"context"
	"sort"
	"sync"
	"time"

	"sharestuff/internal/types"
)

type Store struct {
	mu        sync.RWMutex
	shipments map[types.ID]Shipment
}

func NewStore() *Store {
	return &Store{shipments: make(map[types.ID]Shipment)}
}

func (s *Store) Create(ctx context.Context, sh *Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.shipments[sh.ID]; exists {
		return ErrConflict
	}
	s.shipments[sh.ID] = *sh
	return nil
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sh, ok := s.shipments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sh, nil
}

// UpdateStatus applies from -> to only when the stored status and version
// still match; it reports false when another writer got there first.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to OrderStatus, version int, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shipments[id]
	if !ok {
		return false, ErrNotFound
	}
	if sh.Status != from || sh.StatusVersion != version {
		return false, nil
	}
	sh.Status = to
	sh.StatusVersion++
	sh.Escrow = EscrowFor(to)
	sh.UpdatedAt = at
	s.shipments[id] = sh
	return true, nil
}

// ListBySender returns the sender's shipments, newest first.
func (s *Store) ListBySender(ctx context.Context, senderID types.ID) ([]Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Shipment, 0)
	for _, sh := range s.shipments {
		if sh.SenderID == senderID {
			out = append(out, sh)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
