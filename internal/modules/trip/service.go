// README: Trip service: board search, lookup and bid negotiation rules.
package trip

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sharestuff/internal/types"
)

type Service struct {
	store *Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewService(store *Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// Search matches the query case-insensitively against origin or destination.
// An empty query returns the whole board.
func (s *Service) Search(ctx context.Context, query string) ([]Trip, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}
	out := make([]Trip, 0, len(all))
	for _, t := range all {
		if strings.Contains(strings.ToLower(t.Origin), q) || strings.Contains(strings.ToLower(t.Destination), q) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (Trip, error) {
	return s.store.Get(ctx, id)
}

type BidCommand struct {
	TripID    types.ID
	SenderID  types.ID
	RatePerKg float64
}

// SubmitBid records a negotiated rate. The offer must sit between the
// traveler's floor and the asking price; resubmitting revises the offer.
func (s *Service) SubmitBid(ctx context.Context, cmd BidCommand) (Bid, error) {
	if cmd.TripID == "" || cmd.SenderID == "" {
		return Bid{}, ErrBadRequest
	}
	if math.IsNaN(cmd.RatePerKg) || math.IsInf(cmd.RatePerKg, 0) || cmd.RatePerKg <= 0 {
		return Bid{}, ErrBadRequest
	}
	t, err := s.store.Get(ctx, cmd.TripID)
	if err != nil {
		return Bid{}, err
	}
	if !t.Open() {
		return Bid{}, ErrTripNotOpen
	}
	if t.MinBid > 0 && cmd.RatePerKg < t.MinBid {
		return Bid{}, ErrBidBelowFloor
	}
	if cmd.RatePerKg > t.PricePerKg {
		return Bid{}, ErrBidAboveAsking
	}

	b := Bid{
		ID:          types.ID(uuid.NewString()),
		TripID:      t.ID,
		SenderID:    cmd.SenderID,
		RatePerKg:   cmd.RatePerKg,
		SubmittedAt: s.now(),
	}
	if err := s.store.PutBid(ctx, b); err != nil {
		return Bid{}, err
	}
	s.log.Info().
		Str("trip_id", string(t.ID)).
		Str("sender_id", string(cmd.SenderID)).
		Float64("rate_per_kg", cmd.RatePerKg).
		Float64("asking", t.PricePerKg).
		Msg("bid submitted")
	return b, nil
}

// ActiveBid returns the sender's current bid on a trip, or nil.
func (s *Service) ActiveBid(ctx context.Context, tripID, senderID types.ID) (*Bid, error) {
	if senderID == "" {
		return nil, nil
	}
	b, ok, err := s.store.GetBid(ctx, tripID, senderID)
	if err != nil || !ok {
		return nil, err
	}
	return &b, nil
}
