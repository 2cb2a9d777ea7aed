// README: Booking service: storage reservations, QR check-in tokens and close-out.
package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sharestuff/internal/events"
	"sharestuff/internal/modules/listing"
	"sharestuff/internal/modules/pricing"
	"sharestuff/internal/obs"
	"sharestuff/internal/types"
)

type Listings interface {
	Get(ctx context.Context, id types.ID) (listing.Listing, error)
}

type Service struct {
	store     *Store
	listings  Listings
	publisher events.Publisher
	metrics   *obs.DomainMetrics
	log       zerolog.Logger
	now       func() time.Time
}

func NewService(store *Store, listings Listings, publisher events.Publisher, metrics *obs.DomainMetrics, log zerolog.Logger) *Service {
	return &Service{
		store:     store,
		listings:  listings,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
		now:       time.Now,
	}
}

type BookCommand struct {
	ListingID  types.ID
	TravelerID types.ID
	Bags       int
	Hours      int
	Tier       string
	// StartTime defaults to now when zero.
	StartTime time.Time
}

// Quote prices a stay without reserving it.
func (s *Service) Quote(ctx context.Context, listingID types.ID, bags, hours int, tierName string) (pricing.StorageQuote, error) {
	if hours > MaxHours {
		return pricing.StorageQuote{}, ErrBadRequest
	}
	tier, err := pricing.ParseStorageTier(tierName)
	if err != nil {
		return pricing.StorageQuote{}, err
	}
	l, err := s.listings.Get(ctx, listingID)
	if err != nil {
		return pricing.StorageQuote{}, err
	}
	s.metrics.StorageQuoted(string(tier))
	return pricing.ComputeStorageQuote(bags, hours, l.PricePerHour, tier), nil
}

func (s *Service) Book(ctx context.Context, cmd BookCommand) (*Booking, error) {
	if cmd.TravelerID == "" || cmd.ListingID == "" || cmd.Bags < 1 || cmd.Hours < 1 || cmd.Hours > MaxHours {
		return nil, ErrBadRequest
	}
	tier, err := pricing.ParseStorageTier(cmd.Tier)
	if err != nil {
		return nil, err
	}
	l, err := s.listings.Get(ctx, cmd.ListingID)
	if err != nil {
		return nil, err
	}
	if cmd.Bags > l.Capacity {
		return nil, ErrOverCapacity
	}

	now := s.now()
	start := cmd.StartTime
	if start.IsZero() {
		start = now
	}
	q := pricing.ComputeStorageQuote(cmd.Bags, cmd.Hours, l.PricePerHour, tier)
	b := &Booking{
		ID:         types.ID(uuid.NewString()),
		ListingID:  l.ID,
		TravelerID: cmd.TravelerID,
		StartTime:  start,
		EndTime:    start.Add(time.Duration(cmd.Hours) * time.Hour),
		Hours:      cmd.Hours,
		BagsCount:  cmd.Bags,
		Tier:       tier,
		Quote:      q,
		TotalPrice: q.Total,
		Status:     StatusActive,
		QRCode:     newQRCode(),
		CreatedAt:  now,
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}
	s.metrics.StorageBooked()
	s.log.Info().
		Str("booking_id", string(b.ID)).
		Str("listing_id", string(l.ID)).
		Int("bags", b.BagsCount).
		Int("hours", b.Hours).
		Float64("total", b.TotalPrice).
		Msg("storage booked")
	s.publish(ctx, b.ID, events.TypeBookingCreated, b)
	return b, nil
}

func (s *Service) Cancel(ctx context.Context, id types.ID) (*Booking, error) {
	return s.transition(ctx, id, StatusCancelled)
}

func (s *Service) Complete(ctx context.Context, id types.ID) (*Booking, error) {
	return s.transition(ctx, id, StatusCompleted)
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Booking, error) {
	return s.store.Get(ctx, id)
}

// ListByTraveler returns the traveler's bookings, latest start first.
func (s *Service) ListByTraveler(ctx context.Context, travelerID types.ID) ([]Booking, error) {
	if travelerID == "" {
		return nil, ErrBadRequest
	}
	return s.store.ListByTraveler(ctx, travelerID)
}

func (s *Service) transition(ctx context.Context, id types.ID, to Status) (*Booking, error) {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(b.Status, to) {
		return nil, ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, id, b.Status, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}
	b.Status = to
	s.log.Info().Str("booking_id", string(id)).Str("status", string(to)).Msg("booking status changed")
	s.publish(ctx, id, events.TypeBookingStatusChanged, map[string]string{
		"bookingId": string(id),
		"status":    string(to),
	})
	return b, nil
}

func (s *Service) publish(ctx context.Context, key types.ID, eventType string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, string(key), events.NewEnvelope(eventType, payload)); err != nil {
		s.log.Warn().Err(err).Str("event_type", eventType).Str("key", string(key)).Msg("publish event failed")
	}
}

func newQRCode() string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return qrPrefix + strings.ToUpper(token[:10])
}
