// README: Shipment service: live quotes, booking confirmation and lifecycle transitions.
package shipment

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sharestuff/internal/events"
	"sharestuff/internal/modules/pricing"
	"sharestuff/internal/modules/trip"
	"sharestuff/internal/obs"
	"sharestuff/internal/types"
)

var (
	ErrNotFound     = errors.New("shipment not found")
	ErrBadRequest   = errors.New("bad request")
	ErrInvalidState = errors.New("invalid state transition")
	ErrConflict     = errors.New("shipment state conflict")
	ErrOverCapacity = errors.New("weight exceeds the traveler's available capacity")
)

// Trips is the slice of the trip service a booking needs.
type Trips interface {
	Get(ctx context.Context, id types.ID) (trip.Trip, error)
	ActiveBid(ctx context.Context, tripID, senderID types.ID) (*trip.Bid, error)
}

type Service struct {
	store     *Store
	trips     Trips
	publisher events.Publisher
	metrics   *obs.DomainMetrics
	log       zerolog.Logger
	now       func() time.Time
}

func NewService(store *Store, trips Trips, publisher events.Publisher, metrics *obs.DomainMetrics, log zerolog.Logger) *Service {
	return &Service{
		store:     store,
		trips:     trips,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
		now:       time.Now,
	}
}

// QuoteCommand is the set of inputs a shipper adjusts while pricing a trip.
type QuoteCommand struct {
	TripID        types.ID
	SenderID      types.ID
	WeightKg      float64
	DeclaredValue float64
	Urgency       string
	Insurance     string
}

type BookCommand struct {
	QuoteCommand
	ItemDescription string
}

type Preview struct {
	TripID     types.ID              `json:"tripId"`
	RatePerKg  float64               `json:"ratePerKg"`
	Negotiated bool                  `json:"negotiated"`
	Quote      pricing.ShipmentQuote `json:"quote"`
}

// Preview prices the command against the trip's asking rate, or the sender's
// active bid when there is one. Negative numbers are left to the engine to
// clamp; a quote that overflows is rejected with pricing.ErrAmountOutOfRange.
func (s *Service) Preview(ctx context.Context, cmd QuoteCommand) (Preview, error) {
	urgency, tier, err := parseTiers(cmd)
	if err != nil {
		return Preview{}, err
	}
	t, err := s.trips.Get(ctx, cmd.TripID)
	if err != nil {
		return Preview{}, err
	}
	rate, negotiated, err := s.rateFor(ctx, t, cmd.SenderID)
	if err != nil {
		return Preview{}, err
	}
	q := pricing.ComputeQuote(cmd.WeightKg, rate, cmd.DeclaredValue, urgency, tier)
	if err := q.Validate(); err != nil {
		return Preview{}, err
	}
	s.metrics.ShipmentQuoted(string(urgency), string(tier))
	return Preview{TripID: t.ID, RatePerKg: rate, Negotiated: negotiated, Quote: q}, nil
}

// Book confirms a shipment. The quote is recomputed from the same inputs
// rather than trusting a previously shown preview.
func (s *Service) Book(ctx context.Context, cmd BookCommand) (*Shipment, error) {
	if cmd.SenderID == "" || cmd.TripID == "" || strings.TrimSpace(cmd.ItemDescription) == "" {
		return nil, ErrBadRequest
	}
	if !finite(cmd.WeightKg) || cmd.WeightKg <= 0 {
		return nil, ErrBadRequest
	}
	if !finite(cmd.DeclaredValue) || cmd.DeclaredValue < 0 {
		return nil, ErrBadRequest
	}
	urgency, tier, err := parseTiers(cmd.QuoteCommand)
	if err != nil {
		return nil, err
	}
	t, err := s.trips.Get(ctx, cmd.TripID)
	if err != nil {
		return nil, err
	}
	if !t.Open() {
		return nil, trip.ErrTripNotOpen
	}
	if cmd.WeightKg > t.AvailableWeightKg {
		return nil, ErrOverCapacity
	}
	rate, negotiated, err := s.rateFor(ctx, t, cmd.SenderID)
	if err != nil {
		return nil, err
	}

	q := pricing.ComputeQuote(cmd.WeightKg, rate, cmd.DeclaredValue, urgency, tier)
	if err := q.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	sh := &Shipment{
		ID:              newID(),
		TripID:          t.ID,
		SenderID:        cmd.SenderID,
		TravelerID:      t.TravelerID,
		Origin:          t.Origin,
		Destination:     t.Destination,
		ItemDescription: strings.TrimSpace(cmd.ItemDescription),
		WeightKg:        cmd.WeightKg,
		DeclaredValue:   cmd.DeclaredValue,
		Urgency:         urgency,
		Insurance:       tier,
		RatePerKg:       rate,
		Negotiated:      negotiated,
		Quote:           q,
		Total:           q.Total,
		TravelerPayout:  q.TravelerPayout,
		Status:          StatusMatched,
		StatusVersion:   0,
		Escrow:          EscrowFor(StatusMatched),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Create(ctx, sh); err != nil {
		return nil, err
	}
	s.metrics.ShipmentBooked()
	s.log.Info().
		Str("shipment_id", string(sh.ID)).
		Str("trip_id", string(t.ID)).
		Str("sender_id", string(sh.SenderID)).
		Float64("total", sh.Total).
		Float64("traveler_payout", sh.TravelerPayout).
		Bool("negotiated", negotiated).
		Msg("shipment booked")
	s.publish(ctx, sh.ID, events.TypeShipmentBooked, sh)
	return sh, nil
}

type statusChange struct {
	ShipmentID types.ID     `json:"shipmentId"`
	From       OrderStatus  `json:"from"`
	To         OrderStatus  `json:"to"`
	Escrow     EscrowStatus `json:"escrowStatus"`
	Version    int          `json:"statusVersion"`
}

// Advance moves a shipment one step along the lifecycle.
func (s *Service) Advance(ctx context.Context, id types.ID, to OrderStatus) (*Shipment, error) {
	sh, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(sh.Status, to) {
		return nil, ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, sh.ID, sh.Status, to, sh.StatusVersion, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}
	updated, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("shipment_id", string(id)).
		Str("from", string(sh.Status)).
		Str("to", string(to)).
		Str("escrow", string(updated.Escrow)).
		Msg("shipment status changed")
	s.publish(ctx, id, events.TypeShipmentStatusChanged, statusChange{
		ShipmentID: id,
		From:       sh.Status,
		To:         to,
		Escrow:     updated.Escrow,
		Version:    updated.StatusVersion,
	})
	return updated, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Shipment, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListBySender(ctx context.Context, senderID types.ID) ([]Shipment, error) {
	if senderID == "" {
		return nil, ErrBadRequest
	}
	return s.store.ListBySender(ctx, senderID)
}

func (s *Service) rateFor(ctx context.Context, t trip.Trip, senderID types.ID) (float64, bool, error) {
	bid, err := s.trips.ActiveBid(ctx, t.ID, senderID)
	if err != nil {
		return 0, false, err
	}
	rate := trip.EffectiveRate(t, bid)
	return rate, bid != nil && rate == bid.RatePerKg, nil
}

func (s *Service) publish(ctx context.Context, key types.ID, eventType string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, string(key), events.NewEnvelope(eventType, payload)); err != nil {
		s.log.Warn().Err(err).Str("event_type", eventType).Str("key", string(key)).Msg("publish event failed")
	}
}

func parseTiers(cmd QuoteCommand) (pricing.Urgency, pricing.InsuranceTier, error) {
	urgency, err := pricing.ParseUrgency(cmd.Urgency)
	if err != nil {
		return "", "", err
	}
	tier, err := pricing.ParseInsuranceTier(cmd.Insurance)
	if err != nil {
		return "", "", err
	}
	return urgency, tier, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func newID() types.ID {
	return types.ID(uuid.NewString())
}
