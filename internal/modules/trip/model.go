// README: Courier trips posted by travelers and the bids shippers place on them.
package trip

import (
	"errors"
	"time"

	"sharestuff/internal/types"
)

type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusFull      Status = "FULL"
	StatusCompleted Status = "COMPLETED"
)

var (
	ErrNotFound       = errors.New("trip not found")
	ErrTripNotOpen    = errors.New("trip is not open for shipments")
	ErrBadRequest     = errors.New("bad request")
	ErrBidBelowFloor  = errors.New("bid is below the traveler's floor price")
	ErrBidAboveAsking = errors.New("bid is higher than the asking price")
)

type Trip struct {
	ID                types.ID `json:"id"`
	TravelerID        types.ID `json:"travelerId"`
	Origin            string   `json:"origin"`
	Destination       string   `json:"destination"`
	DepartureDate     string   `json:"departureDate"`
	FlightNumber      string   `json:"flightNumber"`
	AvailableWeightKg float64  `json:"availableWeightKg"`
	PricePerKg        float64  `json:"pricePerKg"`
	// MinBid is the lowest per-kilo offer the traveler accepts; zero means no floor.
	MinBid float64 `json:"minBid,omitempty"`
	Status Status  `json:"status"`
}

func (t Trip) Open() bool { return t.Status == StatusOpen }

// Bid is a shipper's negotiated per-kilo rate for one trip.
type Bid struct {
	ID          types.ID  `json:"id"`
	TripID      types.ID  `json:"tripId"`
	SenderID    types.ID  `json:"senderId"`
	RatePerKg   float64   `json:"ratePerKg"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// EffectiveRate is the rate the pricing engine should use: the bid when one
// is active, otherwise the asking rate.
func EffectiveRate(t Trip, bid *Bid) float64 {
	if bid != nil && bid.RatePerKg > 0 {
		return bid.RatePerKg
	}
	return t.PricePerKg
}
