// README: Luggage storage bookings at host listings.
package booking

import (
	"errors"
	"time"

	"sharestuff/internal/modules/pricing"
	"sharestuff/internal/types"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

var (
	ErrNotFound     = errors.New("booking not found")
	ErrBadRequest   = errors.New("bad request")
	ErrOverCapacity = errors.New("bags exceed the listing's capacity")
	ErrInvalidState = errors.New("invalid state transition")
)

const qrPrefix = "SS-LOGISTICS-TOKEN-"

// MaxHours caps a single storage booking at one year.
const MaxHours = 24 * 365

type Booking struct {
	ID         types.ID             `json:"id"`
	ListingID  types.ID             `json:"listingId"`
	TravelerID types.ID             `json:"travelerId"`
	StartTime  time.Time            `json:"startTime"`
	EndTime    time.Time            `json:"endTime"`
	Hours      int                  `json:"hours"`
	BagsCount  int                  `json:"bagsCount"`
	Tier       pricing.StorageTier  `json:"insuranceTier"`
	Quote      pricing.StorageQuote `json:"quote"`
	TotalPrice float64              `json:"totalPrice"`
	Status     Status               `json:"status"`
	QRCode     string               `json:"qrCode"`
	CreatedAt  time.Time            `json:"createdAt"`
}

// Only an active booking can be closed out.
func canTransition(from, to Status) bool {
	if from != StatusActive {
		return false
	}
	return to == StatusCompleted || to == StatusCancelled
}
