// README: Shipment aggregate, order lifecycle and escrow states.
package shipment

import (
	"fmt"
	"strings"
	"time"

	"sharestuff/internal/modules/pricing"
	"sharestuff/internal/types"
)

type OrderStatus string

const (
	StatusPosted    OrderStatus = "POSTED"
	StatusMatched   OrderStatus = "MATCHED"
	StatusFunded    OrderStatus = "FUNDED"
	StatusPickedUp  OrderStatus = "PICKED_UP"
	StatusInTransit OrderStatus = "IN_TRANSIT"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusPaid      OrderStatus = "PAID"
	StatusDisputed  OrderStatus = "DISPUTED"
)

type EscrowStatus string

const (
	EscrowNone     EscrowStatus = "NONE"
	EscrowPending  EscrowStatus = "PENDING"
	EscrowSecured  EscrowStatus = "SECURED"
	EscrowDisputed EscrowStatus = "DISPUTED"
	EscrowReleased EscrowStatus = "RELEASED"
)

type Shipment struct {
	ID              types.ID              `json:"id"`
	TripID          types.ID              `json:"tripId"`
	SenderID        types.ID              `json:"senderId"`
	TravelerID      types.ID              `json:"travelerId"`
	Origin          string                `json:"origin"`
	Destination     string                `json:"destination"`
	ItemDescription string                `json:"itemDescription"`
	WeightKg        float64               `json:"weightKg"`
	DeclaredValue   float64               `json:"declaredValue"`
	Urgency         pricing.Urgency       `json:"urgency"`
	Insurance       pricing.InsuranceTier `json:"insuranceTier"`
	RatePerKg       float64               `json:"ratePerKg"`
	Negotiated      bool                  `json:"negotiated"`
	Quote           pricing.ShipmentQuote `json:"quote"`
	Total           float64               `json:"total"`
	TravelerPayout  float64               `json:"travelerPayout"`
	Status          OrderStatus           `json:"status"`
	StatusVersion   int                   `json:"statusVersion"`
	Escrow          EscrowStatus          `json:"escrowStatus"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// AllowedTransitions represents the order state flow (diagram) as code.
var AllowedTransitions = map[OrderStatus][]OrderStatus{
	StatusPosted:    {StatusMatched},
	StatusMatched:   {StatusFunded},
	StatusFunded:    {StatusPickedUp, StatusDisputed},
	StatusPickedUp:  {StatusInTransit, StatusDisputed},
	StatusInTransit: {StatusDelivered, StatusDisputed},
	StatusDelivered: {StatusPaid, StatusDisputed},
	StatusDisputed:  {StatusPaid},
}

func CanTransition(from, to OrderStatus) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// EscrowFor derives the escrow state held for an order status.
func EscrowFor(s OrderStatus) EscrowStatus {
	switch s {
	case StatusMatched:
		return EscrowPending
	case StatusFunded, StatusPickedUp, StatusInTransit, StatusDelivered:
		return EscrowSecured
	case StatusDisputed:
		return EscrowDisputed
	case StatusPaid:
		return EscrowReleased
	}
	return EscrowNone
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := AllowedTransitions[st]; ok || st == StatusPaid {
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrBadRequest, s)
}
