// README: Storage listings offered by hosts (luggage lockers, vaults, hubs).
package listing

import (
	"errors"

	"sharestuff/internal/types"
)

var (
	ErrNotFound            = errors.New("listing not found")
	ErrBadRequest          = errors.New("bad request")
	ErrGeocoderUnavailable = errors.New("geocoder unavailable")
)

type Listing struct {
	ID           types.ID    `json:"id"`
	HostID       types.ID    `json:"hostId"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	PricePerHour float64     `json:"pricePerHour"`
	Capacity     int         `json:"capacity"`
	Position     types.Point `json:"location"`
	Address      string      `json:"address"`
	City         string      `json:"city"`
	Amenities    []string    `json:"amenities"`
	Rating       float64     `json:"rating"`
	ReviewsCount int         `json:"reviewsCount"`
	Image        string      `json:"image"`
}

func (l Listing) HasAmenity(name string) bool {
	for _, a := range l.Amenities {
		if equalFold(a, name) {
			return true
		}
	}
	return false
}

// Filter narrows the catalog. Every listed amenity must be present.
type Filter struct {
	Query     string
	Amenities []string
}

// Nearest is a listing annotated with its distance from a search point.
type Nearest struct {
	Listing
	DistanceKm float64 `json:"distanceKm"`
}
