// README: Listing service: text/amenity search and proximity lookup.
package listing

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"sharestuff/internal/types"
)

// Geocoder resolves a free-form address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (types.Point, error)
}

type Service struct {
	store    *Store
	geocoder Geocoder
	log      zerolog.Logger
}

// NewService builds the service; geocoder may be nil, in which case
// NearbyAddress reports ErrGeocoderUnavailable.
func NewService(store *Store, geocoder Geocoder, log zerolog.Logger) *Service {
	return &Service{store: store, geocoder: geocoder, log: log}
}

func (s *Service) Get(ctx context.Context, id types.ID) (Listing, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Search(ctx context.Context, f Filter) ([]Listing, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Listing, 0, len(all))
	for _, l := range all {
		if q != "" && !strings.Contains(strings.ToLower(l.City), q) && !strings.Contains(strings.ToLower(l.Title), q) {
			continue
		}
		if !hasAll(l, f.Amenities) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// Nearby returns listings ordered by distance from p. A radius <= 0 disables
// the cut-off.
func (s *Service) Nearby(ctx context.Context, p types.Point, radiusKm float64) ([]Nearest, error) {
	if !validPoint(p) {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrBadRequest)
	}
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Nearest, 0, len(all))
	for _, l := range all {
		d := haversineKm(p, l.Position)
		if radiusKm > 0 && d > radiusKm {
			continue
		}
		out = append(out, Nearest{Listing: l, DistanceKm: d})
	}
	sortByDistance(out, func(n Nearest) float64 { return n.DistanceKm })
	return out, nil
}

func (s *Service) NearbyAddress(ctx context.Context, address string, radiusKm float64) ([]Nearest, error) {
	if strings.TrimSpace(address) == "" {
		return nil, fmt.Errorf("%w: address is required", ErrBadRequest)
	}
	if s.geocoder == nil {
		return nil, ErrGeocoderUnavailable
	}
	p, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		s.log.Warn().Err(err).Str("address", address).Msg("geocode failed")
		return nil, err
	}
	return s.Nearby(ctx, p, radiusKm)
}

func hasAll(l Listing, amenities []string) bool {
	for _, a := range amenities {
		if strings.TrimSpace(a) == "" {
			continue
		}
		if !l.HasAmenity(a) {
			return false
		}
	}
	return true
}
