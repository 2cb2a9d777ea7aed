// README: Google Maps geocoding for address-based listing search.
package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"sharestuff/internal/types"
)

var ErrAddressNotFound = errors.New("address not found")

type geocodeClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// Geocoder resolves free-form addresses with the Geocoding API.
type Geocoder struct {
	client geocodeClient
}

// NewGeocoder creates a Geocoder with the given API key. Extra options
// (for example maps.WithBaseURL) are passed to the maps client.
func NewGeocoder(apiKey string, opts ...maps.ClientOption) (*Geocoder, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Geocoder{client: client}, nil
}

func (g *Geocoder) Geocode(ctx context.Context, address string) (types.Point, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return types.Point{}, ErrAddressNotFound
	}
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  address,
		Language: "en",
	})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return types.Point{}, ErrAddressNotFound
		}
		return types.Point{}, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return types.Point{}, ErrAddressNotFound
	}
	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}
