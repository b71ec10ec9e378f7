package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"github.com/CodeCary80/obviousplan/internal/types"
)

// GeocodeService resolves street addresses to coordinates via the Google
// Geocoding API. Used by the catalog backfill tool, never by the plan engine.
type GeocodeService struct {
	client *maps.Client
}

// NewGeocodeService creates a GeocodeService with the given API key.
func NewGeocodeService(apiKey string) (*GeocodeService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client}, nil
}

// Geocode returns the coordinates of the best match for the address.
func (s *GeocodeService) Geocode(ctx context.Context, address string) (types.Point, error) {
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return types.Point{}, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return types.Point{}, fmt.Errorf("no geocoding result for %q", address)
	}
	loc := results[0].Geometry.Location
	p := types.Point{Lat: loc.Lat, Lng: loc.Lng}
	if !p.InRange() {
		return types.Point{}, fmt.Errorf("geocoding result out of range for %q", address)
	}
	return p, nil
}
