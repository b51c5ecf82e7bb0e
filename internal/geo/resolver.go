// Package geo resolves place names to coordinates and back via the Google
// Maps Geocoding API.
package geo

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// Resolver wraps the Google Maps client for forward and reverse geocoding.
// Lookup failures are surfaced to the caller as resolution failures; nothing
// is retried here.
type Resolver struct {
	client *maps.Client
}

// NewResolver creates a Resolver with the given API key.
func NewResolver(apiKey string) (*Resolver, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("geo: create maps client: %w", err)
	}
	return &Resolver{client: client}, nil
}

// Forward resolves a place name to coordinates plus a display name.
func (r *Resolver) Forward(ctx context.Context, name string) (lat, lng float64, display string, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, 0, "", fmt.Errorf("geo: empty place name")
	}

	results, err := r.client.Geocode(ctx, &maps.GeocodingRequest{Address: name})
	if err != nil {
		return 0, 0, "", fmt.Errorf("geo: forward %q: %w", name, err)
	}
	if len(results) == 0 {
		return 0, 0, "", fmt.Errorf("geo: no results for %q", name)
	}

	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, results[0].FormattedAddress, nil
}

// Reverse resolves coordinates to a human-readable place name.
func (r *Resolver) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	results, err := r.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	})
	if err != nil {
		return "", fmt.Errorf("geo: reverse (%f, %f): %w", lat, lng, err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("geo: no results for (%f, %f)", lat, lng)
	}
	return results[0].FormattedAddress, nil
}
