package mapbox

import (
	"context"
	"errors"

	"solar-leads/models"
)

// ErrNoAddress is returned when reverse geocoding finds nothing at a point.
var ErrNoAddress = errors.New("no address found")

// Geocoder resolves a point to a two line street address.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, point models.LatLng) (models.StreetAddress, error)
}
