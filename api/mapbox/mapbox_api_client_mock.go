package mapbox

import (
	"context"
	"fmt"
	"math"

	"solar-leads/models"
)

// MapboxApiClientMock derives a stable fake address from the point.
type MapboxApiClientMock struct {
}

func NewMapboxApiClientMock() *MapboxApiClientMock {
	return &MapboxApiClientMock{}
}

func (c *MapboxApiClientMock) ReverseGeocode(ctx context.Context, point models.LatLng) (models.StreetAddress, error) {
	number := int(math.Abs(point.Latitude*1e5+point.Longitude*1e5)) % 9000
	return models.StreetAddress{
		Line1: fmt.Sprintf("%d S Mock St", 1000+number),
		Line2: "Chicago, Illinois 60608, United States",
	}, nil
}
