package mapbox

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"solar-leads/api"
	"solar-leads/models"
)

const REVERSE_GEOCODE_ENDPOINT_FORMAT = "/geocoding/v5/mapbox.places/%s,%s.json"

// ADDRESS_LINE2_PARTS is how many trailing place name parts form line 2
// (city, region with postcode, country).
const ADDRESS_LINE2_PARTS = 3

type placesResponse struct {
	Features []struct {
		PlaceName string `json:"place_name"`
	} `json:"features"`
}

// MapboxApiClient embeds the common HTTPClient
type MapboxApiClient struct {
	*api.HTTPClient
	accessToken string
	logger      *zap.Logger
}

func NewMapboxApiClient(httpClient *api.HTTPClient, accessToken string, logger *zap.Logger) *MapboxApiClient {
	return &MapboxApiClient{
		HTTPClient:  httpClient,
		accessToken: accessToken,
		logger:      logger.Named("MapboxApiClient"),
	}
}

// ReverseGeocode returns the address of the first place at point.
func (c *MapboxApiClient) ReverseGeocode(ctx context.Context, point models.LatLng) (models.StreetAddress, error) {
	endpoint := fmt.Sprintf(REVERSE_GEOCODE_ENDPOINT_FORMAT,
		strconv.FormatFloat(point.Longitude, 'f', -1, 64),
		strconv.FormatFloat(point.Latitude, 'f', -1, 64))
	c.logger.Debug("reverse geocoding", zap.String("endpoint", endpoint))

	var response placesResponse
	if err := c.Request(ctx, http.MethodGet, endpoint, url.Values{"access_token": {c.accessToken}}, nil, nil, &response); err != nil {
		return models.StreetAddress{}, fmt.Errorf("reverse geocode failed: %w", err)
	}
	if len(response.Features) == 0 || response.Features[0].PlaceName == "" {
		return models.StreetAddress{}, fmt.Errorf("%w at %v,%v", ErrNoAddress, point.Latitude, point.Longitude)
	}
	return SplitPlaceName(response.Features[0].PlaceName), nil
}

// SplitPlaceName splits "street, city, region postcode, country" so that
// the last ADDRESS_LINE2_PARTS parts form line 2 and the rest line 1.
func SplitPlaceName(placeName string) models.StreetAddress {
	parts := strings.Split(placeName, ",")
	cut := len(parts) - ADDRESS_LINE2_PARTS
	if cut < 0 {
		cut = 0
	}
	return models.StreetAddress{
		Line1: strings.TrimSpace(strings.Join(parts[:cut], ",")),
		Line2: strings.TrimSpace(strings.Join(parts[cut:], ",")),
	}
}
