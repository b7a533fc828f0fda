package overpass

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"solar-leads/api"
	"solar-leads/models"
)

const INTERPRETER_ENDPOINT = "/interpreter"

const BUILDINGS_QUERY_FORMAT = `[out:json][timeout:25];
(nwr["building"](%s,%s,%s,%s););
out geom;`

// OverpassApiClient embeds the common HTTPClient
type OverpassApiClient struct {
	*api.HTTPClient
	logger *zap.Logger
}

func NewOverpassApiClient(httpClient *api.HTTPClient, logger *zap.Logger) *OverpassApiClient {
	return &OverpassApiClient{
		HTTPClient: httpClient,
		logger:     logger.Named("OverpassApiClient"),
	}
}

// BuildingsQuery renders the query for every building element in bounds,
// with full geometry.
func BuildingsQuery(bounds models.Bounds) string {
	return fmt.Sprintf(BUILDINGS_QUERY_FORMAT,
		formatCoord(bounds.South), formatCoord(bounds.West), formatCoord(bounds.North), formatCoord(bounds.East))
}

// GetBuildingsInBounds runs the buildings query and converts the elements to
// GeoJSON features.
func (c *OverpassApiClient) GetBuildingsInBounds(ctx context.Context, bounds models.Bounds) (*geojson.FeatureCollection, error) {
	query := BuildingsQuery(bounds)
	c.logger.Debug("running overpass query", zap.String("query", query))

	var response Response
	if err := c.Request(ctx, http.MethodGet, INTERPRETER_ENDPOINT, url.Values{"data": {query}}, nil, nil, &response); err != nil {
		return nil, fmt.Errorf("overpass query failed: %w", err)
	}
	if response.Remark != "" {
		c.logger.Warn("overpass remark", zap.String("remark", response.Remark))
	}
	return response.FeatureCollection(), nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
