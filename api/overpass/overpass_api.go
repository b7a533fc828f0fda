package overpass

import (
	"context"

	"github.com/paulmach/orb/geojson"

	"solar-leads/models"
)

// OverpassAPI finds building footprints in OpenStreetMap.
type OverpassAPI interface {
	GetBuildingsInBounds(ctx context.Context, bounds models.Bounds) (*geojson.FeatureCollection, error)
}
