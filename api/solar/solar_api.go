package solar

import (
	"context"

	"solar-leads/models"
)

// SolarAPI defines the interface for interacting with the Google Solar API
type SolarAPI interface {
	GetDataLayers(ctx context.Context, center models.LatLng, radiusMeters float64, view models.DataLayerView, layers []models.LayerID) (*models.DataLayers, error)
	FindClosestBuildingInsights(ctx context.Context, point models.LatLng, key string) (*models.BuildingInsights, error)
}
