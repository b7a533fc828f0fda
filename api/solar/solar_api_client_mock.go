package solar

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"solar-leads/geometry"
	"solar-leads/models"
)

//go:embed resources/building_insights.json
var buildingInsightsFixture []byte

// MOCK_RASTER_SIZE is the width and height of every mocked layer.
const MOCK_RASTER_SIZE = 4

// SolarApiClientMock serves synthetic data layers and a recorded building
// insights response, for running without Google credentials.
type SolarApiClientMock struct {
}

// NewSolarApiClientMock creates a new instance of SolarApiClientMock
func NewSolarApiClientMock() *SolarApiClientMock {
	return &SolarApiClientMock{}
}

// GetDataLayers returns MOCK_RASTER_SIZE square layers covering the area.
// The mask is all roof.
func (c *SolarApiClientMock) GetDataLayers(ctx context.Context, center models.LatLng, radiusMeters float64, view models.DataLayerView, layers []models.LayerID) (*models.DataLayers, error) {
	bounds := geometry.BoundsFromCenter(center, radiusMeters)
	result := &models.DataLayers{
		DataLayersResponse: models.DataLayersResponse{
			ImageryDate:    models.DateInParts{Year: 2022, Month: 8, Day: 14},
			ImageryQuality: "HIGH",
		},
	}

	for _, id := range layers {
		switch id {
		case models.LayerMask:
			result.Mask = mockRaster(bounds, 1, func(i int) float64 { return 1 })
		case models.LayerDSM:
			result.DSM = mockRaster(bounds, 1, func(i int) float64 { return 180 + float64(i)/4 })
		case models.LayerAnnualFlux:
			result.AnnualFlux = mockRaster(bounds, 1, func(i int) float64 { return float64(i) * 100 })
		case models.LayerMonthlyFlux:
			result.MonthlyFlux = mockRaster(bounds, 12, func(i int) float64 { return float64(i) * 10 })
		case models.LayerRGB:
			result.RGB = mockRaster(bounds, 3, func(i int) float64 { return float64(i) * 16 })
		case models.LayerHourlyShade:
			result.HourlyShade = make([]*models.GeoRaster, 12)
			for m := range result.HourlyShade {
				result.HourlyShade[m] = mockRaster(bounds, 24, func(i int) float64 { return float64(1<<31 - 1) })
			}
		default:
			return nil, fmt.Errorf("unknown layer: %s", id)
		}
	}
	return result, nil
}

// FindClosestBuildingInsights returns the recorded response centered on point.
func (c *SolarApiClientMock) FindClosestBuildingInsights(ctx context.Context, point models.LatLng, key string) (*models.BuildingInsights, error) {
	var response models.BuildingInsights
	if err := json.Unmarshal(buildingInsightsFixture, &response); err != nil {
		return nil, fmt.Errorf("could not read building insights fixture: %w", err)
	}
	response.Center = point
	return &response, nil
}

func mockRaster(bounds models.Bounds, bands int, value func(i int) float64) *models.GeoRaster {
	size := MOCK_RASTER_SIZE * MOCK_RASTER_SIZE
	raster := &models.GeoRaster{
		Width:   MOCK_RASTER_SIZE,
		Height:  MOCK_RASTER_SIZE,
		Rasters: make([][]float64, bands),
		Bounds:  bounds,
	}
	for b := range raster.Rasters {
		raster.Rasters[b] = make([]float64, size)
		for i := range raster.Rasters[b] {
			raster.Rasters[b][i] = value(i)
		}
	}
	return raster
}
