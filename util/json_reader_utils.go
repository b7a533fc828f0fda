package util

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"

	"solar-leads/models"
)

// ReadFeatureCollectionFromJSON loads a GeoJSON FeatureCollection from disk.
func ReadFeatureCollectionFromJSON(filePath string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal FeatureCollection: %w", err)
	}
	return fc, nil
}

// ReadBuildingInsightsFromJSON loads a buildingInsights:findClosest
// response from disk.
func ReadBuildingInsightsFromJSON(filePath string) (*models.BuildingInsights, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.BuildingInsights
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal BuildingInsights: %w", err)
	}
	return &resp, nil
}
