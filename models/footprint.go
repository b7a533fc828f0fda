package models

import "github.com/paulmach/orb/geojson"

// BuildingFootprint is a discovered building outline with its derived
// ranking attributes.
type BuildingFootprint struct {
	Feature  *geojson.Feature `json:"-"`
	Area     float64          `json:"area"`
	Centroid LatLng           `json:"centroid"`
}
