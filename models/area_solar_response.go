package models

import "github.com/paulmach/orb/geojson"

const LayersAndFeaturesType = "layers+features"

// StreamChunk is one line of the area solar NDJSON stream.
type StreamChunk interface {
	ChunkType() string
}

// LayersAndFeaturesResponse is the first line of the area stream.
type LayersAndFeaturesResponse struct {
	Type             string                     `json:"type"`
	DataLayers       *DataLayers                `json:"dataLayers"`
	BuildingFeatures *geojson.FeatureCollection `json:"buildingFeatures"`
}

func (r *LayersAndFeaturesResponse) ChunkType() string { return r.Type }
